package domain

import "time"

// Status is the terminal state of a harness run.
type Status string

const (
	// StatusPassed means the success quota was reached without a failure.
	StatusPassed Status = "passed"
	// StatusFailed means a candidate string broke the round-trip property.
	StatusFailed Status = "failed"
	// StatusExhausted means too many candidates were discarded before the
	// quota was reached.
	StatusExhausted Status = "exhausted"
)

// Failure is the diagnostic record for one broken candidate. It carries
// everything needed to reproduce and inspect the discrepancy without
// re-running the harness.
type Failure struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Candidate string    `json:"candidate"`
	Shrunk    string    `json:"shrunk"`
	Shrinks   int       `json:"shrinks"`
	Message   string    `json:"message"`
	FoundAt   time.Time `json:"found_at"`

	// Descriptor representations from the first and second parse, both in
	// platform-string and debug form. Empty when parsing itself failed.
	FirstString  string `json:"first_string,omitempty"`
	FirstDebug   string `json:"first_debug,omitempty"`
	SecondString string `json:"second_string,omitempty"`
	SecondDebug  string `json:"second_debug,omitempty"`
}

// Summary is the outcome of a whole run.
type Summary struct {
	Status    Status        `json:"status"`
	Trials    int           `json:"trials"`
	Discarded int           `json:"discarded"`
	Seed      int64         `json:"seed"`
	Elapsed   time.Duration `json:"elapsed"`
	Failure   *Failure      `json:"failure,omitempty"`
}

// Package oracle implements the round-trip check for one candidate platform
// string: parse it, format the descriptor, parse the formatted form again
// and require both descriptors to be equal under the codec's own equality.
//
// Parse failures are not uniformly tolerated. Exactly one rejection is
// expected (an empty cpu field, matched against the literal candidate
// string); every other parse error is a bug and surfaces as a failure.
package oracle

import (
	"fmt"

	"platcheck/pkg/platform"
)

// Codec is the parser/formatter collaborator under test. Descriptors are
// opaque to the oracle beyond the codec's Equal relation.
type Codec interface {
	Parse(s string) (platform.Descriptor, error)
	Format(d platform.Descriptor) string
	Equal(a, b platform.Descriptor) bool
}

// Kind classifies the outcome of one trial.
type Kind int

const (
	// Pass means the candidate parsed and round-tripped to an equal descriptor.
	Pass Kind = iota
	// Rejected means the parser refused the candidate with the one
	// whitelisted message. The trial is discarded, not failed.
	Rejected
	// Failed means an unexpected parse error or a round-trip mismatch.
	Failed
)

func (k Kind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Rejected:
		return "expected-rejection"
	default:
		return "failure"
	}
}

// Verdict is the full outcome of checking one candidate, carrying enough
// context to diagnose a discrepancy without re-running the trial.
type Verdict struct {
	Kind      Kind
	Candidate string
	Err       error

	// First and Second are the descriptors from the initial parse and the
	// re-parse of the formatted form; Formatted is the string in between.
	// Only populated as far as the check progressed.
	First     platform.Descriptor
	Second    platform.Descriptor
	Formatted string
}

// Oracle checks candidates against a codec.
type Oracle struct {
	codec Codec
}

// New creates an Oracle for the given codec.
func New(codec Codec) *Oracle {
	return &Oracle{codec: codec}
}

// ExpectedRejection returns the only parse error message the harness
// tolerates for the given candidate. The message embeds the exact candidate
// so an unrelated empty-cpu error can never mask a different bug.
func ExpectedRejection(candidate string) string {
	return fmt.Sprintf("empty cpu in platform %q", candidate)
}

// Check runs the round-trip property for one candidate. It is a pure
// function of its input and the codec; no retries, no side effects.
func (o *Oracle) Check(candidate string) Verdict {
	v := Verdict{Candidate: candidate}

	first, err := o.codec.Parse(candidate)
	if err != nil {
		if err.Error() == ExpectedRejection(candidate) {
			v.Kind = Rejected
			v.Err = err
			return v
		}
		v.Kind = Failed
		v.Err = fmt.Errorf("unexpected parse error for %q: %w", candidate, err)
		return v
	}
	v.First = first

	v.Formatted = o.codec.Format(first)
	second, err := o.codec.Parse(v.Formatted)
	if err != nil {
		v.Kind = Failed
		v.Err = fmt.Errorf("re-parse of formatted %q (from %q) failed: %w", v.Formatted, candidate, err)
		return v
	}
	v.Second = second

	if !o.codec.Equal(first, second) {
		v.Kind = Failed
		v.Err = fmt.Errorf("round-trip mismatch for %q: %q != %q", candidate, o.codec.Format(first), o.codec.Format(second))
		return v
	}

	v.Kind = Pass
	return v
}

// Diagnostics renders the verdict's descriptor payload for failure reports:
// the candidate plus both descriptors in string and debug form.
func (v Verdict) Diagnostics() string {
	if v.Kind != Failed {
		return ""
	}
	out := fmt.Sprintf("candidate: %q\n", v.Candidate)
	if v.Err != nil {
		out += fmt.Sprintf("error: %v\n", v.Err)
	}
	if v.Formatted != "" || v.First != (platform.Descriptor{}) {
		out += fmt.Sprintf("first:  %q (%#v)\n", v.First.String(), v.First)
		out += fmt.Sprintf("formatted: %q\n", v.Formatted)
		out += fmt.Sprintf("second: %q (%#v)\n", v.Second.String(), v.Second)
	}
	return out
}

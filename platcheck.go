package platcheck

import (
	"platcheck/pkg/generator"
	"platcheck/pkg/oracle"
	"platcheck/pkg/runner"
)

// Version is the current release of platcheck.
const Version = "0.1.0"

// Check runs the round-trip oracle for a single platform string against
// the real codec. It is the one-candidate form of a campaign, handy for
// triaging a reproducer from the failure corpus.
func Check(candidate string) oracle.Verdict {
	return oracle.New(oracle.PlatformCodec{}).Check(candidate)
}

// NewRunner assembles a campaign runner over the default adversarial
// generator and the real codec. Options follow the runner package.
func NewRunner(opts ...runner.Option) *runner.Runner {
	checker := oracle.New(oracle.PlatformCodec{})
	return runner.New(checker, generator.New().Candidate(), opts...)
}

package runner

import (
	"log/slog"

	"platcheck/pkg/domain"
	"platcheck/pkg/oracle"
)

// Config is the explicit configuration record for a run. There is no
// ambient or process-global state; everything the trial loop consults
// lives here.
type Config struct {
	// Trials is the success quota: the number of non-discarded trials that
	// must pass before the run is declared green.
	Trials int
	// MaxDiscardRatio bounds total discards relative to successful trials.
	MaxDiscardRatio float64
	// MaxConsecutiveDiscards aborts the run when the generator produces
	// this many expected rejections in a row.
	MaxConsecutiveDiscards int
	// MaxShrinkAttempts bounds the oracle invocations spent minimizing a
	// failing candidate.
	MaxShrinkAttempts int
	// Seed fixes the random source; 0 picks a time-based seed.
	Seed int64
}

// DefaultConfig returns the compiled-in defaults. The zero-flag CLI run
// uses exactly these values.
func DefaultConfig() Config {
	return Config{
		Trials:                 2000,
		MaxDiscardRatio:        5,
		MaxConsecutiveDiscards: 500,
		MaxShrinkAttempts:      1000,
	}
}

// Hooks are optional observation points for the trial loop. Nil fields are
// skipped. Hooks must not block: the loop is strictly sequential.
type Hooks struct {
	// OnTrial fires once per drawn candidate with the oracle's verdict.
	OnTrial func(oracle.Verdict)
	// OnFailure fires once, with the fully shrunk failure record.
	OnFailure func(*domain.Failure)
	// OnShrink fires for every accepted simplification during minimization.
	OnShrink func(candidate string)
}

func (h Hooks) trial(v oracle.Verdict) {
	if h.OnTrial != nil {
		h.OnTrial(v)
	}
}

func (h Hooks) failure(f *domain.Failure) {
	if h.OnFailure != nil {
		h.OnFailure(f)
	}
}

func (h Hooks) shrink(candidate string) {
	if h.OnShrink != nil {
		h.OnShrink(candidate)
	}
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithConfig replaces the default configuration record.
func WithConfig(cfg Config) Option {
	return func(r *Runner) {
		r.cfg = cfg
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

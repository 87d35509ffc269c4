package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leanovate/gopter"

	"platcheck/pkg/domain"
	"platcheck/pkg/oracle"
)

// Checker is the decision procedure applied to every candidate. The
// round-trip oracle satisfies it; tests substitute cheaper stands-ins.
type Checker interface {
	Check(candidate string) oracle.Verdict
}

// Runner drives the property campaign: draw a candidate, consult the
// checker, account the verdict, and stop at the first failure or once the
// success quota is met. Runs are strictly single-goroutine.
type Runner struct {
	cfg        Config
	checker    Checker
	candidates gopter.Gen
	logger     *slog.Logger
	hooks      Hooks
}

// New creates a Runner over a candidate generator and a checker.
func New(checker Checker, candidates gopter.Gen, opts ...Option) *Runner {
	r := &Runner{
		cfg:        DefaultConfig(),
		checker:    checker,
		candidates: candidates,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the campaign and returns its summary. A falsified property
// is reported through Summary.Status and Summary.Failure, not through the
// error return; the error covers operational problems such as context
// cancellation or generator exhaustion.
func (r *Runner) Run(ctx context.Context) (*domain.Summary, error) {
	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := gopter.DefaultTestParametersWithSeed(seed)
	params.MinSuccessfulTests = r.cfg.Trials
	params.MaxDiscardRatio = r.cfg.MaxDiscardRatio
	params.MaxShrinkCount = r.cfg.MaxShrinkAttempts
	params.Workers = 1

	r.logger.Debug("starting campaign",
		slog.Int("trials", r.cfg.Trials),
		slog.Int64("seed", seed))

	var failure *domain.Failure
	prop := r.property(ctx, seed, &failure)
	result := prop.Check(params)

	summary := &domain.Summary{
		Trials:    result.Succeeded,
		Discarded: result.Discarded,
		Seed:      seed,
		Elapsed:   result.Time,
		Failure:   failure,
	}

	switch {
	case result.Status == gopter.TestPassed || result.Status == gopter.TestProved:
		summary.Status = domain.StatusPassed
		return summary, nil
	case result.Status == gopter.TestExhausted:
		summary.Status = domain.StatusExhausted
		return summary, fmt.Errorf("discard ratio exceeded after %d trials: %w", result.Succeeded, domain.ErrExhausted)
	case errors.Is(result.Error, domain.ErrExhausted):
		summary.Status = domain.StatusExhausted
		return summary, result.Error
	case result.Status == gopter.TestFailed && failure != nil:
		summary.Status = domain.StatusFailed
		return summary, nil
	default:
		summary.Status = domain.StatusFailed
		if result.Error != nil {
			return summary, result.Error
		}
		return summary, errors.New("campaign ended in an unknown state")
	}
}

func (r *Runner) property(ctx context.Context, seed int64, out **domain.Failure) gopter.Prop {
	consecutive := 0
	return func(genParams *gopter.GenParameters) *gopter.PropResult {
		if err := ctx.Err(); err != nil {
			return &gopter.PropResult{Status: gopter.PropError, Error: err}
		}

		value, ok := r.candidates(genParams).Retrieve()
		if !ok {
			return &gopter.PropResult{Status: gopter.PropUndecided}
		}
		candidate := value.(string)

		verdict := r.checker.Check(candidate)
		r.hooks.trial(verdict)

		switch verdict.Kind {
		case oracle.Rejected:
			consecutive++
			if r.cfg.MaxConsecutiveDiscards > 0 && consecutive > r.cfg.MaxConsecutiveDiscards {
				return &gopter.PropResult{
					Status: gopter.PropError,
					Error:  fmt.Errorf("%d consecutive rejections: %w", consecutive, domain.ErrExhausted),
				}
			}
			return &gopter.PropResult{Status: gopter.PropUndecided}

		case oracle.Pass:
			consecutive = 0
			return &gopter.PropResult{Status: gopter.PropTrue}

		default:
			consecutive = 0
			r.logger.Debug("property falsified", slog.String("candidate", candidate))
			shrunk, steps := Minimize(candidate, r.stillFailing, r.cfg.MaxShrinkAttempts, r.hooks.shrink)
			failure := r.buildFailure(verdict, shrunk, steps, seed)
			*out = failure
			r.hooks.failure(failure)
			return &gopter.PropResult{Status: gopter.PropFalse, Error: verdict.Err}
		}
	}
}

func (r *Runner) stillFailing(candidate string) bool {
	return r.checker.Check(candidate).Kind == oracle.Failed
}

func (r *Runner) buildFailure(v oracle.Verdict, shrunk string, steps int, seed int64) *domain.Failure {
	now := time.Now().UTC()
	f := &domain.Failure{
		ID:        fmt.Sprintf("%d-%x", seed, now.UnixNano()),
		Seed:      seed,
		Candidate: v.Candidate,
		Shrunk:    shrunk,
		Shrinks:   steps,
		FoundAt:   now,
	}
	if v.Err != nil {
		f.Message = v.Err.Error()
	}
	// Round-trip mismatches carry both parses; a parse failure carries
	// only the candidate and message.
	if v.Formatted != "" || v.First.String() != "" {
		f.FirstString = v.First.String()
		f.FirstDebug = fmt.Sprintf("%#v", v.First)
		f.SecondString = v.Second.String()
		f.SecondDebug = fmt.Sprintf("%#v", v.Second)
	}
	return f
}

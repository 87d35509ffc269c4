package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"platcheck/internal/logging"
	"platcheck/internal/presentation/tui"
	"platcheck/pkg/domain"
	"platcheck/pkg/generator"
	"platcheck/pkg/oracle"
	"platcheck/pkg/runner"
)

// Exit codes for the run command. A falsified property and an operational
// failure are distinguishable to scripts.
const (
	ExitOK        = 0
	ExitFalsified = 1
	ExitError     = 2
)

// RunOptions carries per-invocation settings that do not belong in the
// config file.
type RunOptions struct {
	// JSONOutput prints the summary as one JSON document on stdout
	// instead of the rendered report.
	JSONOutput bool
	// Banner prints the ASCII banner before the run.
	Banner bool
	// Version is printed with the banner.
	Version string
}

// NewLogger builds the application logger from the configuration.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.LogJSON {
		return logging.NewJSON(cfg.Level())
	}
	return logging.New(cfg.Level())
}

// RunCampaign assembles the generator, oracle, corpus store and trial loop
// from the configuration, executes one campaign and reports the result on
// out. The returned int is the process exit code.
func RunCampaign(ctx context.Context, cfg Config, opts RunOptions, logger *slog.Logger, out io.Writer) int {
	if opts.Banner && !opts.JSONOutput {
		tui.PrintBanner(opts.Version)
	}

	vocab, err := cfg.BuildVocabulary()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return ExitError
	}

	store, closeStore, err := BuildFailureStore(cfg.Store)
	if err != nil {
		logger.Error("failed to build failure store", "error", err)
		return ExitError
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close failure store", "error", err)
		}
	}()

	gen := generator.New(
		generator.WithVocabulary(vocab),
		generator.WithMaxDepth(cfg.MaxDepth),
		generator.WithMaxFragments(cfg.MaxFragments),
	)
	checker := oracle.New(oracle.PlatformCodec{})

	hooks := runner.Hooks{
		OnFailure: func(f *domain.Failure) {
			if err := store.Save(ctx, f); err != nil {
				logger.Warn("failed to persist failure", "id", f.ID, "error", err)
			}
		},
		OnShrink: func(candidate string) {
			logger.Debug("shrunk", "candidate", candidate)
		},
	}

	r := runner.New(checker, gen.Candidate(),
		runner.WithConfig(cfg.RunnerConfig()),
		runner.WithLogger(logger),
		runner.WithHooks(hooks),
	)

	summary, err := r.Run(ctx)
	if err != nil && !errors.Is(err, domain.ErrExhausted) {
		logger.Error("campaign aborted", "error", err)
		return ExitError
	}

	if err := report(summary, opts, out); err != nil {
		logger.Error("failed to write report", "error", err)
		return ExitError
	}

	switch summary.Status {
	case domain.StatusPassed:
		return ExitOK
	case domain.StatusFailed:
		return ExitFalsified
	default:
		return ExitError
	}
}

func report(summary *domain.Summary, opts RunOptions, out io.Writer) error {
	if opts.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	rendered, err := tui.NewRenderer()(tui.SummaryMarkdown(summary))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

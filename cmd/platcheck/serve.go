package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "platcheck/internal/adapters/http"
	"platcheck/internal/cli"
	"platcheck/pkg/domain"
	"platcheck/pkg/generator"
	"platcheck/pkg/observability"
	"platcheck/pkg/oracle"
	"platcheck/pkg/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run campaigns continuously and expose the corpus over HTTP",
	Long: `Starts the harness in server mode: campaigns run back to back on the
configured interval while an HTTP API exposes the latest summary, the
failure corpus and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		port, _ := cmd.Flags().GetString("port")
		interval, _ := cmd.Flags().GetDuration("interval")

		logger := cli.NewLogger(cfg)

		vocab, err := cfg.BuildVocabulary()
		if err != nil {
			fmt.Printf("Error in vocabulary config: %v\n", err)
			os.Exit(1)
		}
		store, closeStore, err := cli.BuildFailureStore(cfg.Store)
		if err != nil {
			fmt.Printf("Error building failure store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

		var mu sync.RWMutex
		var latest *domain.Summary
		setSummary := func(s *domain.Summary) {
			mu.Lock()
			latest = s
			mu.Unlock()
		}
		getSummary := func() *domain.Summary {
			mu.RLock()
			defer mu.RUnlock()
			return latest
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Campaign loop. Each iteration is one full run; failures land in
		// the corpus through the store hook.
		go func() {
			gen := generator.New(
				generator.WithVocabulary(vocab),
				generator.WithMaxDepth(cfg.MaxDepth),
				generator.WithMaxFragments(cfg.MaxFragments),
			)
			checker := oracle.New(oracle.PlatformCodec{})
			metricHooks := metrics.Hooks()
			hooks := runner.Hooks{
				OnTrial:  metricHooks.OnTrial,
				OnShrink: metricHooks.OnShrink,
				OnFailure: func(f *domain.Failure) {
					metricHooks.OnFailure(f)
					if err := store.Save(ctx, f); err != nil {
						logger.Warn("failed to persist failure", "id", f.ID, "error", err)
					}
				},
			}

			for {
				r := runner.New(checker, gen.Candidate(),
					runner.WithConfig(cfg.RunnerConfig()),
					runner.WithLogger(logger),
					runner.WithHooks(hooks),
				)
				metrics.CampaignStarted()
				summary, err := r.Run(ctx)
				metrics.CampaignFinished(summary)
				if err != nil && !errors.Is(err, domain.ErrExhausted) {
					if ctx.Err() != nil {
						return
					}
					logger.Error("campaign aborted", "error", err)
				}
				if summary != nil {
					setSummary(summary)
					logger.Info("campaign finished",
						"status", summary.Status,
						"trials", summary.Trials,
						"discarded", summary.Discarded,
						"seed", summary.Seed)
				}

				select {
				case <-ctx.Done():
					return
				case <-time.After(interval):
				}
			}
		}()

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpadapter.NewHandler(store, getSummary, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting platcheck server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)
			cancel()

			// Give outstanding requests a deadline for completion.
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("platcheck server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Duration("interval", time.Minute, "Pause between campaigns")
}

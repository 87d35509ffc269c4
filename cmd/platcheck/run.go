package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"platcheck"
	"platcheck/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one property campaign against the platform-string codec",
	Long: `Draws adversarial candidate strings, checks the round-trip property for
each one and exits 0 when the success quota is reached, 1 when the
property was falsified and 2 on operational errors.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(cli.ExitError)
		}

		if cmd.Flags().Changed("trials") {
			cfg.Trials, _ = cmd.Flags().GetInt("trials")
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Kind, _ = cmd.Flags().GetString("store")
		}
		if cmd.Flags().Changed("corpus-dir") {
			cfg.Store.Path, _ = cmd.Flags().GetString("corpus-dir")
		}
		if cmd.Flags().Changed("redis-addr") {
			cfg.Store.Redis.Addr, _ = cmd.Flags().GetString("redis-addr")
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.RunOptions{
			JSONOutput: jsonOutput,
			Banner:     !noBanner,
			Version:    platcheck.Version,
		}
		code := cli.RunCampaign(ctx, cfg, opts, cli.NewLogger(cfg), os.Stdout)
		os.Exit(code)
	},
}

// loadConfig reads the config file and applies the persistent flags shared
// by run and serve.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("trials", 0, "Success quota for the campaign")
	runCmd.Flags().Int64("seed", 0, "Random seed (0 picks a time-based seed)")
	runCmd.Flags().String("store", "", "Failure corpus backend (memory, file, redis)")
	runCmd.Flags().String("corpus-dir", "", "Corpus directory for the file backend")
	runCmd.Flags().String("redis-addr", "", "Redis address for the redis backend")
	runCmd.Flags().Bool("json", false, "Print the summary as JSON on stdout")
	runCmd.Flags().Bool("no-banner", false, "Suppress the startup banner")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}

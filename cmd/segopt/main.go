// Command segopt runs the post-tokenization optimizer pipeline over text or
// token streams, evaluates it against an annotated corpus, or serves it over
// HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	segopt "github.com/jamesainslie/go-segopt"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by every subcommand once setup has run.
type app struct {
	configPath  string
	logLevel    string
	concurrency int

	cfg      Config
	logger   *slog.Logger
	pipeline *segopt.Pipeline
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "segopt",
		Short:         "Post-tokenization optimizer for segmented text",
		Long:          `segopt merges runs of segmented tokens that spell e-mail addresses into single address tokens.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to YAML config file (default: $SEGOPT_CONFIG)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.IntVar(&a.concurrency, "concurrency", 0, "Sequences optimized in parallel (default: number of CPUs)")

	rootCmd.AddCommand(newOptimizeCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))

	return rootCmd
}

// setup loads configuration, applies persistent flag overrides and builds the
// logger and pipeline.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = a.concurrency
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	opts := []segopt.Option{segopt.WithLogger(logger)}
	if cfg.Concurrency > 0 {
		opts = append(opts, segopt.WithConcurrency(cfg.Concurrency))
	}
	p, err := segopt.New(opts...)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.pipeline = p
	logger.Debug("pipeline ready", slog.Any("stages", p.Stages()))
	return nil
}

// SPDX-License-Identifier: MIT

// Package commands holds the cobra command tree of the aquanet CLI.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/aquanet/config"
	"github.com/katalvlaran/aquanet/metrics"
	"github.com/katalvlaran/aquanet/pipeline"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfgPath     string
	seed        int64
	logLevel    string
	logFormat   string
	dumpMetrics bool

	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Registry
}

// Option configures NewRootCommand.
type Option func(*app)

// WithRegistry records metrics into r instead of the process-wide
// metrics.DefaultRegistry.
func WithRegistry(r *metrics.Registry) Option {
	return func(a *app) { a.metrics = r }
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{metrics: metrics.DefaultRegistry()}
	for _, opt := range opts {
		opt(a)
	}
	root := &cobra.Command{
		Use:   "aquanet",
		Short: "aquanet predicts the Sogamoso network outflow from upstream flows",
		Long: `aquanet models the Sogamoso water capture network as a directed graph,
generates synthetic operating samples over it and trains a message-passing
model that predicts the total distribution at the sink.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.dumpMetrics {
				return nil
			}

			return a.metrics.WriteText(cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "config", "c", "", "Path to a YAML config file (default: built-in settings)")
	flags.Int64Var(&a.seed, "seed", 0, "Random seed for sampling, weights and shuffling")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "Print Prometheus metrics after the command")

	root.AddCommand(
		newTopologyCommand(a),
		newGenerateCommand(a),
		newTrainCommand(a),
		newBaselineCommand(a),
		newAllocateCommand(a),
		newConfigCommand(a),
	)

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config, applies global flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.dumpMetrics = a.dumpMetrics || cfg.Metrics.Enabled
	a.logger = newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	return nil
}

// newPipeline validates the (possibly overridden) config and builds a Pipeline.
func (a *app) newPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	opts = append([]pipeline.Option{
		pipeline.WithLogger(a.logger),
		pipeline.WithMetrics(a.metrics),
	}, opts...)

	return pipeline.New(a.cfg, opts...)
}

// newLogger builds a text or JSON handler at the named level.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Package main implements the evalcorpus CLI: corpus acquisition,
// dataset generation, validation, and search simulation.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/evalcorpus/internal/config"
	"github.com/jonwraymond/evalcorpus/internal/logging"
)

var (
	cfgPath   string
	logLevel  string
	logFormat string
	version   = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evalcorpus",
	Short: "Synthesize and check semantic-search evaluation datasets",
	Long: `evalcorpus builds an evaluation corpus for a semantic-search benchmark:
it fetches a source corpus, pairs queries with ground-truth answers and
tiered relevance exemplars under global string uniqueness, validates the
result, and replays queries against it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log.format (json, console)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup loads configuration and builds the run logger. Every invocation
// gets a fresh run id so log lines from concurrent runs stay separable.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger.With(zap.String("run_id", uuid.NewString())), nil
}

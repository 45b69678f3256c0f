package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/evalcorpus/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dataset.json>",
	Short: "Re-check the structural invariants of a dataset file",
	Long: `Validate reads a generated dataset and re-verifies its structure:
four entries per relevance band, minimum lengths, and no duplicated
strings within or across records. Every violation is printed, and any
violation makes the command exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	res, err := validate.File(args[0], validate.Config{
		MinQueryLen:       cfg.Generate.QueryBand.Min,
		MinGroundTruthLen: cfg.Generate.GroundTruthBand.Min,
	})
	if err != nil {
		return err
	}

	for _, v := range res.Violations {
		fmt.Fprintln(cmd.ErrOrStderr(), v)
	}
	if err := res.Err(); err != nil {
		return err
	}

	logger.Info("validation passed",
		zap.String("path", args[0]),
		zap.Int("records", res.Records),
	)
	return nil
}

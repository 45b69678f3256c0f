package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/evalcorpus/simulate"
)

var (
	simRecord int
	simSweep  bool
	simHTTP   string
)

func init() {
	simulateCmd.Flags().IntVar(&simRecord, "record", -1, "record index to replay (default random)")
	simulateCmd.Flags().BoolVar(&simSweep, "sweep", false, "replay every record and print tier tallies")
	simulateServeCmd.Flags().StringVar(&simHTTP, "http", "", "serve JSON-RPC over HTTP on this address instead of stdio")
	simulateCmd.AddCommand(simulateServeCmd)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <dataset.json>",
	Short: "Replay dataset queries against their own answer strings",
	Long: `Simulate runs a record's query against the record's ground truth and
relevance strings by term overlap and reports the best tier reached:
perfect, high, medium, low, or none.

Examples:
  evalcorpus simulate dataset.json
  evalcorpus simulate dataset.json --record 17
  evalcorpus simulate dataset.json --sweep
  evalcorpus simulate serve dataset.json --http :8080`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sim, err := simulate.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if simSweep {
		stats, err := sim.Sweep()
		if err != nil {
			return err
		}
		return enc.Encode(stats)
	}

	var res simulate.Result
	if simRecord >= 0 {
		res, err = sim.Replay(simRecord)
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		res, err = sim.ReplayRandom(rng)
	}
	if err != nil {
		return err
	}
	return enc.Encode(res)
}

var simulateServeCmd = &cobra.Command{
	Use:   "serve <dataset.json>",
	Short: "Expose the simulator as a JSON-RPC tool server",
	Long: `Serve answers JSON-RPC 2.0 requests (initialize, tools/list,
tools/call) with corpus_search and corpus_stats tools, over stdio by
default or HTTP with --http.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulateServe,
}

func runSimulateServe(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sim, err := simulate.Load(args[0])
	if err != nil {
		return err
	}
	srv := simulate.NewServer(sim, simulate.ServerInfo{
		Name:    "evalcorpus-simulator",
		Version: version,
	})

	if simHTTP != "" {
		logger.Info("serving JSON-RPC over HTTP",
			zap.String("addr", simHTTP),
			zap.Int("records", sim.Len()),
		)
		return http.ListenAndServe(simHTTP, srv.Handler())
	}

	logger.Info("serving JSON-RPC over stdio", zap.Int("records", sim.Len()))
	return srv.ServeStdio(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

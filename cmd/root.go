// cmd/root.go
package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astrons/astrons/sim/orchestrator"
)

var (
	modelFile      string
	seed           int64
	endTime        int64
	epochStr       string
	logLevel       string
	logToFile      bool
	nodeStats      bool
	dumpFinalState bool
	realTime       bool
	realTimeFactor float64
	strictRealTime bool
	resultsDir     string
)

var rootCmd = &cobra.Command{
	Use:   "astrons",
	Short: "Discrete-event simulator for aerospace networks",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a network description to completion",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		epoch := time.Now().UTC()
		if epochStr != "" {
			epoch, err = time.Parse(time.RFC3339, epochStr)
			if err != nil {
				logrus.Fatalf("invalid epoch %q (expected RFC3339): %v", epochStr, err)
			}
		}

		logrus.Infof("loading model file %s", modelFile)

		run := orchestrator.New(orchestrator.Config{
			ModelFile:      modelFile,
			Seed:           seed,
			EndTime:        endTime,
			Epoch:          epoch,
			LogToFile:      logToFile,
			NodeStats:      nodeStats,
			DumpFinalState: dumpFinalState,
			RealTime:       realTime,
			RealTimeFactor: realTimeFactor,
			StrictRealTime: strictRealTime,
			ResultsDir:     resultsDir,
		})

		executed, err := run.Execute()
		if err != nil {
			logrus.Fatalf("run failed: %v", err)
		}
		logrus.Infof("run complete: %d events executed", executed)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&modelFile, "model", "", "Network description file (.ini, .json, .yml)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the partitioned RNG")
	runCmd.Flags().Int64Var(&endTime, "end-time", 3600, "Virtual seconds to run the simulation until")
	runCmd.Flags().StringVar(&epochStr, "epoch", "", "Wall datetime (RFC3339) mapped to virtual time 0; defaults to now")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&logToFile, "log-to-file", false, "Write simulation.log in the results directory instead of the terminal")
	runCmd.Flags().BoolVar(&nodeStats, "node-stats", false, "Emit node_stats.txt and node_stats_total.txt")
	runCmd.Flags().BoolVar(&dumpFinalState, "dump-final-state", false, "Emit sim_end_state.txt")
	runCmd.Flags().BoolVar(&realTime, "real-time", false, "Pace the event loop against wall-clock time")
	runCmd.Flags().Float64Var(&realTimeFactor, "real-time-factor", 1.0, "Virtual seconds per wall second under --real-time")
	runCmd.Flags().BoolVar(&strictRealTime, "strict-real-time", false, "Fatal (instead of warn) on real-time overrun")
	runCmd.Flags().StringVar(&resultsDir, "results-dir", "Results", "Base directory results subdirectories are created under")
	runCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(runCmd)
}

package orchestrator

import "time"

// Config is the run orchestrator's input, assembled from the CLI surface
// of §6.
type Config struct {
	ModelFile string // network description path
	Seed      int64
	EndTime   int64     // virtual seconds to run until (§4.1 run_until)
	Epoch     time.Time // wall datetime mapped to virtual time 0 (§4.8 item 1)

	LogToFile      bool // write simulation.log instead of the terminal
	NodeStats      bool // emit node_stats.txt / node_stats_total.txt
	DumpFinalState bool // emit sim_end_state.txt

	RealTime       bool // enable wall-clock pacing (§4.1 Pacing)
	RealTimeFactor float64
	StrictRealTime bool // fatal vs. warning overrun (§7)

	ResultsDir string // base directory results subdirectories are created under; default "Results"
}

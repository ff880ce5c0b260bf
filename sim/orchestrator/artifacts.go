package orchestrator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// writeLoadedArtifacts writes the two load-time artifacts that don't
// depend on run output: loaded_node_config.txt and loaded_network.json
// (§6).
func (r *Run) writeLoadedArtifacts() error {
	if err := r.writeLoadedNodeConfig(); err != nil {
		return err
	}
	return r.writeLoadedNetworkJSON()
}

func (r *Run) writeLoadedNodeConfig() error {
	f, err := os.Create(filepath.Join(r.resultsPath, "loaded_node_config.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing loaded_node_config.txt: %w", err)
	}
	defer f.Close()

	runtimes := r.sim.Nodes()
	sort.Slice(runtimes, func(i, j int) bool { return runtimes[i].Label() < runtimes[j].Label() })

	for _, rt := range runtimes {
		fmt.Fprintf(f, "[%s]\n", rt.Label())
		keys := make([]string, 0, len(rt.Config()))
		for k := range rt.Config() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f, "%s = %v\n", k, rt.Config()[k])
		}
		fmt.Fprintln(f)
	}
	return nil
}

func (r *Run) writeLoadedNetworkJSON() error {
	data, err := json.MarshalIndent(r.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("orchestrator: marshaling loaded_network.json: %w", err)
	}
	return os.WriteFile(filepath.Join(r.resultsPath, "loaded_network.json"), data, 0o644)
}

// writeRunArtifacts writes the artifacts that depend on having run the
// simulation: node_log.txt, msg_history.txt/.csv, and (optionally)
// node_stats.txt, node_stats_total.txt, sim_end_state.txt (§6).
func (r *Run) writeRunArtifacts() error {
	if err := r.writeNodeLog(); err != nil {
		return err
	}
	if err := r.writeMsgHistory(); err != nil {
		return err
	}
	if r.Config.NodeStats {
		if err := r.writeNodeStats(); err != nil {
			return err
		}
	}
	if r.Config.DumpFinalState {
		if err := r.writeFinalState(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) writeNodeLog() error {
	f, err := os.Create(filepath.Join(r.resultsPath, "node_log.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing node_log.txt: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "SimTime\tNode\tData_ID\tData_Size\tWait_time\tProcessing_time\tDelay_to_Next")
	for _, rec := range r.sim.History.AllOrdered() {
		fmt.Fprintf(f, "%d\t%s\t%s\t%v\t%d\t%d\t%d\n",
			rec.Now, rec.FromLabel, rec.Message.ID(), rec.Message.GetFloat(r.sim.MsgSizeKey),
			rec.WaitTime, rec.ReserveTime, rec.TotalDelay)
	}
	return nil
}

func (r *Run) writeMsgHistory() error {
	txt, err := os.Create(filepath.Join(r.resultsPath, "msg_history.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing msg_history.txt: %w", err)
	}
	defer txt.Close()

	records := r.sim.History.AllOrdered()
	for _, rec := range records {
		fmt.Fprintf(txt, "%s: now=%d %s -> %s (reserve=%d delay=%d wait=%d terminal=%t) at %s\n",
			rec.Message.ID(), rec.Now, rec.FromLabel, rec.ToLabel,
			rec.ReserveTime, rec.TotalDelay, rec.WaitTime, rec.Terminal,
			rec.VirtualDatetime.Format("2006-01-02T15:04:05Z"))
	}

	csvFile, err := os.Create(filepath.Join(r.resultsPath, "msg_history.csv"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing msg_history.csv: %w", err)
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()
	w.Write([]string{"ID", "Now", "VirtualDatetime", "FromLabel", "ToLabel", "ReserveTime", "TotalDelay", "WaitTime", "Terminal"})
	for _, rec := range records {
		w.Write([]string{
			rec.Message.ID(),
			strconv.FormatInt(rec.Now, 10),
			rec.VirtualDatetime.Format("2006-01-02T15:04:05Z"),
			rec.FromLabel,
			rec.ToLabel,
			strconv.FormatInt(rec.ReserveTime, 10),
			strconv.FormatInt(rec.TotalDelay, 10),
			strconv.FormatInt(rec.WaitTime, 10),
			strconv.FormatBool(rec.Terminal),
		})
	}
	return w.Error()
}

// nodeStatLine summarizes one node's accumulated counters (§4.8 item 5).
type nodeStatLine struct {
	Label             string
	MessagesProcessed int64
	TotalDataSize     float64

	WaitMean, WaitStd, WaitMin, WaitMax             float64
	ReserveMean, ReserveStd, ReserveMin, ReserveMax float64
	DelayMean, DelayStd, DelayMin, DelayMax         float64
}

func summarize(samples []int64) (mean, std, min, max float64) {
	if len(samples) == 0 {
		return 0, 0, 0, 0
	}
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(s)
	}
	mean = stat.Mean(xs, nil)
	std = stat.StdDev(xs, nil)
	min = floats.Min(xs)
	max = floats.Max(xs)
	return mean, std, min, max
}

func (r *Run) writeNodeStats() error {
	perNode, err := os.Create(filepath.Join(r.resultsPath, "node_stats.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing node_stats.txt: %w", err)
	}
	defer perNode.Close()

	runtimes := r.sim.Nodes()
	sort.Slice(runtimes, func(i, j int) bool { return runtimes[i].Label() < runtimes[j].Label() })

	var totalMessages int64
	var totalSize float64

	for _, rt := range runtimes {
		c := rt.Counters()
		line := nodeStatLine{Label: rt.Label(), MessagesProcessed: c.MessagesProcessed, TotalDataSize: c.TotalDataSize}
		line.WaitMean, line.WaitStd, line.WaitMin, line.WaitMax = summarize(c.WaitTimes)
		line.ReserveMean, line.ReserveStd, line.ReserveMin, line.ReserveMax = summarize(c.ReserveTimes)
		line.DelayMean, line.DelayStd, line.DelayMin, line.DelayMax = summarize(c.DelaysTillNext)

		fmt.Fprintf(perNode, "%s: messages=%d total_size=%.2f wait(mean=%.2f std=%.2f min=%.2f max=%.2f) reserve(mean=%.2f std=%.2f min=%.2f max=%.2f) delay(mean=%.2f std=%.2f min=%.2f max=%.2f)\n",
			line.Label, line.MessagesProcessed, line.TotalDataSize,
			line.WaitMean, line.WaitStd, line.WaitMin, line.WaitMax,
			line.ReserveMean, line.ReserveStd, line.ReserveMin, line.ReserveMax,
			line.DelayMean, line.DelayStd, line.DelayMin, line.DelayMax)

		totalMessages += c.MessagesProcessed
		totalSize += c.TotalDataSize
	}

	total, err := os.Create(filepath.Join(r.resultsPath, "node_stats_total.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing node_stats_total.txt: %w", err)
	}
	defer total.Close()
	fmt.Fprintf(total, "nodes=%d total_messages=%d total_data_size=%.2f\n", len(runtimes), totalMessages, totalSize)
	return nil
}

func (r *Run) writeFinalState() error {
	f, err := os.Create(filepath.Join(r.resultsPath, "sim_end_state.txt"))
	if err != nil {
		return fmt.Errorf("orchestrator: writing sim_end_state.txt: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "run_id: %s\n", r.sim.RunID)
	fmt.Fprintf(f, "end_time: %d\n", r.sim.Clock.Now())

	runtimes := r.sim.Nodes()
	sort.Slice(runtimes, func(i, j int) bool { return runtimes[i].Label() < runtimes[j].Label() })
	for _, rt := range runtimes {
		c := rt.Counters()
		fmt.Fprintf(f, "%s: messages_processed=%d total_data_size=%.2f\n", rt.Label(), c.MessagesProcessed, c.TotalDataSize)
	}
	return nil
}

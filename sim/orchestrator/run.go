package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrons/astrons/sim"
	"github.com/astrons/astrons/sim/network"
	"github.com/astrons/astrons/sim/nodes"
	"github.com/sirupsen/logrus"
)

// Run owns one end-to-end simulation execution: construction, the event
// loop, and artifact output.
type Run struct {
	Config Config
	Logger *logrus.Logger

	sim         *sim.Simulation
	factory     *network.Factory
	raw         network.RawConfig
	resultsPath string
}

// New assembles a Run, but does not build the network or start the clock —
// call Execute for that.
func New(cfg Config) *Run {
	logger := logrus.StandardLogger()
	return &Run{Config: cfg, Logger: logger}
}

// Execute loads the network description, builds and runs the simulation to
// Config.EndTime, and writes the artifact set (§6). Returns the number of
// events executed and a non-nil error on any configuration, parsing, or
// fatal runtime failure (§6 "non-zero on configuration, parsing, or fatal
// runtime errors").
func (r *Run) Execute() (int, error) {
	r.sim = sim.NewSimulation(r.Config.Seed, r.Config.Epoch)
	r.sim.Logger = r.Logger

	if r.Config.RealTime {
		r.sim.Clock.WithPacing(sim.Pacing{Factor: r.Config.RealTimeFactor, Strict: r.Config.StrictRealTime})
	}

	registry := sim.NewRegistry()
	nodes.Register(registry)

	raw, err := network.LoadFile(r.Config.ModelFile)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: loading %s: %w", r.Config.ModelFile, err)
	}
	r.raw = raw

	r.factory = network.NewFactory(r.sim, registry)
	created, err := r.factory.Build(raw, "", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: building network: %w", err)
	}
	r.Logger.WithFields(logrus.Fields{
		"run_id": r.sim.RunID,
		"nodes":  len(created),
	}).Info("network built")

	if err := r.prepareResultsDir(); err != nil {
		return 0, err
	}
	if r.Config.LogToFile {
		f, err := os.Create(filepath.Join(r.resultsPath, "simulation.log"))
		if err != nil {
			return 0, fmt.Errorf("orchestrator: opening simulation.log: %w", err)
		}
		r.Logger.SetOutput(f)
		defer f.Close()
	}

	if err := r.writeLoadedArtifacts(); err != nil {
		return 0, err
	}

	r.sim.Start()
	executed, err := r.sim.Run(r.Config.EndTime)
	if err != nil {
		r.Logger.WithError(err).Error("run aborted")
		_ = r.writeRunArtifacts()
		return executed, err
	}

	r.Logger.WithFields(logrus.Fields{
		"run_id":   r.sim.RunID,
		"events":   executed,
		"end_time": r.sim.Clock.Now(),
	}).Info("run complete")

	if err := r.writeRunArtifacts(); err != nil {
		return executed, err
	}
	return executed, nil
}

// networkName derives the results-directory name's model component from
// the model file's base name, stripped of its extension.
func (r *Run) networkName() string {
	base := filepath.Base(r.Config.ModelFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// prepareResultsDir creates "<ResultsDir>/<network_name><epoch_iso>" (§6).
func (r *Run) prepareResultsDir() error {
	base := r.Config.ResultsDir
	if base == "" {
		base = "Results"
	}
	dirName := r.networkName() + sanitizeForPath(r.Config.Epoch.Format("2006-01-02T15:04:05Z"))
	r.resultsPath = filepath.Join(base, dirName)
	return os.MkdirAll(r.resultsPath, 0o755)
}

// sanitizeForPath replaces characters that are awkward in directory names
// on common filesystems (colons) while keeping the ISO-8601 ordering
// readable.
func sanitizeForPath(s string) string {
	return strings.ReplaceAll(s, ":", "")
}

package orchestrator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testNetwork = `{
	"source1": {"type": "source", "random_size_min": 5, "random_size_max": 5, "single_pulse": true, "sink1": ""},
	"sink1": {"type": "sink"}
}`

func writeTestNetwork(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte(testNetwork), 0o644))
	return path
}

func TestRun_Execute_WritesLoadAndRunArtifacts(t *testing.T) {
	modelPath := writeTestNetwork(t)
	resultsDir := t.TempDir()

	run := New(Config{
		ModelFile:  modelPath,
		Seed:       1,
		EndTime:    100,
		Epoch:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		NodeStats:  true,
		ResultsDir: resultsDir,
	})

	_, err := run.Execute()
	require.NoError(t, err)

	for _, name := range []string{
		"loaded_node_config.txt",
		"loaded_network.json",
		"node_log.txt",
		"msg_history.txt",
		"msg_history.csv",
		"node_stats.txt",
		"node_stats_total.txt",
	} {
		path := filepath.Join(run.resultsPath, name)
		if _, statErr := os.Stat(path); statErr != nil {
			t.Errorf("expected artifact %s to exist: %v", name, statErr)
		}
	}
}

func TestRun_Execute_DumpFinalStateWritesSimEndState(t *testing.T) {
	modelPath := writeTestNetwork(t)
	resultsDir := t.TempDir()

	run := New(Config{
		ModelFile:      modelPath,
		Seed:           1,
		EndTime:        100,
		Epoch:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DumpFinalState: true,
		ResultsDir:     resultsDir,
	})

	_, err := run.Execute()
	require.NoError(t, err)

	path := filepath.Join(run.resultsPath, "sim_end_state.txt")
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("expected sim_end_state.txt to exist: %v", statErr)
	}
}

func TestRun_Execute_UnknownModelFileErrors(t *testing.T) {
	run := New(Config{
		ModelFile:  filepath.Join(t.TempDir(), "missing.json"),
		EndTime:    10,
		Epoch:      time.Now().UTC(),
		ResultsDir: t.TempDir(),
	})

	_, err := run.Execute()
	require.Error(t, err)
}

func TestSanitizeForPath_StripsColons(t *testing.T) {
	if got := sanitizeForPath("2026-01-01T00:00:00Z"); got != "2026-01-01T000000Z" {
		t.Errorf("sanitizeForPath stripped unexpectedly: %q", got)
	}
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCmd_ModelFlag_IsRequired(t *testing.T) {
	flag := runCmd.Flags().Lookup("model")
	assert.NotNil(t, flag, "model flag must be registered")

	required := runCmd.Flags().Lookup("model").Annotations["cobra_annotation_bash_completion_one_required_flag"]
	assert.NotNil(t, required, "model flag must be marked required")
}

func TestRunCmd_DefaultEndTime_Is3600(t *testing.T) {
	flag := runCmd.Flags().Lookup("end-time")
	assert.NotNil(t, flag, "end-time flag must be registered")
	assert.Equal(t, "3600", flag.DefValue)
}

func TestRunCmd_DefaultLogLevel_IsInfo(t *testing.T) {
	flag := runCmd.Flags().Lookup("log")
	assert.NotNil(t, flag, "log flag must be registered")
	assert.Equal(t, "info", flag.DefValue)
}

func TestRunCmd_DefaultRealTimeFactor_IsOne(t *testing.T) {
	flag := runCmd.Flags().Lookup("real-time-factor")
	assert.NotNil(t, flag, "real-time-factor flag must be registered")
	assert.Equal(t, "1", flag.DefValue)
}

func TestRunCmd_DefaultResultsDir_IsResults(t *testing.T) {
	flag := runCmd.Flags().Lookup("results-dir")
	assert.NotNil(t, flag, "results-dir flag must be registered")
	assert.Equal(t, "Results", flag.DefValue)
}

func TestRootCmd_RunIsRegisteredAsASubcommand(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "run" {
			found = true
		}
	}
	assert.True(t, found, "expected the run subcommand to be registered on the root command")
}

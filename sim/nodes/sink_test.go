package nodes

import (
	"testing"

	"github.com/astrons/astrons/sim"
)

func TestSink_Process_AbsorbsWithNoOutputs(t *testing.T) {
	s := newTestSim()
	node, err := NewSink(s, "sink", nil)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	proc := node.(sim.Processor)

	outcome, err := proc.Process(0, sim.NewMessage("m1"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcome.Outputs) != 0 {
		t.Errorf("expected a sink to emit no outputs, got %d", len(outcome.Outputs))
	}
}

package nodes

import (
	"testing"

	"github.com/astrons/astrons/sim"
)

// GIVEN a partitioner keyed on "targets"
// WHEN a message carries a list-valued "targets" field
// THEN it fans out into one message per list element (§8 scenario 5).
func TestPartitioner_Process_FansOutListElements(t *testing.T) {
	s := newTestSim()
	node, err := NewPartitioner(s, "part", map[string]sim.Value{"key": "targets"})
	if err != nil {
		t.Fatalf("NewPartitioner: %v", err)
	}
	proc := node.(sim.Processor)

	msg := sim.NewMessage("m1")
	msg.Set("targets", []any{"gs1", "gs2", "gs3"})

	outcome, err := proc.Process(0, msg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcome.Outputs) != 3 {
		t.Fatalf("expected 3 outputs, got %d", len(outcome.Outputs))
	}
	for i, want := range []string{"gs1", "gs2", "gs3"} {
		if got := outcome.Outputs[i].GetString("targets"); got != want {
			t.Errorf("output[%d][targets] = %q, want %q", i, got, want)
		}
	}
}

func TestPartitioner_Process_MissingKeyEmitsNothing(t *testing.T) {
	s := newTestSim()
	node, _ := NewPartitioner(s, "part", map[string]sim.Value{"key": "targets"})
	proc := node.(sim.Processor)

	outcome, err := proc.Process(0, sim.NewMessage("m1"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcome.Outputs) != 0 {
		t.Errorf("expected no outputs when the list field is absent, got %d", len(outcome.Outputs))
	}
}

func TestPartitioner_Process_NonListValueEmitsNothing(t *testing.T) {
	s := newTestSim()
	node, _ := NewPartitioner(s, "part", map[string]sim.Value{"key": "targets"})
	proc := node.(sim.Processor)

	msg := sim.NewMessage("m1")
	msg.Set("targets", "not-a-list")

	outcome, err := proc.Process(0, msg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcome.Outputs) != 0 {
		t.Errorf("expected no outputs for a non-list field value, got %d", len(outcome.Outputs))
	}
}

package nodes

import (
	"errors"
	"testing"

	"github.com/astrons/astrons/sim"
)

func TestBrokerSource_Produce_DrainsRecordsThenStops(t *testing.T) {
	s := newTestSim()
	node, err := NewBrokerSource(s, "bsrc", map[string]sim.Value{
		"records": []any{10.0, 20.0, 30.0},
	})
	if err != nil {
		t.Fatalf("NewBrokerSource: %v", err)
	}
	src := node.(sim.Source)

	var sizes []float64
	for {
		outcome, err := src.Produce(0)
		if err != nil {
			t.Fatalf("Produce: %v", err)
		}
		if outcome.Reserve == sim.StopSignal {
			break
		}
		sizes = append(sizes, outcome.Outputs[0].GetFloat(s.MsgSizeKey))
	}

	want := []float64{10, 20, 30}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(sizes))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, sizes[i], want[i])
		}
	}
}

func TestBrokerSource_Produce_EmptyRecordsStopsImmediately(t *testing.T) {
	s := newTestSim()
	node, _ := NewBrokerSource(s, "bsrc", nil)
	src := node.(sim.Source)

	outcome, err := src.Produce(0)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if outcome.Reserve != sim.StopSignal {
		t.Error("expected an empty records list to stop immediately")
	}
}

func TestBrokerSink_Process_WritesToRecorderOnSuccess(t *testing.T) {
	s := newTestSim()
	node, err := NewBrokerSink(s, "bsink", nil)
	if err != nil {
		t.Fatalf("NewBrokerSink: %v", err)
	}
	sink := node.(*BrokerSink)

	msg := sim.NewMessage("m1")
	if _, err := sink.Process(0, msg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	recorded := sink.Recorder().Records
	if len(recorded) != 1 || recorded[0].ID() != "m1" {
		t.Fatalf("expected the message to be recorded, got %#v", recorded)
	}
}

type failingWriter struct {
	failures int
	calls    int
}

func (w *failingWriter) Write(_ string, _ sim.Message) error {
	w.calls++
	if w.calls <= w.failures {
		return errors.New("write failed")
	}
	return nil
}

func TestBrokerSink_Process_RetriesUpToConfiguredLimit(t *testing.T) {
	s := newTestSim()
	node, err := NewBrokerSink(s, "bsink", map[string]sim.Value{"retries": int64(2)})
	if err != nil {
		t.Fatalf("NewBrokerSink: %v", err)
	}
	sink := node.(*BrokerSink)
	sink.writer = &failingWriter{failures: 2}

	if _, err := sink.Process(0, sim.NewMessage("m1")); err != nil {
		t.Fatalf("expected success within the retry budget, got %v", err)
	}
}

func TestBrokerSink_Process_ExhaustsRetriesAndReturnsError(t *testing.T) {
	s := newTestSim()
	node, err := NewBrokerSink(s, "bsink", map[string]sim.Value{"retries": int64(1)})
	if err != nil {
		t.Fatalf("NewBrokerSink: %v", err)
	}
	sink := node.(*BrokerSink)
	sink.writer = &failingWriter{failures: 99}

	if _, err := sink.Process(0, sim.NewMessage("m1")); err == nil {
		t.Error("expected an error once retries are exhausted")
	}
}

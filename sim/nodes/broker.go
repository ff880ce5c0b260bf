package nodes

import (
	"context"
	"fmt"

	"github.com/astrons/astrons/sim"
	"golang.org/x/sync/errgroup"
)

// BrokerSource is the deterministic in-memory stand-in for a message
// source adapter (§6 item 2): a fixed queue of records, configured at
// construction, drained one per Produce call. A real deployment would
// replace the queue with a live consumer; the core only depends on the
// Source interface at the boundary.
type BrokerSource struct {
	label   string
	records []sim.Value
	pos     int
	sizeKey string
}

// NewBrokerSource constructs a BrokerSource (type tag "brokersource") from
// a "records" list of size values, consumed in order.
func NewBrokerSource(s *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	records, _ := config["records"].([]any)
	return &BrokerSource{
		label:   label,
		records: records,
		sizeKey: sim.ConfigString(config, "size_key", s.MsgSizeKey),
	}, nil
}

func (n *BrokerSource) Label() string { return n.label }

func (n *BrokerSource) Produce(_ int64) (sim.Outcome, error) {
	if n.pos >= len(n.records) {
		return sim.Outcome{Reserve: sim.StopSignal}, nil
	}
	rec := n.records[n.pos]
	n.pos++

	msg := sim.NewMessage(fmt.Sprintf("%s-%d", n.label, n.pos))
	msg.Set(n.sizeKey, rec)

	return sim.Outcome{Reserve: 1, Outputs: []sim.Message{msg}}, nil
}

// Writer is the external-I/O boundary a BrokerSink hands serialized
// messages to. Implementations perform the actual network call; the
// default used by the orchestrator is an in-memory recorder.
type Writer interface {
	Write(label string, msg sim.Message) error
}

// RecordingWriter is the deterministic Writer stand-in: it appends every
// message it's given to Records rather than performing real I/O,
// satisfying the "deterministic in-memory stand-in" requirement of §6
// item 3 / SPEC_FULL supplemented feature 5.
type RecordingWriter struct {
	Records []sim.Message
}

func (w *RecordingWriter) Write(_ string, msg sim.Message) error {
	w.Records = append(w.Records, msg)
	return nil
}

// BrokerSink is the leaf node adapter of §6 item 3: it consumes a message,
// hands the external write off to a worker goroutine supervised by an
// errgroup.Group (so a future multi-attempt write can be expressed as
// multiple goroutines whose errors aggregate into one), and blocks the
// step on its completion — the node-local retry policy of §7's "External
// I/O failure" row. It emits no outputs.
type BrokerSink struct {
	label   string
	writer  Writer
	retries int
}

// NewBrokerSink constructs a BrokerSink (type tag "brokersink") writing to
// a RecordingWriter, retrying up to "retries" times (default 0) on
// failure before giving up and returning an error (dropped by the node
// runtime per §7, logged as a warning).
func NewBrokerSink(_ *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &BrokerSink{
		label:   label,
		writer:  &RecordingWriter{},
		retries: int(sim.ConfigInt64(config, "retries", 0)),
	}, nil
}

// Recorder exposes the sink's RecordingWriter for tests and orchestrator
// artifact collection.
func (n *BrokerSink) Recorder() *RecordingWriter {
	rw, _ := n.writer.(*RecordingWriter)
	return rw
}

func (n *BrokerSink) Label() string { return n.label }

func (n *BrokerSink) Process(_ int64, msg sim.Message) (sim.Outcome, error) {
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		for attempt := 0; attempt <= n.retries; attempt++ {
			if err = n.writer.Write(n.label, msg); err == nil {
				return nil
			}
		}
		return fmt.Errorf("brokersink %s: %w", n.label, err)
	})
	if err := g.Wait(); err != nil {
		return sim.Outcome{}, err
	}
	return sim.Outcome{}, nil
}

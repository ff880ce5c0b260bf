package nodes

import "github.com/astrons/astrons/sim"

// Sink is a terminal processor: it absorbs every message it receives and
// emits nothing (grounded on the original's message_sinks package — a
// pure "data ends here" node).
type Sink struct {
	label string
}

// NewSink constructs a Sink (type tag "sink").
func NewSink(_ *sim.Simulation, label string, _ map[string]sim.Value) (sim.Node, error) {
	return &Sink{label: label}, nil
}

func (n *Sink) Label() string { return n.label }

func (n *Sink) Process(_ int64, _ sim.Message) (sim.Outcome, error) {
	return sim.Outcome{}, nil
}

package nodes

import "github.com/astrons/astrons/sim"

// Passthrough sets a fixed key/value pair on every message it forwards, or
// simply relays the message unchanged if Key is empty (grounded on
// nodes/core/message_sources/add_key_value.py, simplified: the original's
// arbitrary exec()-based value_fn is a configuration-as-code escape hatch
// with no idiomatic Go equivalent and is dropped — see DESIGN.md).
type Passthrough struct {
	label      string
	key, value string
	timeDelay  int64
}

// NewPassthrough constructs a Passthrough (type tag "passthrough",
// "addkeyvalue") from key, value, time_delay.
func NewPassthrough(_ *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &Passthrough{
		label:     label,
		key:       sim.ConfigString(config, "key", ""),
		value:     sim.ConfigString(config, "value", ""),
		timeDelay: sim.ConfigInt64(config, "time_delay", 0),
	}, nil
}

func (n *Passthrough) Label() string { return n.label }

func (n *Passthrough) Process(_ int64, msg sim.Message) (sim.Outcome, error) {
	out := msg.Clone()
	if n.key != "" {
		out.Set(n.key, n.value)
	}
	return sim.Outcome{Reserve: n.timeDelay, Delay: n.timeDelay, Outputs: []sim.Message{out}}, nil
}

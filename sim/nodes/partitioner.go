package nodes

import "github.com/astrons/astrons/sim"

// Partitioner fans a single message out into one message per element of a
// list-valued field (§8 scenario 5; grounded on
// nodes/core/network/partitioner.py).
type Partitioner struct {
	label     string
	key       string
	timeDelay int64
}

// NewPartitioner constructs a Partitioner (type tag "partitioner") from
// key (default "KEY") and time_delay.
func NewPartitioner(_ *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &Partitioner{
		label:     label,
		key:       sim.ConfigString(config, "key", "KEY"),
		timeDelay: sim.ConfigInt64(config, "time_delay", 0),
	}, nil
}

func (n *Partitioner) Label() string { return n.label }

func (n *Partitioner) Process(_ int64, msg sim.Message) (sim.Outcome, error) {
	v, ok := msg.Get(n.key)
	if !ok {
		return sim.Outcome{Reserve: n.timeDelay, Delay: n.timeDelay}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return sim.Outcome{Reserve: n.timeDelay, Delay: n.timeDelay}, nil
	}

	outputs := make([]sim.Message, 0, len(list))
	for _, val := range list {
		out := msg.Clone()
		out.Set(n.key, val)
		outputs = append(outputs, out)
	}

	return sim.Outcome{Reserve: n.timeDelay, Delay: n.timeDelay, Outputs: outputs}, nil
}

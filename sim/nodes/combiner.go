package nodes

import "github.com/astrons/astrons/sim"

// Combiner accumulates a key's value from NumMessages consecutive
// messages into a list, then forwards one message carrying that list and
// resets (§8 scenario 4; grounded on nodes/core/network/combiner.py).
type Combiner struct {
	label string

	numMessages int64
	key         string
	timeDelay   int64
	procDelay   int64

	seen   int64
	fields []sim.Value
}

// NewCombiner constructs a Combiner (type tag "combiner") from
// num_messages (default 1), key (default the simulation's size key),
// time_delay, processing_delay.
func NewCombiner(s *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &Combiner{
		label:       label,
		numMessages: sim.ConfigInt64(config, "num_messages", 1),
		key:         sim.ConfigString(config, "key", s.MsgSizeKey),
		timeDelay:   sim.ConfigInt64(config, "time_delay", 0),
		procDelay:   sim.ConfigInt64(config, "processing_delay", 0),
	}, nil
}

func (n *Combiner) Label() string { return n.label }

func (n *Combiner) Process(_ int64, msg sim.Message) (sim.Outcome, error) {
	n.seen++
	if v, ok := msg.Get(n.key); ok {
		if list, isList := v.([]any); isList {
			n.fields = append(n.fields, list...)
		} else {
			n.fields = append(n.fields, v)
		}
	}

	reserve := n.procDelay
	delay := n.timeDelay + n.procDelay

	target := n.numMessages
	if target <= 0 {
		target = 1
	}
	if n.seen < target {
		return sim.Outcome{Reserve: reserve, Delay: delay}, nil
	}

	out := msg.Clone()
	out.Set(n.key, n.fields)
	n.seen = 0
	n.fields = nil

	return sim.Outcome{Reserve: reserve, Delay: delay, Outputs: []sim.Message{out}}, nil
}

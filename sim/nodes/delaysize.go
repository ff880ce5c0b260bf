package nodes

import (
	"math"

	"github.com/astrons/astrons/sim"
)

// DelaySize delays a message by its payload size divided by a configured
// rate (grounded on nodes/core/network/delaysize.py): a message carrying
// N Mbit at RatePerMbit Mbit/s takes N/RatePerMbit virtual seconds to
// traverse the node.
type DelaySize struct {
	label       string
	ratePerMbit float64
	sizeKey     string
}

// NewDelaySize constructs a DelaySize (type tag "delaysize") from
// rate_per_mbit (default 100.0).
func NewDelaySize(s *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &DelaySize{
		label:       label,
		ratePerMbit: sim.ConfigFloat(config, "rate_per_mbit", 100.0),
		sizeKey:     sim.ConfigString(config, "size_key", s.MsgSizeKey),
	}, nil
}

func (n *DelaySize) Label() string { return n.label }

func (n *DelaySize) Process(_ int64, msg sim.Message) (sim.Outcome, error) {
	rate := n.ratePerMbit
	if rate <= 0 {
		rate = 1
	}
	delay := int64(math.Round(msg.GetFloat(n.sizeKey) / rate))
	return sim.Outcome{Reserve: delay, Delay: delay, Outputs: []sim.Message{msg.Clone()}}, nil
}

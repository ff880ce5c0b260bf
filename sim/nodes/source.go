package nodes

import (
	"math"
	"math/rand"

	"github.com/astrons/astrons/sim"
	"github.com/google/uuid"
)

// Source is a pure-source node generating randomized messages (grounded on
// the original's RandomDataSource, nodes/core/message_sources/random_data_source.py).
// Each message gets a fresh size in [SizeMin, SizeMax] and the node re-arms
// after a uniform random delay in [DelayMin, DelayMax], unless SinglePulse
// stops it after the first message.
type Source struct {
	label string
	rng   *rand.Rand

	sizeMin, sizeMax   int64
	delayMin, delayMax float64
	singlePulse        bool
	active             bool

	sizeKey string
}

// NewSource constructs a Source (type tag "source", "randomdatagen") from
// its composed config: random_size_min/max, random_delay_min/max,
// single_pulse, start_node_active.
func NewSource(s *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	return &Source{
		label:       label,
		rng:         s.RNG.ForSubsystem(sim.SubsystemNode(label)),
		sizeMin:     sim.ConfigInt64(config, "random_size_min", 10),
		sizeMax:     sim.ConfigInt64(config, "random_size_max", 100),
		delayMin:    sim.ConfigFloat(config, "random_delay_min", 1.0),
		delayMax:    sim.ConfigFloat(config, "random_delay_max", 10.0),
		singlePulse: sim.ConfigBool(config, "single_pulse", false),
		active:      sim.ConfigBool(config, "start_node_active", true),
		sizeKey:     sim.ConfigString(config, "size_key", s.MsgSizeKey),
	}, nil
}

func (n *Source) Label() string { return n.label }

// Produce emits one randomized message and re-arms, or emits the
// StopSignal once SinglePulse has fired (§4.2 "pure source").
func (n *Source) Produce(now int64) (sim.Outcome, error) {
	if !n.active {
		return sim.Outcome{Reserve: sim.StopSignal}, nil
	}

	span := n.sizeMax - n.sizeMin
	size := n.sizeMin
	if span > 0 {
		size += n.rng.Int63n(span + 1)
	}

	// IDs are drawn from this node's own partitioned RNG stream rather than
	// uuid.New()'s global entropy, so msg_history.csv is byte-identical
	// across two runs with the same seed (§5, §8 property 4).
	id, err := uuid.NewRandomFromReader(n.rng)
	if err != nil {
		return sim.Outcome{}, err
	}
	msg := sim.NewMessage(id.String())
	msg.Set(n.sizeKey, float64(size))

	if n.singlePulse {
		n.active = false
	}

	delaySpan := n.delayMax - n.delayMin
	delay := n.delayMin
	if delaySpan > 0 {
		delay += n.rng.Float64() * delaySpan
	}
	reserve := int64(math.Round(delay))

	return sim.Outcome{Reserve: reserve, Delay: 0, Outputs: []sim.Message{msg}}, nil
}

package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// with the same SimulationKey and identical network description MUST
// produce byte-identical msg_history.csv output (§5 Determinism, §8
// property 4), including the message ID column: source nodes draw their
// IDs from their own seeded stream (see DESIGN.md).
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a CLI-provided seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemRouter is the RNG subsystem consumed by NodePipe.Put to draw
	// random_router_value (§4.4).
	SubsystemRouter = "router"

	// SubsystemNodePrefix prefixes the subsystem name for a node's own
	// private random draws (e.g. a RandomDataGen source), keeping a node's
	// draws isolated from the router's and from every other node's.
	SubsystemNodePrefix = "node:"
)

// SubsystemNode returns the subsystem name for the given node label.
func SubsystemNode(label string) string {
	return SubsystemNodePrefix + label
}

// PartitionedRNG provides deterministic, isolated *rand.Rand instances per
// subsystem, so that adding or removing one node's random draws never
// perturbs another subsystem's draw sequence (§5 Determinism — "the RNG is
// consumed in a fixed order... implementations must not introduce
// nondeterministic ordering").
//
// Thread-safety: NOT thread-safe. Only ever touched from the event-loop
// goroutine (§5 Shared resources).
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, subsystems: make(map[string]*rand.Rand)}
}

// ForSubsystem returns a deterministically-seeded *rand.Rand for name,
// caching it so repeated calls return the same stream. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derived := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derived))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey this RNG was constructed from.
func (p *PartitionedRNG) Key() SimulationKey { return p.key }

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

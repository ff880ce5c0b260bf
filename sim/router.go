package sim

import "math/rand"

// selectiveRoute pairs a compiled predicate with its destination Pipe and
// the original source text. The source text is stored only; nothing in
// the package reads it back.
type selectiveRoute struct {
	predicate Predicate
	pipe      *Pipe
	source    string
}

// NodePipe is the per-source fan-out router (C4): one per outgoing edge set
// of a node, holding unconditional broadcast targets and predicate-gated
// selective targets.
type NodePipe struct {
	broadcast []*Pipe
	selective []selectiveRoute
}

// NewNodePipe creates an empty NodePipe.
func NewNodePipe() *NodePipe {
	return &NodePipe{}
}

// AddBroadcast attaches an always-on output Pipe (§3).
func (np *NodePipe) AddBroadcast(p *Pipe) {
	np.broadcast = append(np.broadcast, p)
}

// AddSelective attaches a predicate-gated output Pipe, storing the source
// text alongside it.
func (np *NodePipe) AddSelective(p *Pipe, pred Predicate, source string) {
	np.selective = append(np.selective, selectiveRoute{predicate: pred, pipe: p, source: source})
}

// Targets returns the number of downstream pipes wired to this router.
// The node runtime treats a router with zero targets as terminal.
func (np *NodePipe) Targets() int {
	return len(np.broadcast) + len(np.selective)
}

// Put implements the router algorithm of §4.4:
//  1. inject random_router_value and __SimTime__ into msg,
//  2. evaluate every selective predicate against (now, msg), depositing a
//     clone into its Pipe on true,
//  3. deposit a clone into every broadcast Pipe unconditionally,
//  4. return the labels of every Pipe a copy was deposited into (empty
//     means terminal routing — §4.4 step 4, §4.3 "one entry per deposited
//     target").
//
// Routing order among predicates is unspecified by §4.4; this
// implementation evaluates them in registration order, which is
// deterministic and therefore satisfies the weaker spec requirement.
func (np *NodePipe) Put(now int64, msg Message, rng *rand.Rand) []string {
	msg.Set(KeyRandomRouterValue, float64(rng.Intn(101)))
	msg.Set(KeySimTime, float64(now))

	var targets []string
	for _, route := range np.selective {
		if route.predicate(now, msg) {
			route.pipe.Put(now, msg.Clone())
			targets = append(targets, route.pipe.Label())
		}
	}
	for _, pipe := range np.broadcast {
		pipe.Put(now, msg.Clone())
		targets = append(targets, pipe.Label())
	}
	return targets
}

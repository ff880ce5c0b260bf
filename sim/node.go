package sim

import "math"

// StopSignal is the sentinel reserve-time value that cooperatively
// terminates a node. A distinct large sentinel rather than a negative
// value, so it doesn't overload the "negative R is clamped" error path
// with termination semantics.
const StopSignal int64 = math.MaxInt64

// Outcome is what a node yields on each step: a state machine per node
// whose step is a pure function, rather than a goroutine-per-node
// rendering of a generator/coroutine protocol.
type Outcome struct {
	Reserve int64     // R: virtual seconds the node stays busy
	Delay   int64     // Δ: virtual seconds until each output is visible downstream
	Outputs []Message // messages to emit, possibly empty, possibly many
}

// Node is the minimum a node-kind must implement: a stable label used in
// history records, edge wiring, and artifact output.
type Node interface {
	Label() string
}

// Processor is a Node with an input Pipe: each step consumes exactly one
// message (§4.2 "has an input Pipe and is not a pure source").
type Processor interface {
	Node
	Process(now int64, msg Message) (Outcome, error)
}

// Source is a pure-source Node: no input Pipe, driven only by the
// scheduler at its own cadence (§4.2 "pure source").
type Source interface {
	Node
	Produce(now int64) (Outcome, error)
}

// Constructor builds a Node from its composed configuration (§6 "Node
// author interface"). Generalized from the spec's minimal (clock, label,
// config) tuple to the full Simulation context, since real node kinds also
// need RNG isolation (§5 Determinism) and logging.
type Constructor func(s *Simulation, label string, config map[string]Value) (Node, error)

// NodeCounters accumulates the per-node bookkeeping of §4.3.
type NodeCounters struct {
	MessagesProcessed int64
	TotalDataSize     float64
	WaitTimes         []int64
	DelaysTillNext    []int64
	ReserveTimes      []int64
}

// NodeRuntime drives one Node's execution loop (C6): draining its input
// Pipe (if any), invoking the node's step function, emitting bookkeeping,
// and scheduling outputs at now+delay through its outgoing NodePipe.
type NodeRuntime struct {
	label    string
	node     Node
	proc     Processor
	src      Source
	in       *Pipe
	out      *NodePipe
	sim      *Simulation
	config   map[string]Value
	meta     *MetaNode
	counters NodeCounters

	reserveUntil int64
	stopped      bool
	started      bool
}

// newNodeRuntime wraps node with its wiring. in/out may be nil.
func newNodeRuntime(sim *Simulation, node Node, config map[string]Value, in *Pipe, out *NodePipe) *NodeRuntime {
	rt := &NodeRuntime{
		label:  node.Label(),
		node:   node,
		config: config,
		in:     in,
		out:    out,
		sim:    sim,
	}
	rt.proc, _ = node.(Processor)
	rt.src, _ = node.(Source)
	return rt
}

// Label returns the node's fully-qualified label.
func (rt *NodeRuntime) Label() string { return rt.label }

// Counters exposes the accumulated bookkeeping for stats output (§4.8).
func (rt *NodeRuntime) Counters() NodeCounters { return rt.counters }

// SetMetaNode binds the non-owning parent back-reference (§4.6 step 4).
func (rt *NodeRuntime) SetMetaNode(m *MetaNode) { rt.meta = m }

// MetaNode returns the parent meta-node, or nil if this node is not part
// of one.
func (rt *NodeRuntime) MetaNode() *MetaNode { return rt.meta }

// Input returns the node's input Pipe, creating it on first use. Called by
// the network factory's edge-wiring pass (C9 §4.7), which attaches edges
// after every node in a scope has been constructed.
func (rt *NodeRuntime) Input() *Pipe {
	if rt.in == nil {
		rt.in = NewPipe(rt.label)
	}
	return rt.in
}

// Output returns the node's outgoing NodePipe, creating it on first use.
func (rt *NodeRuntime) Output() *NodePipe {
	if rt.out == nil {
		rt.out = NewNodePipe()
	}
	return rt.out
}

// Config returns the node's composed configuration, for loaders that need
// to inspect it after construction (edge wiring walks every key).
func (rt *NodeRuntime) Config() map[string]Value { return rt.config }

// LocationAt returns this node's parent meta-node's propagated location,
// mirroring the original's get_location (§3 "Meta-node").
func (rt *NodeRuntime) LocationAt(simtime int64) (lat, lon, alt float64, velocity [3]float64, ok bool) {
	if rt.meta == nil {
		return 0, 0, 0, [3]float64{}, false
	}
	return rt.meta.LocationAt(simtime)
}

// start wires the runtime into the clock/pipe event graph. Must be called
// exactly once, after all edges are attached (C9 second pass).
func (rt *NodeRuntime) start() {
	if rt.started {
		return
	}
	rt.started = true

	switch {
	case rt.in != nil && rt.proc != nil:
		rt.in.OnArrival(func() { rt.tryAdvance(rt.sim.Clock.Now()) })
	case rt.in == nil && rt.src != nil:
		rt.scheduleProduce(rt.sim.Clock.Now())
	}
}

// tryAdvance pops and processes at most one message if the node is not
// reserved and its input pipe is non-empty (§4.2 at-most-one-in-flight).
func (rt *NodeRuntime) tryAdvance(now int64) {
	if rt.stopped || rt.in == nil {
		return
	}
	if now < rt.reserveUntil {
		return
	}
	enqueueTime, msg, ok := rt.in.TryGet()
	if !ok {
		return
	}

	outcome, err := rt.proc.Process(now, msg)
	if err != nil {
		rt.sim.Logger.WithField("node", rt.label).Warnf("process error: %v; message dropped", err)
		return
	}
	rt.applyOutcome(now, msg, enqueueTime, outcome)

	// If more input is already buffered and we are no longer reserved at
	// the moment of this step (R==0), keep draining within the same tick;
	// otherwise the next attempt happens on reserve-release or arrival.
	if !rt.stopped && rt.in.Len() > 0 && now >= rt.reserveUntil {
		rt.tryAdvance(now)
	}
}

// clampOutcome enforces §7's "negative R or Δ: clamp to 0 and log" rule,
// leaving the StopSignal sentinel untouched.
func (rt *NodeRuntime) clampOutcome(outcome Outcome) (reserve, delay int64, stopping bool) {
	reserve, delay = outcome.Reserve, outcome.Delay
	stopping = reserve == StopSignal
	if stopping {
		return reserve, delay, true
	}
	if reserve < 0 {
		rt.sim.Logger.WithField("node", rt.label).Warnf("negative reserve time %d clamped to 0", reserve)
		reserve = 0
	}
	if delay < 0 {
		rt.sim.Logger.WithField("node", rt.label).Warnf("negative delay %d clamped to 0", delay)
		delay = 0
	}
	return reserve, delay, false
}

// applyOutcome validates R/Δ (clamping negatives per §7), records
// bookkeeping, schedules delivery of each output, and arms the reserve
// window / stop condition.
func (rt *NodeRuntime) applyOutcome(now int64, in Message, enqueueTime int64, outcome Outcome) {
	reserve, delay, stopping := rt.clampOutcome(outcome)

	waitTime := now - enqueueTime
	rt.counters.MessagesProcessed++
	rt.counters.WaitTimes = append(rt.counters.WaitTimes, waitTime)
	if !stopping {
		rt.counters.ReserveTimes = append(rt.counters.ReserveTimes, reserve)
		rt.counters.DelaysTillNext = append(rt.counters.DelaysTillNext, delay)
	}

	if len(outcome.Outputs) == 0 {
		rt.sim.History.recordTerminal(now, rt.label, in)
	} else {
		for _, outMsg := range outcome.Outputs {
			rt.counters.TotalDataSize += outMsg.GetFloat(rt.sim.MsgSizeKey)
			rt.scheduleDelivery(now, delay, reserve, waitTime, outMsg)
		}
	}

	if stopping {
		rt.stopped = true
		return
	}
	rt.reserveUntil = now + reserve
	if reserve > 0 {
		rt.sim.Clock.ScheduleAfter(reserve, func(t int64) { rt.tryAdvance(t) })
	}
}

// scheduleDelivery schedules the router.Put for one output message at
// now+delay, stamping last_node/time_sent at delivery time (§4.2 step 5).
func (rt *NodeRuntime) scheduleDelivery(now, delay, reserve, waitTime int64, msg Message) {
	rt.sim.Clock.ScheduleAfter(delay, func(t int64) {
		msg.Set(KeyLastNode, rt.label)
		msg.Set(KeyTimeSent, float64(t))
		if rt.out == nil || rt.out.Targets() == 0 {
			rt.sim.History.recordTerminal(t, rt.label, msg)
			return
		}
		rng := rt.sim.RNG.ForSubsystem(SubsystemRouter)
		targets := rt.out.Put(t, msg, rng)
		if len(targets) == 0 {
			rt.sim.History.recordTerminal(t, rt.label, msg)
			return
		}
		for _, toLabel := range targets {
			rt.sim.History.record(t, rt.label, toLabel, msg, reserve, delay, waitTime)
		}
	})
}

// scheduleProduce drives a pure source: Produce is invoked, its outputs are
// scheduled exactly like a processor's, and the source re-arms itself at
// now+R unless R is StopSignal (§4.2 "pure source").
func (rt *NodeRuntime) scheduleProduce(now int64) {
	if rt.stopped {
		return
	}
	outcome, err := rt.src.Produce(now)
	if err != nil {
		rt.sim.Logger.WithField("node", rt.label).Warnf("produce error: %v", err)
		rt.stopped = true
		return
	}

	reserve, delay, stopping := rt.clampOutcome(outcome)

	for _, outMsg := range outcome.Outputs {
		rt.counters.TotalDataSize += outMsg.GetFloat(rt.sim.MsgSizeKey)
		rt.scheduleDelivery(now, delay, reserve, 0, outMsg)
	}
	rt.counters.MessagesProcessed += int64(len(outcome.Outputs))

	if stopping {
		rt.stopped = true
		return
	}
	rt.sim.Clock.ScheduleAfter(reserve, func(t int64) { rt.scheduleProduce(t) })
}

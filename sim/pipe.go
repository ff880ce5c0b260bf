package sim

// pipeEntry is a single buffered (enqueue_time, message) pair (§3).
type pipeEntry struct {
	enqueueTime int64
	msg         Message
}

// Pipe is a single-consumer FIFO buffer feeding one node's input (C3). It
// has unbounded nominal capacity (§3). The node runtime (C6) is the sole
// consumer; Put may be called by any number of upstream NodePipes.
type Pipe struct {
	label     string
	queue     []pipeEntry
	onArrival func()
}

// NewPipe creates an empty Pipe labeled with its destination node, used in
// diagnostics and artifact output.
func NewPipe(label string) *Pipe {
	return &Pipe{label: label}
}

// Label returns the destination node label this pipe feeds.
func (p *Pipe) Label() string { return p.label }

// Len reports the number of buffered entries.
func (p *Pipe) Len() int { return len(p.queue) }

// OnArrival registers a callback invoked whenever Put transitions the pipe
// from empty to non-empty. The node runtime uses this to resume a node
// that was suspended waiting on this pipe (§4.2, §5 suspension points).
func (p *Pipe) OnArrival(fn func()) {
	p.onArrival = fn
}

// Put enqueues msg, stamped with its enqueue time. If the pipe was empty,
// the registered arrival callback (if any) fires after the entry is
// appended.
func (p *Pipe) Put(now int64, msg Message) {
	wasEmpty := len(p.queue) == 0
	p.queue = append(p.queue, pipeEntry{enqueueTime: now, msg: msg})
	if wasEmpty && p.onArrival != nil {
		p.onArrival()
	}
}

// TryGet pops the oldest entry, if any. The node runtime calls this from
// within an event action rather than blocking a goroutine — §9's
// state-machine rendering of the generator protocol.
func (p *Pipe) TryGet() (enqueueTime int64, msg Message, ok bool) {
	if len(p.queue) == 0 {
		return 0, Message{}, false
	}
	e := p.queue[0]
	p.queue = p.queue[1:]
	return e.enqueueTime, e.msg, true
}

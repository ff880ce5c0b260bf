package sim

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Action is the work performed when a scheduled event fires. now is the
// clock's virtual time at the moment the event is executed (§4.1).
type Action func(now int64)

// event is a single scheduled entry: (virtual_time, sequence_number, action)
// per §3's Scheduled event tuple.
type event struct {
	time   int64
	seq    int64
	action Action
}

// eventQueue is a min-heap ordered by (time, seq), giving same-time events
// strict FIFO tie-breaking in insertion order (§4.1 ordering guarantee).
type eventQueue []event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Pacing configures optional real-time pacing for the clock (§4.1).
type Pacing struct {
	Factor float64 // virtual seconds per wall second; 1.0 = real time
	Strict bool    // fatal overrun vs. warning overrun (§7)
}

// Clock is the min-heap event queue driving the virtual-time simulation
// (C1). It owns the monotonic "now" and a stop flag, and optionally paces
// event execution against wall-clock time.
type Clock struct {
	now     int64
	queue   eventQueue
	nextSeq int64
	stopped bool
	pacing  *Pacing

	lastWallPop time.Time
	lastVirtual int64
}

// NewClock creates a Clock at virtual time zero with no pacing.
func NewClock() *Clock {
	c := &Clock{queue: make(eventQueue, 0)}
	heap.Init(&c.queue)
	return c
}

// WithPacing enables real-time pacing on an existing clock and returns it
// for chaining.
func (c *Clock) WithPacing(p Pacing) *Clock {
	c.pacing = &p
	return c
}

// Now returns the clock's current virtual time.
func (c *Clock) Now() int64 { return c.now }

// ScheduleAfter schedules action to run at now+delay. delay must be >= 0.
func (c *Clock) ScheduleAfter(delay int64, action Action) error {
	if delay < 0 {
		return fmt.Errorf("sim: ScheduleAfter: negative delay %d", delay)
	}
	return c.ScheduleAt(c.now+delay, action)
}

// ScheduleAt schedules action to run at absolute virtual time t. t must be
// >= the clock's current now.
func (c *Clock) ScheduleAt(t int64, action Action) error {
	if t < c.now {
		return fmt.Errorf("sim: ScheduleAt: time %d precedes now %d", t, c.now)
	}
	heap.Push(&c.queue, event{time: t, seq: c.nextSeq, action: action})
	c.nextSeq++
	return nil
}

// Stop requests a hard stop: RunUntil returns after the event currently
// executing (if any) finishes, discarding any remaining queued events
// (§5 Cancellation — pending events are discarded, in-flight Pipe contents
// are lost).
func (c *Clock) Stop() {
	c.stopped = true
}

// Pending reports whether any event remains queued.
func (c *Clock) Pending() bool { return c.queue.Len() > 0 }

// RunUntil repeatedly pops and executes the minimum-time event until the
// queue empties, now reaches tStop, or Stop is called (§4.1). Returns the
// number of events executed.
func (c *Clock) RunUntil(tStop int64) (int, error) {
	executed := 0
	for {
		if c.stopped {
			break
		}
		if c.queue.Len() == 0 {
			break
		}
		next := c.queue[0]
		if next.time >= tStop {
			break
		}
		heap.Pop(&c.queue)
		if err := c.advanceTo(next.time); err != nil {
			return executed, err
		}
		next.action(c.now)
		executed++
	}
	if c.stopped {
		c.queue = c.queue[:0]
	}
	return executed, nil
}

// advanceTo moves now forward to t, applying real-time pacing if enabled.
func (c *Clock) advanceTo(t int64) error {
	if c.pacing == nil || c.pacing.Factor <= 0 {
		c.now = t
		return nil
	}
	virtualDelta := t - c.lastVirtual
	wallBudget := time.Duration(float64(virtualDelta) / c.pacing.Factor * float64(time.Second))
	if c.lastWallPop.IsZero() {
		c.lastWallPop = time.Now()
		c.lastVirtual = t
		c.now = t
		return nil
	}
	elapsed := time.Since(c.lastWallPop)
	if elapsed > wallBudget {
		overrun := elapsed - wallBudget
		if c.pacing.Strict {
			return fmt.Errorf("sim: real-time overrun of %s (strict mode)", overrun)
		}
		logrus.Warnf("sim: real-time overrun of %s", overrun)
	} else {
		time.Sleep(wallBudget - elapsed)
	}
	c.now = t
	c.lastVirtual = t
	c.lastWallPop = time.Now()
	return nil
}

package sim

import "time"

// HistoryRecord is one delivery entry in the message-history map (§4.3):
// (now, virtual_datetime, from_label, to_label, copy_of_message,
// reserve_time, total_delay, wait_time).
type HistoryRecord struct {
	Now             int64
	VirtualDatetime time.Time
	FromLabel       string
	ToLabel         string
	Message         Message
	ReserveTime     int64
	TotalDelay      int64
	WaitTime        int64
	Terminal        bool
}

// History is the global message-history map keyed by message ID (§4.3).
// It is a field of Simulation (§9 DESIGN NOTES — module-level global state
// becomes an explicit context object) rather than a package-level map, and
// is touched only from the event-loop goroutine (§5 Shared resources).
type History struct {
	epoch   time.Time
	order   []string // insertion order of IDs, for deterministic iteration
	records map[string][]HistoryRecord
}

// NewHistory creates an empty History anchored at epoch (§4.8 item 1 — the
// wall datetime mapped to virtual time zero).
func NewHistory(epoch time.Time) *History {
	return &History{epoch: epoch, records: make(map[string][]HistoryRecord)}
}

func (h *History) virtualDatetime(now int64) time.Time {
	return h.epoch.Add(time.Duration(now) * time.Second)
}

// record appends a non-terminal delivery entry for msg's ID.
func (h *History) record(now int64, from, to string, msg Message, reserve, delay, wait int64) {
	h.append(msg.ID(), HistoryRecord{
		Now:             now,
		VirtualDatetime: h.virtualDatetime(now),
		FromLabel:       from,
		ToLabel:         to,
		Message:         msg.Clone(),
		ReserveTime:     reserve,
		TotalDelay:      delay,
		WaitTime:        wait,
	})
}

// recordTerminal appends a terminal entry: a message reached a node whose
// router matched zero targets (§4.3, §8 boundary behaviors).
func (h *History) recordTerminal(now int64, at string, msg Message) {
	h.append(msg.ID(), HistoryRecord{
		Now:             now,
		VirtualDatetime: h.virtualDatetime(now),
		FromLabel:       at,
		ToLabel:         "",
		Message:         msg.Clone(),
		Terminal:        true,
	})
}

func (h *History) append(id string, rec HistoryRecord) {
	if _, ok := h.records[id]; !ok {
		h.order = append(h.order, id)
	}
	h.records[id] = append(h.records[id], rec)
}

// For returns the ordered history records for a given message ID.
func (h *History) For(id string) []HistoryRecord {
	return h.records[id]
}

// AllOrdered returns every record across every message ID, in the order
// message IDs were first seen and, within an ID, in delivery order — the
// deterministic iteration order required for byte-identical
// msg_history.csv output across runs (§5, §8 property 4).
func (h *History) AllOrdered() []HistoryRecord {
	var all []HistoryRecord
	for _, id := range h.order {
		all = append(all, h.records[id]...)
	}
	return all
}

// MonotonicPerMessage reports whether every message's delivery sequence is
// non-decreasing in Now, the invariant checked by §8 property 1.
func (h *History) MonotonicPerMessage(id string) bool {
	recs := h.records[id]
	for i := 1; i < len(recs); i++ {
		if recs[i].Now < recs[i-1].Now {
			return false
		}
	}
	return true
}

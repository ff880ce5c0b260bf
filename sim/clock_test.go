package sim

import "testing"

func TestClock_RunUntil_OrdersByTimeThenFIFO(t *testing.T) {
	c := NewClock()
	var order []string

	c.ScheduleAfter(5, func(int64) { order = append(order, "b") })
	c.ScheduleAfter(5, func(int64) { order = append(order, "c") })
	c.ScheduleAfter(1, func(int64) { order = append(order, "a") })

	executed, err := c.RunUntil(100)
	if err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	if executed != 3 {
		t.Fatalf("expected 3 events executed, got %d", executed)
	}

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if order[i] != w {
			t.Errorf("order[%d] = %q, want %q", i, order[i], w)
		}
	}
}

func TestClock_RunUntil_StopsAtTStop(t *testing.T) {
	c := NewClock()
	ran := false
	c.ScheduleAfter(10, func(int64) { ran = true })

	if _, err := c.RunUntil(5); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	if ran {
		t.Error("event at t=10 should not have run before tStop=5")
	}
	if !c.Pending() {
		t.Error("event should remain queued")
	}
}

func TestClock_ScheduleAfter_NegativeDelayErrors(t *testing.T) {
	c := NewClock()
	if err := c.ScheduleAfter(-1, func(int64) {}); err == nil {
		t.Error("expected error for negative delay")
	}
}

func TestClock_Stop_DiscardsPendingEvents(t *testing.T) {
	c := NewClock()
	c.ScheduleAfter(1, func(int64) { c.Stop() })
	c.ScheduleAfter(2, func(int64) { t.Error("should never run after Stop") })

	if _, err := c.RunUntil(100); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	if c.Pending() {
		t.Error("expected no pending events after Stop")
	}
}

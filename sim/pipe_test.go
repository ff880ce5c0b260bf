package sim

import "testing"

func TestPipe_Put_FiresArrivalOnlyOnEmptyToNonEmpty(t *testing.T) {
	p := NewPipe("dst")
	fired := 0
	p.OnArrival(func() { fired++ })

	p.Put(0, NewMessage("a"))
	p.Put(0, NewMessage("b"))

	if fired != 1 {
		t.Errorf("expected arrival callback to fire once, fired %d times", fired)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 buffered entries, got %d", p.Len())
	}
}

func TestPipe_Put_FiresAgainAfterDraining(t *testing.T) {
	p := NewPipe("dst")
	fired := 0
	p.OnArrival(func() { fired++ })

	p.Put(0, NewMessage("a"))
	p.TryGet()
	p.Put(1, NewMessage("b"))

	if fired != 2 {
		t.Errorf("expected arrival callback to fire twice across empty transitions, fired %d times", fired)
	}
}

func TestPipe_TryGet_FIFOOrder(t *testing.T) {
	p := NewPipe("dst")
	p.Put(0, NewMessage("a"))
	p.Put(1, NewMessage("b"))

	_, first, ok := p.TryGet()
	if !ok || first.ID() != "a" {
		t.Errorf("expected first = a, got %v ok=%v", first.ID(), ok)
	}
	_, second, ok := p.TryGet()
	if !ok || second.ID() != "b" {
		t.Errorf("expected second = b, got %v ok=%v", second.ID(), ok)
	}
	if _, _, ok := p.TryGet(); ok {
		t.Error("expected empty pipe to report ok=false")
	}
}

func TestPipe_TryGet_ReturnsEnqueueTime(t *testing.T) {
	p := NewPipe("dst")
	p.Put(42, NewMessage("a"))
	enqueueTime, _, ok := p.TryGet()
	if !ok || enqueueTime != 42 {
		t.Errorf("expected enqueueTime=42, got %d ok=%v", enqueueTime, ok)
	}
}

package game

import "testing"

// TestEventLogRing verifies the log keeps the newest events in order
func TestEventLogRing(t *testing.T) {
	el := NewEventLog(4)

	for i := 0; i < 6; i++ {
		if !el.Emit(Event{Type: EventTypeMeteorSpawned, Slot: i}) {
			t.Fatalf("event %d rejected", i)
		}
	}

	got := el.Recent(-1)
	if len(got) != 4 {
		t.Fatalf("expected 4 stored events, got %d", len(got))
	}
	for i, e := range got {
		if e.Slot != i+2 {
			t.Errorf("event %d has slot %d, want %d", i, e.Slot, i+2)
		}
	}

	last := el.Recent(2)
	if len(last) != 2 || last[0].Slot != 4 || last[1].Slot != 5 {
		t.Errorf("Recent(2) = %+v", last)
	}

	stats := el.GetStats()
	if stats["stored"].(uint64) != 4 || stats["total"].(uint64) != 6 {
		t.Errorf("unexpected stats %v", stats)
	}
}

// TestEventLogRateLimit verifies a flood of one type is throttled
func TestEventLogRateLimit(t *testing.T) {
	el := NewEventLog(64)

	admitted := 0
	for i := 0; i < 1000; i++ {
		if el.Emit(Event{Type: EventTypeBulletFired}) {
			admitted++
		}
	}

	if el.GetTotalCount() != 1000 {
		t.Errorf("total = %d, want 1000", el.GetTotalCount())
	}
	if el.GetDroppedCount() == 0 || admitted >= 1000 {
		t.Errorf("expected throttling, admitted %d", admitted)
	}
	if uint64(admitted)+el.GetDroppedCount() != 1000 {
		t.Errorf("admitted %d + dropped %d != 1000", admitted, el.GetDroppedCount())
	}

	// Another type still has its own budget
	if !el.Emit(Event{Type: EventTypeShipDestroyed}) {
		t.Error("a different event type should not be starved")
	}
}

// TestEventTypeText verifies events encode readable type names
func TestEventTypeText(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventTypeShipBound, "ship_bound"},
		{EventTypeMeteorFragmented, "meteor_fragmented"},
		{EventTypeSlotExhausted, "slot_exhausted"},
		{EventType(200), "unknown"},
	}
	for _, tt := range tests {
		b, _ := tt.typ.MarshalText()
		if string(b) != tt.want {
			t.Errorf("%d: got %q, want %q", tt.typ, b, tt.want)
		}
	}
}

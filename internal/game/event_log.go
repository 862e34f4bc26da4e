package game

import (
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

const (
	MaxEventsPerSec     = 2000 // Global admission rate
	MaxEventsPerTypeSec = 300  // Per event type, so bullet spam cannot starve the rest
)

// EventLog keeps the most recent events in a bounded ring for the debug
// server. Admission is rate limited; the ring overwrites its oldest entry
// when full. Nothing is written to disk.
type EventLog struct {
	mu       sync.Mutex
	buffer   []Event
	head     uint64 // total events admitted
	limiters map[EventType]*rate.Limiter
	global   *rate.Limiter

	droppedCount uint64 // atomic
	totalCount   uint64 // atomic
}

// NewEventLog creates an event log holding at most size events.
func NewEventLog(size int) *EventLog {
	if size < 1 {
		size = 1
	}
	return &EventLog{
		buffer:   make([]Event, size),
		limiters: make(map[EventType]*rate.Limiter),
		global:   rate.NewLimiter(MaxEventsPerSec, MaxEventsPerSec/10),
	}
}

// Emit records an event. Returns false if it was rate limited.
func (el *EventLog) Emit(event Event) bool {
	atomic.AddUint64(&el.totalCount, 1)

	el.mu.Lock()
	defer el.mu.Unlock()

	limiter, ok := el.limiters[event.Type]
	if !ok {
		limiter = rate.NewLimiter(MaxEventsPerTypeSec, MaxEventsPerTypeSec/10)
		el.limiters[event.Type] = limiter
	}
	// Per-type first so a throttled type does not spend the global budget
	if !limiter.Allow() || !el.global.Allow() {
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}

	el.buffer[el.head%uint64(len(el.buffer))] = event
	el.head++
	return true
}

// Recent returns up to n of the latest events, oldest first.
func (el *EventLog) Recent(n int) []Event {
	el.mu.Lock()
	defer el.mu.Unlock()

	size := uint64(len(el.buffer))
	count := el.head
	if count > size {
		count = size
	}
	if n >= 0 && uint64(n) < count {
		count = uint64(n)
	}

	out := make([]Event, 0, count)
	for i := el.head - count; i < el.head; i++ {
		out = append(out, el.buffer[i%size])
	}
	return out
}

// GetStats returns metrics for monitoring
func (el *EventLog) GetStats() map[string]interface{} {
	el.mu.Lock()
	stored := el.head
	if stored > uint64(len(el.buffer)) {
		stored = uint64(len(el.buffer))
	}
	el.mu.Unlock()

	return map[string]interface{}{
		"total":   atomic.LoadUint64(&el.totalCount),
		"dropped": atomic.LoadUint64(&el.droppedCount),
		"stored":  stored,
	}
}

// GetDroppedCount returns the number of rate-limited events
func (el *EventLog) GetDroppedCount() uint64 {
	return atomic.LoadUint64(&el.droppedCount)
}

// GetTotalCount returns the total number of events offered
func (el *EventLog) GetTotalCount() uint64 {
	return atomic.LoadUint64(&el.totalCount)
}

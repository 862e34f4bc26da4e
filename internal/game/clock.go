package game

import "time"

// Clock supplies the monotonic timestamp bullets are aged against.
type Clock interface {
	Now() time.Duration
}

// FrameClock reports wall time elapsed since it was created. It mirrors a
// millisecond tick counter started with the process.
type FrameClock struct {
	start time.Time
}

// NewFrameClock starts a clock at zero.
func NewFrameClock() *FrameClock {
	return &FrameClock{start: time.Now()}
}

// Now returns the monotonic time since the clock started.
func (c *FrameClock) Now() time.Duration {
	return time.Since(c.start)
}

// tickClock derives time from the tick counter, which makes runs
// reproducible regardless of scheduling jitter.
type tickClock struct {
	engine *Engine
}

func (c tickClock) Now() time.Duration {
	return time.Duration(c.engine.tickCount) * c.engine.period
}

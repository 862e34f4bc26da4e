package game

import (
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
)

// heldSource returns the same input every poll; tests change it between ticks.
type heldSource struct {
	in    Input
	polls int
}

func (s *heldSource) Poll() Input {
	s.polls++
	return s.in
}

func (s *heldSource) Class() string { return "test" }

// manualClock is advanced explicitly by tests.
type manualClock struct {
	now time.Duration
}

func (c *manualClock) Now() time.Duration { return c.now }

const (
	testW = 1.25
	testH = 0.8
)

// newTestWorld returns a world on the reference domain with wave
// replenishment disabled, so tests control every meteor.
func newTestWorld() *World {
	tuning := config.DefaultTuning()
	tuning.Wave.Size = 0
	return NewWorld(WorldConfig{
		Width:  testW,
		Height: testH,
		FPS:    30,
		Tuning: tuning,
		Limits: config.DefaultLimits(),
		Seed:   42,
	})
}

// placeShip puts a stationary ship with no controller at (x, y).
func placeShip(w *World, x, y, a float64) Handle {
	h, s, err := w.Store.Ships.Allocate()
	if err != nil {
		panic(err)
	}
	*s = Ship{X: x, Y: y, A: a, Controller: -1}
	return h
}

// placeMeteor puts a stationary meteor of the given tier at (x, y).
func placeMeteor(w *World, tier int, x, y float64) Handle {
	h, m, err := w.Store.Meteors.Allocate()
	if err != nil {
		panic(err)
	}
	*m = Meteor{Tier: tier, X: x, Y: y}
	return h
}

func countTier(w *World, tier int) int {
	n := 0
	for i := 0; i < w.Store.Meteors.Cap(); i++ {
		if m, ok := w.Store.Meteors.At(i); ok && m.Tier == tier {
			n++
		}
	}
	return n
}

func eventsOf(events []Event, typ EventType) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

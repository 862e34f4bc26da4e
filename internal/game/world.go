package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game/spatial"
)

// ErrTierCountChanged is returned when a tuning update would change the
// number of meteor tiers while meteors of the old table are alive.
var ErrTierCountChanged = errors.New("meteor tier count cannot change at runtime")

// WorldConfig describes a simulation.
type WorldConfig struct {
	Width, Height float64 // Domain size in normalized units
	FPS           int     // Ticks per second
	Tuning        config.Tuning
	Limits        config.ResourceLimits
	Seed          int64
}

// pendingFragment is a split whose children are spawned once the current
// collision pass is over, so new meteors never take part in it.
type pendingFragment struct {
	tier int
	x, y float64
}

// World is the complete simulation state. Step runs the phases of one tick
// in a fixed order; each phase is also exported so it can be tested alone.
type World struct {
	Space spatial.Torus
	Store *Store

	tuning      config.Tuning
	fps         float64
	controllers []*Controller
	maxCtrl     int
	rng         *rand.Rand

	tick uint64
	now  time.Duration

	events    []Event
	fragments []pendingFragment
	drops     *dropLog
}

// NewWorld creates an empty world. An inconsistent tier table is a
// programming error and panics.
func NewWorld(cfg WorldConfig) *World {
	if err := config.ValidateTiers(cfg.Tuning.Tiers); err != nil {
		panic(fmt.Sprintf("game: invalid meteor tiers: %v", err))
	}
	if cfg.FPS <= 0 {
		panic("game: FPS must be positive")
	}

	return &World{
		Space:       spatial.NewTorus(cfg.Width, cfg.Height),
		Store:       NewStore(cfg.Limits.MaxShips, cfg.Limits.MaxMeteors),
		tuning:      cfg.Tuning,
		fps:         float64(cfg.FPS),
		controllers: make([]*Controller, 0, cfg.Limits.MaxControllers),
		maxCtrl:     cfg.Limits.MaxControllers,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		events:      make([]Event, 0, 64),
		drops:       newDropLog(),
	}
}

// Step runs one tick at clock time now.
func (w *World) Step(now time.Duration) {
	w.tick++
	w.now = now

	w.BindControllers()
	w.Integrate()
	w.ExpireBullets()
	w.ResolveCollisions()
	w.Replenish()
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// Now returns the clock time of the current tick.
func (w *World) Now() time.Duration { return w.now }

// Tuning returns the active tuning.
func (w *World) Tuning() config.Tuning { return w.tuning }

// SetTuning replaces the tuning between ticks.
func (w *World) SetTuning(t config.Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(t.Tiers) != len(w.tuning.Tiers) {
		return fmt.Errorf("%w: have %d, got %d", ErrTierCountChanged, len(w.tuning.Tiers), len(t.Tiers))
	}
	w.tuning = t
	return nil
}

// DrainEvents returns the events emitted since the last call.
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := make([]Event, len(w.events))
	copy(out, w.events)
	w.events = w.events[:0]
	return out
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.events = append(w.events, e)
}

// slotExhausted reports a dropped allocation. Never fatal.
func (w *World) slotExhausted(kind string) {
	w.drops.Printf("⚠️ No free %s slot, request dropped", kind)
	w.emit(Event{Type: EventTypeSlotExhausted, Slot: -1, Kind: kind})
}

// Integrate advances every ship, fires bullets for ships holding shoot,
// then moves bullets and meteors.
func (w *World) Integrate() {
	phys := w.tuning.Physics

	for i := 0; i < w.Store.Ships.Cap(); i++ {
		s, ok := w.Store.Ships.At(i)
		if !ok {
			continue
		}
		s.Integrate(phys, w.Space, w.fps)
		if s.Controls.Shoot {
			w.shoot(i, s)
		}
	}

	for i := 0; i < w.Store.Bullets.Cap(); i++ {
		if b, ok := w.Store.Bullets.At(i); ok {
			b.Advance(phys.BulletSpeed, w.Space, w.fps)
		}
	}

	for i := 0; i < w.Store.Meteors.Cap(); i++ {
		if m, ok := w.Store.Meteors.At(i); ok {
			m.Integrate(w.Space, w.fps)
		}
	}
}

// shoot spawns a bullet in the ship's paired slot unless one is alive.
func (w *World) shoot(slot int, s *Ship) {
	_, b, err := w.Store.Bullets.AllocateAt(slot)
	if err != nil {
		return
	}
	*b = Bullet{
		X:       s.X,
		Y:       s.Y,
		A:       s.A,
		FiredAt: w.now,
		Owner:   w.Store.Ships.HandleAt(slot),
	}
	w.emit(Event{Type: EventTypeBulletFired, Slot: slot, Controller: s.Controller, X: s.X, Y: s.Y})
}

// ExpireBullets removes bullets older than the configured lifetime.
func (w *World) ExpireBullets() {
	ttl := w.tuning.Physics.BulletTTL
	for i := 0; i < w.Store.Bullets.Cap(); i++ {
		b, ok := w.Store.Bullets.At(i)
		if !ok || !b.Expired(w.now, ttl) {
			continue
		}
		w.Store.Bullets.FreeAt(i)
		w.emit(Event{Type: EventTypeBulletExpired, Slot: i, X: b.X, Y: b.Y})
	}
}

// Replenish spawns a wave of largest-tier meteors when none are alive.
func (w *World) Replenish() {
	if w.Store.Meteors.Len() > 0 || w.tuning.Wave.Size == 0 {
		return
	}
	largest := w.tuning.Largest()
	spawned := 0
	for i := 0; i < w.tuning.Wave.Size; i++ {
		if _, err := w.SpawnMeteor(largest); err == nil {
			spawned++
		}
	}
	w.emit(Event{Type: EventTypeWave, Slot: -1, Tier: largest, Count: spawned})
}

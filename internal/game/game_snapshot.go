package game

import (
	"sync"
	"sync/atomic"
	"time"
)

// ShipSnapshot is an immutable copy of ship state for rendering
type ShipSnapshot struct {
	Slot       int     `json:"slot"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	A          float64 `json:"a"`
	Speed      float64 `json:"speed"`
	Controller int     `json:"controller"`
	Thrust     bool    `json:"thrust"`
}

// BulletSnapshot is an immutable bullet
type BulletSnapshot struct {
	Slot int           `json:"slot"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
	A    float64       `json:"a"`
	Age  time.Duration `json:"age"`
}

// MeteorSnapshot is an immutable meteor
type MeteorSnapshot struct {
	Slot   int     `json:"slot"`
	Tier   int     `json:"tier"`
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	A      float64 `json:"a"`
}

// ControllerSnapshot describes one input source
type ControllerSnapshot struct {
	ID    int    `json:"id"`
	Class string `json:"class"`
	Bound bool   `json:"bound"`
	Ship  int    `json:"ship"` // Slot, -1 when unbound
}

// GameSnapshot is the settled state after a tick.
// Slices are pre-allocated to the slot capacities and never grow past them.
type GameSnapshot struct {
	Sequence   uint64        `json:"sequence"`
	Timestamp  time.Time     `json:"timestamp"`
	TickNumber uint64        `json:"tick"`
	Now        time.Duration `json:"now"`

	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ShipScale   float64 `json:"ship_scale"`
	BulletScale float64 `json:"bullet_scale"`

	Ships       []ShipSnapshot       `json:"ships"`
	Bullets     []BulletSnapshot     `json:"bullets"`
	Meteors     []MeteorSnapshot     `json:"meteors"`
	Controllers []ControllerSnapshot `json:"controllers"`
}

// CopyTo deep-copies the snapshot into dst, reusing dst's slices.
func (s *GameSnapshot) CopyTo(dst *GameSnapshot) {
	ships, bullets, meteors, ctrls := dst.Ships[:0], dst.Bullets[:0], dst.Meteors[:0], dst.Controllers[:0]
	*dst = *s
	dst.Ships = append(ships, s.Ships...)
	dst.Bullets = append(bullets, s.Bullets...)
	dst.Meteors = append(meteors, s.Meteors...)
	dst.Controllers = append(ctrls, s.Controllers...)
}

// Fill writes the world's current state into snap.
func (w *World) Fill(snap *GameSnapshot) {
	phys := w.tuning.Physics

	snap.TickNumber = w.tick
	snap.Now = w.now
	snap.Width = w.Space.W
	snap.Height = w.Space.H
	snap.ShipScale = phys.ShipScale
	snap.BulletScale = phys.BulletScale

	for i := 0; i < w.Store.Ships.Cap(); i++ {
		if s, ok := w.Store.Ships.At(i); ok {
			snap.Ships = append(snap.Ships, ShipSnapshot{
				Slot:       i,
				X:          s.X,
				Y:          s.Y,
				A:          s.A,
				Speed:      s.Speed(),
				Controller: s.Controller,
				Thrust:     s.Controls.Gas > 0,
			})
		}
	}
	for i := 0; i < w.Store.Bullets.Cap(); i++ {
		if b, ok := w.Store.Bullets.At(i); ok {
			snap.Bullets = append(snap.Bullets, BulletSnapshot{
				Slot: i, X: b.X, Y: b.Y, A: b.A, Age: w.now - b.FiredAt,
			})
		}
	}
	for i := 0; i < w.Store.Meteors.Cap(); i++ {
		if m, ok := w.Store.Meteors.At(i); ok {
			tier := w.tuning.Tiers[m.Tier]
			snap.Meteors = append(snap.Meteors, MeteorSnapshot{
				Slot: i, Tier: m.Tier, Sides: tier.Sides, Radius: tier.Radius(),
				X: m.X, Y: m.Y, A: m.A,
			})
		}
	}
	for _, c := range w.controllers {
		cs := ControllerSnapshot{ID: c.ID, Class: c.Source.Class(), Ship: -1}
		if c.State == Bound {
			cs.Bound = true
			cs.Ship = c.Ship.Index
		}
		snap.Controllers = append(snap.Controllers, cs)
	}
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Triple buffered: the producer fills a slot nobody can be reading, then
// publishes it. Readers that copy hold the read lock, so a published slot
// is never rewritten under them.
type SnapshotPool struct {
	snapshots [3]GameSnapshot
	mu        sync.RWMutex
	writeIdx  uint32 // producer only
	readIdx   uint32 // atomic, written under mu
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool sized for the given slot capacities.
func NewSnapshotPool(maxShips, maxMeteors, maxControllers int) *SnapshotPool {
	pool := &SnapshotPool{}
	for i := range pool.snapshots {
		pool.snapshots[i] = GameSnapshot{
			Ships:       make([]ShipSnapshot, 0, maxShips),
			Bullets:     make([]BulletSnapshot, 0, maxShips),
			Meteors:     make([]MeteorSnapshot, 0, maxMeteors),
			Controllers: make([]ControllerSnapshot, 0, maxControllers),
		}
	}
	return pool
}

// AcquireWrite gets a slot other than the published one (producer only).
// Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := (atomic.LoadUint32(&p.readIdx) + 1) % 3
	p.writeIdx = idx
	snap := &p.snapshots[idx]

	snap.Ships = snap.Ships[:0]
	snap.Bullets = snap.Bullets[:0]
	snap.Meteors = snap.Meteors[:0]
	snap.Controllers = snap.Controllers[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite makes the last acquired slot the one readers see.
func (p *SnapshotPool) PublishWrite() {
	p.mu.Lock()
	atomic.StoreUint32(&p.readIdx, p.writeIdx)
	p.mu.Unlock()
}

// AcquireRead returns the latest published snapshot without copying.
// Only safe on the producer's goroutine, e.g. an ebiten Draw following
// Update on the same thread.
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	return &p.snapshots[atomic.LoadUint32(&p.readIdx)]
}

// Load copies the latest published snapshot into dst. Safe from any goroutine.
func (p *SnapshotPool) Load(dst *GameSnapshot) {
	p.mu.RLock()
	p.snapshots[atomic.LoadUint32(&p.readIdx)].CopyTo(dst)
	p.mu.RUnlock()
}

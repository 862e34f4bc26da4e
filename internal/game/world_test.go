package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
)

const period = time.Second / 30

// TestNewWorldPanicsOnBadTiers verifies an inconsistent tier table is rejected at construction
func TestNewWorldPanicsOnBadTiers(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.Tiers[0].Density = 1 // smaller than tier 1's density

	defer func() {
		if recover() == nil {
			t.Error("expected NewWorld to panic")
		}
	}()
	NewWorld(WorldConfig{Width: 1, Height: 1, FPS: 30, Tuning: tuning, Limits: config.DefaultLimits()})
}

// TestBulletExpiry verifies a bullet outlives BULLET_LIFETIME minus one
// millisecond and is gone one millisecond after it
func TestBulletExpiry(t *testing.T) {
	w := newTestWorld()
	ttl := w.Tuning().Physics.BulletTTL
	h := placeShip(w, 0.5, 0.4, 0)
	s, _ := w.Store.Ships.Get(h)

	t0 := time.Second
	s.Controls.Shoot = true
	w.Step(t0)
	s.Controls.Shoot = false

	b, ok := w.Store.Bullets.At(h.Index)
	if !ok {
		t.Fatal("bullet should have been fired")
	}
	if b.FiredAt != t0 {
		t.Errorf("FiredAt = %v, want %v", b.FiredAt, t0)
	}

	w.Step(t0 + ttl - time.Millisecond)
	if _, ok := w.Store.Bullets.At(h.Index); !ok {
		t.Fatal("bullet should be alive just before its lifetime")
	}

	w.Step(t0 + ttl + time.Millisecond)
	if _, ok := w.Store.Bullets.At(h.Index); ok {
		t.Fatal("bullet should be expired just after its lifetime")
	}
	if got := eventsOf(w.DrainEvents(), EventTypeBulletExpired); len(got) != 1 {
		t.Errorf("expected one expiry event, got %d", len(got))
	}
}

// TestOneBulletPerShip verifies a ship holding shoot fires again only after
// its bullet is gone
func TestOneBulletPerShip(t *testing.T) {
	w := newTestWorld()
	h := placeShip(w, 0.5, 0.4, 0)
	s, _ := w.Store.Ships.Get(h)
	s.Controls.Shoot = true

	var fired []uint64
	for tick := 1; tick <= 40; tick++ {
		w.Step(time.Duration(tick) * period)
		for _, e := range eventsOf(w.DrainEvents(), EventTypeBulletFired) {
			fired = append(fired, e.Tick)
		}
		if w.Store.Bullets.Len() > 1 {
			t.Fatalf("tick %d: %d bullets alive for one ship", tick, w.Store.Bullets.Len())
		}
	}

	if len(fired) < 3 {
		t.Fatalf("expected repeated fire, got %v", fired)
	}
	// 256ms at 30 TPS: expires on the 8th tick after firing, refires on the 9th
	for i := 1; i < len(fired); i++ {
		if gap := fired[i] - fired[i-1]; gap != 9 {
			t.Errorf("fire gap %d ticks, want 9 (%v)", gap, fired)
		}
	}
}

// TestWrapInvariant runs a busy field and checks every body stays in the domain
func TestWrapInvariant(t *testing.T) {
	w := NewWorld(WorldConfig{
		Width:  testW,
		Height: testH,
		FPS:    30,
		Tuning: config.DefaultTuning(),
		Limits: config.DefaultLimits(),
		Seed:   7,
	})
	inputs := []Input{
		{Steer: 1, Gas: 1, Shoot: true},
		{Steer: -0.5, Gas: 0.7, Shoot: true},
		{Gas: 1, Shoot: true},
		{Steer: 0.2, Shoot: true},
	}
	for _, in := range inputs {
		w.AddController(&heldSource{in: in})
	}

	for tick := 1; tick <= 900; tick++ {
		w.Step(time.Duration(tick) * period)

		for i := 0; i < w.Store.Ships.Cap(); i++ {
			if s, ok := w.Store.Ships.At(i); ok && !w.Space.Contains(s.X, s.Y) {
				t.Fatalf("tick %d: ship %d at (%v, %v)", tick, i, s.X, s.Y)
			}
		}
		for i := 0; i < w.Store.Bullets.Cap(); i++ {
			if b, ok := w.Store.Bullets.At(i); ok && !w.Space.Contains(b.X, b.Y) {
				t.Fatalf("tick %d: bullet %d at (%v, %v)", tick, i, b.X, b.Y)
			}
		}
		for i := 0; i < w.Store.Meteors.Cap(); i++ {
			if m, ok := w.Store.Meteors.At(i); ok && !w.Space.Contains(m.X, m.Y) {
				t.Fatalf("tick %d: meteor %d at (%v, %v)", tick, i, m.X, m.Y)
			}
		}
		for _, c := range w.Controllers() {
			if c.State == Bound && !w.Store.Ships.Alive(c.Ship) {
				t.Fatalf("tick %d: controller %d bound to a dead ship", tick, c.ID)
			}
		}
		if w.Store.Meteors.Len() == 0 {
			t.Fatalf("tick %d: field left empty at end of tick", tick)
		}
	}
}

// TestEndToEnd binds a ship, accelerates it, then shoots a meteor in front of it
func TestEndToEnd(t *testing.T) {
	w := newTestWorld()
	src := &heldSource{in: Input{Shoot: true}}
	id, _ := w.AddController(src)
	c := w.Controllers()[id]

	tick := 1
	step := func() {
		w.Step(time.Duration(tick) * period)
		tick++
	}

	step()
	if c.State != Bound {
		t.Fatal("controller should bind in the tick it pressed shoot")
	}

	src.in = Input{Gas: 1}
	prev := 0.0
	for i := 0; i < 60; i++ {
		step()
		s, ok := w.Store.Ships.Get(c.Ship)
		if !ok {
			t.Fatal("ship died while accelerating on an empty field")
		}
		if s.Speed() <= prev {
			t.Fatalf("speed did not increase: %v <= %v", s.Speed(), prev)
		}
		prev = s.Speed()
	}

	// Stop the ship and put a tier-2 meteor just ahead of it.
	s, _ := w.Store.Ships.Get(c.Ship)
	s.XV, s.YV, s.AV = 0, 0, 0
	mx, my := w.Space.Wrap(s.X-0.1*math.Sin(s.A), s.Y+0.1*math.Cos(s.A))
	parent := placeMeteor(w, 2, mx, my)
	w.DrainEvents()

	src.in = Input{Shoot: true}
	step()

	if !w.Store.Ships.Alive(c.Ship) {
		t.Fatal("ship should be out of meteor reach")
	}
	if w.Store.Bullets.Len() != 0 {
		t.Error("bullet should be destroyed by the meteor")
	}
	if w.Store.Meteors.Alive(parent) {
		t.Error("meteor should be destroyed")
	}

	want := w.ChildCount(2)
	if want != 3 {
		t.Fatalf("reference tiers give 3 children, got %d", want)
	}
	if got := countTier(w, 1); got != want {
		t.Fatalf("expected %d tier-1 children, got %d", want, got)
	}
	for i := 0; i < w.Store.Meteors.Cap(); i++ {
		if m, ok := w.Store.Meteors.At(i); ok && (m.X != mx || m.Y != my) {
			t.Errorf("child at (%v, %v), want collision point (%v, %v)", m.X, m.Y, mx, my)
		}
	}

	events := w.DrainEvents()
	if len(eventsOf(events, EventTypeBulletFired)) != 1 || len(eventsOf(events, EventTypeMeteorFragmented)) != 1 {
		t.Errorf("unexpected events: %+v", events)
	}
}

// TestSetTuning covers runtime tuning validation
func TestSetTuning(t *testing.T) {
	w := newTestWorld()

	fewer := config.DefaultTuning()
	fewer.Tiers = fewer.Tiers[:2]
	if err := w.SetTuning(fewer); !errors.Is(err, ErrTierCountChanged) {
		t.Errorf("expected ErrTierCountChanged, got %v", err)
	}

	bad := config.DefaultTuning()
	bad.Physics.BulletTTL = 0
	if err := w.SetTuning(bad); err == nil {
		t.Error("expected invalid tuning to be rejected")
	}

	faster := config.DefaultTuning()
	faster.Physics.BulletSpeed = 2
	if err := w.SetTuning(faster); err != nil {
		t.Fatalf("SetTuning: %v", err)
	}
	if w.Tuning().Physics.BulletSpeed != 2 {
		t.Error("tuning not applied")
	}
}

// TestDrainEvents verifies events are tagged with their tick and drained once
func TestDrainEvents(t *testing.T) {
	w := newTestWorld()
	w.AddController(&heldSource{in: Input{Shoot: true}})

	w.Step(period)
	w.Step(2 * period)

	w.Step(3 * period)
	events := w.DrainEvents()
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	if events[0].Type != EventTypeShipBound || events[0].Tick != 1 {
		t.Errorf("first event = %+v, want ship_bound at tick 1", events[0])
	}
	if more := w.DrainEvents(); more != nil {
		t.Errorf("second drain should be empty, got %d", len(more))
	}
}

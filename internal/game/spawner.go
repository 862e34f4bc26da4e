package game

import (
	"fmt"
	"math"
)

// SpawnMeteor creates a meteor of the given tier at a random position.
// When no slot is free the spawn is dropped and ErrCapacityExhausted
// returned; callers are free to ignore it.
func (w *World) SpawnMeteor(tier int) (Handle, error) {
	x := w.rng.Float64() * w.Space.W
	y := w.rng.Float64() * w.Space.H
	return w.SpawnMeteorAt(tier, x, y)
}

// SpawnMeteorAt creates a meteor of the given tier at (x, y) with a random
// heading, the tier's speed along that heading and a random share of the
// tier's spin in either direction.
func (w *World) SpawnMeteorAt(tier int, x, y float64) (Handle, error) {
	if tier < 0 || tier >= len(w.tuning.Tiers) {
		return NoHandle, fmt.Errorf("meteor tier %d out of range [0,%d)", tier, len(w.tuning.Tiers))
	}

	h, m, err := w.Store.Meteors.Allocate()
	if err != nil {
		w.slotExhausted(KindMeteor)
		return NoHandle, fmt.Errorf("spawn tier %d meteor: %w", tier, err)
	}

	t := w.tuning.Tiers[tier]
	heading := w.rng.Float64() * 2 * math.Pi
	x, y = w.Space.Wrap(x, y)
	*m = Meteor{
		Tier: tier,
		X:    x,
		Y:    y,
		A:    heading,
		XV:   t.Speed * -math.Sin(heading),
		YV:   t.Speed * math.Cos(heading),
		AV:   t.Spin * (2*w.rng.Float64() - 1),
	}

	w.emit(Event{Type: EventTypeMeteorSpawned, Slot: h.Index, Tier: tier, X: x, Y: y})
	return h, nil
}

// ChildCount is the number of tier-1 children a meteor of the given tier
// splits into. Tier 0 has none.
func (w *World) ChildCount(tier int) int {
	if tier <= 0 || tier >= len(w.tuning.Tiers) {
		return 0
	}
	return w.tuning.Tiers[tier-1].Density / w.tuning.Tiers[tier].Density
}

// Fragment destroys the meteor h refers to and spawns its children at its
// position. It returns how many children were actually spawned; under
// capacity pressure that may be fewer than ChildCount.
func (w *World) Fragment(h Handle) (int, error) {
	if !w.Store.Meteors.Alive(h) {
		return 0, ErrStaleHandle
	}
	w.breakMeteor(h.Index)
	return w.spawnFragments(), nil
}

// breakMeteor frees meteor slot i and queues its children.
func (w *World) breakMeteor(i int) {
	m, ok := w.Store.Meteors.At(i)
	if !ok {
		return
	}
	tier, x, y := m.Tier, m.X, m.Y
	w.Store.Meteors.FreeAt(i)

	w.emit(Event{Type: EventTypeMeteorDestroyed, Slot: i, Tier: tier, X: x, Y: y})
	if tier > 0 {
		w.fragments = append(w.fragments, pendingFragment{tier: tier, x: x, y: y})
	}
}

// spawnFragments spawns the children of every queued split. Each child
// spawn may fail independently.
func (w *World) spawnFragments() int {
	total := 0
	for _, f := range w.fragments {
		n := w.ChildCount(f.tier)
		spawned := 0
		for c := 0; c < n; c++ {
			if _, err := w.SpawnMeteorAt(f.tier-1, f.x, f.y); err == nil {
				spawned++
			}
		}
		w.emit(Event{Type: EventTypeMeteorFragmented, Slot: -1, Tier: f.tier, Count: spawned, X: f.x, Y: f.y})
		total += spawned
	}
	w.fragments = w.fragments[:0]
	return total
}

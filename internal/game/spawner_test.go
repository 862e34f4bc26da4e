package game

import (
	"errors"
	"math"
	"testing"
)

// TestFragmentConservation verifies each tier splits into
// Density(T-1)/Density(T) children at the parent's position
func TestFragmentConservation(t *testing.T) {
	tests := []struct {
		name      string
		tier      int
		wantChild int
	}{
		{"largest", 2, 3},
		{"middle", 1, 3},
		{"smallest is terminal", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			parent := placeMeteor(w, tt.tier, 0.33, 0.44)

			n, err := w.Fragment(parent)
			if err != nil {
				t.Fatalf("Fragment: %v", err)
			}
			if n != tt.wantChild || n != w.ChildCount(tt.tier) {
				t.Fatalf("expected %d children, got %d", tt.wantChild, n)
			}
			if w.Store.Meteors.Alive(parent) {
				t.Error("parent should be destroyed")
			}
			if w.Store.Meteors.Len() != tt.wantChild {
				t.Errorf("expected %d alive meteors, got %d", tt.wantChild, w.Store.Meteors.Len())
			}

			for i := 0; i < w.Store.Meteors.Cap(); i++ {
				m, ok := w.Store.Meteors.At(i)
				if !ok {
					continue
				}
				if m.Tier != tt.tier-1 {
					t.Errorf("child tier %d, want %d", m.Tier, tt.tier-1)
				}
				if m.X != 0.33 || m.Y != 0.44 {
					t.Errorf("child at (%v, %v), want parent position", m.X, m.Y)
				}
			}
		})
	}
}

// TestSpawnedMeteorMotion verifies speed and spin follow the tier
func TestSpawnedMeteorMotion(t *testing.T) {
	w := newTestWorld()
	tiers := w.Tuning().Tiers

	for i := 0; i < 20; i++ {
		tier := i % len(tiers)
		h, err := w.SpawnMeteor(tier)
		if err != nil {
			t.Fatalf("SpawnMeteor: %v", err)
		}
		m, _ := w.Store.Meteors.Get(h)

		if !w.Space.Contains(m.X, m.Y) {
			t.Errorf("meteor spawned outside the domain: (%v, %v)", m.X, m.Y)
		}
		if speed := math.Hypot(m.XV, m.YV); math.Abs(speed-tiers[tier].Speed) > 1e-12 {
			t.Errorf("speed %v, want %v", speed, tiers[tier].Speed)
		}
		if math.Abs(m.AV) > tiers[tier].Spin {
			t.Errorf("spin %v exceeds %v", m.AV, tiers[tier].Spin)
		}
		if wantXV := tiers[tier].Speed * -math.Sin(m.A); math.Abs(m.XV-wantXV) > 1e-12 {
			t.Errorf("velocity does not follow heading %v", m.A)
		}
	}
}

// TestFragmentUnderCapacityPressure verifies children that find no slot are
// dropped without failing the rest
func TestFragmentUnderCapacityPressure(t *testing.T) {
	w := newTestWorld()
	parent := placeMeteor(w, 2, 0.5, 0.5)
	for w.Store.Meteors.Len() < w.Store.Meteors.Cap()-1 {
		placeMeteor(w, 0, 0.1, 0.1)
	}
	w.DrainEvents()

	n, err := w.Fragment(parent)
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 children to fit, got %d", n)
	}
	if !w.Store.Meteors.Full() {
		t.Error("arena should be full")
	}

	exhausted := eventsOf(w.DrainEvents(), EventTypeSlotExhausted)
	if len(exhausted) != 1 || exhausted[0].Kind != KindMeteor {
		t.Errorf("expected one meteor exhaustion event, got %+v", exhausted)
	}
}

// TestSpawnMeteorErrors covers the failure returns
func TestSpawnMeteorErrors(t *testing.T) {
	w := newTestWorld()

	if _, err := w.SpawnMeteor(3); err == nil {
		t.Error("expected an error for an unknown tier")
	}
	if _, err := w.SpawnMeteor(-1); err == nil {
		t.Error("expected an error for a negative tier")
	}

	for !w.Store.Meteors.Full() {
		placeMeteor(w, 0, 0.2, 0.2)
	}
	if _, err := w.SpawnMeteor(0); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("expected ErrCapacityExhausted, got %v", err)
	}

	h := w.Store.Meteors.HandleAt(0)
	w.Store.Meteors.FreeAt(0)
	if _, err := w.Fragment(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("expected ErrStaleHandle, got %v", err)
	}
}

// TestReplenishWave verifies an empty field gets a wave of largest meteors
func TestReplenishWave(t *testing.T) {
	w := newTestWorld()
	tuning := w.Tuning()
	tuning.Wave.Size = 2
	if err := w.SetTuning(tuning); err != nil {
		t.Fatalf("SetTuning: %v", err)
	}

	w.Step(0)

	if w.Store.Meteors.Len() != 2 || countTier(w, tuning.Largest()) != 2 {
		t.Fatalf("expected 2 largest-tier meteors, got %d", w.Store.Meteors.Len())
	}

	waves := eventsOf(w.DrainEvents(), EventTypeWave)
	if len(waves) != 1 || waves[0].Count != 2 {
		t.Errorf("expected one wave of 2, got %+v", waves)
	}

	w.Step(0)
	if w.Store.Meteors.Len() != 2 {
		t.Errorf("a field with meteors must not be replenished, got %d", w.Store.Meteors.Len())
	}
}

package game

import "testing"

// TestSnapshotPoolPublish verifies readers only see published snapshots
func TestSnapshotPoolPublish(t *testing.T) {
	pool := NewSnapshotPool(4, 32, 8)

	first := pool.AcquireWrite()
	first.TickNumber = 1
	first.Meteors = append(first.Meteors, MeteorSnapshot{Tier: 2})
	pool.PublishWrite()

	second := pool.AcquireWrite()
	if second == first {
		t.Fatal("writer must not reuse the published slot")
	}
	second.TickNumber = 2

	if got := pool.AcquireRead().TickNumber; got != 1 {
		t.Errorf("unpublished write visible: tick %d", got)
	}

	pool.PublishWrite()
	var dst GameSnapshot
	pool.Load(&dst)
	if dst.TickNumber != 2 || len(dst.Meteors) != 0 {
		t.Errorf("Load returned tick %d with %d meteors", dst.TickNumber, len(dst.Meteors))
	}
	if dst.Sequence <= first.Sequence {
		t.Errorf("sequence did not advance: %d after %d", dst.Sequence, first.Sequence)
	}
}

// TestSnapshotCopyToReusesSlices verifies CopyTo does not alias the source
func TestSnapshotCopyToReusesSlices(t *testing.T) {
	src := GameSnapshot{
		TickNumber: 9,
		Ships:      []ShipSnapshot{{Slot: 1}},
		Bullets:    []BulletSnapshot{{Slot: 1}},
	}
	dst := GameSnapshot{Ships: make([]ShipSnapshot, 0, 4)}
	backing := dst.Ships[:1]

	src.CopyTo(&dst)
	src.Ships[0].Slot = 3

	if dst.TickNumber != 9 || len(dst.Ships) != 1 || dst.Ships[0].Slot != 1 {
		t.Errorf("bad copy: %+v", dst)
	}
	if &backing[0] != &dst.Ships[0] {
		t.Error("CopyTo should reuse the destination's backing array")
	}
}

// TestWorldFill verifies the snapshot reflects alive entities only
func TestWorldFill(t *testing.T) {
	w := newTestWorld()
	a := placeShip(w, 0.1, 0.2, 0.3)
	dead := placeShip(w, 0.5, 0.5, 0)
	w.Store.Ships.FreeAt(dead.Index)
	placeMeteor(w, 1, 0.4, 0.4)
	placeBullet(w, a, 0.15, 0.25)
	w.AddController(&heldSource{})

	snap := NewSnapshotPool(4, 32, 8).AcquireWrite()
	w.Fill(snap)

	if len(snap.Ships) != 1 || snap.Ships[0].X != 0.1 || snap.Ships[0].A != 0.3 {
		t.Errorf("ships = %+v", snap.Ships)
	}
	if len(snap.Bullets) != 1 || snap.Bullets[0].Slot != a.Index {
		t.Errorf("bullets = %+v", snap.Bullets)
	}
	if len(snap.Meteors) != 1 || snap.Meteors[0].Sides != 7 {
		t.Errorf("meteors = %+v", snap.Meteors)
	}
	if len(snap.Controllers) != 1 || snap.Controllers[0].Bound || snap.Controllers[0].Ship != -1 {
		t.Errorf("controllers = %+v", snap.Controllers)
	}
	if snap.ShipScale != 1.0/16 || snap.Width != testW {
		t.Errorf("scales not filled: %+v", snap)
	}
}

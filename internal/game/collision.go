package game

// ResolveCollisions tests bullets against ships and meteors, then ships
// against meteors. An entity destroyed earlier in the pass is skipped by
// every later check. Meteor children are spawned after the pass.
func (w *World) ResolveCollisions() {
	phys := w.tuning.Physics
	shipR := phys.ShipRadius()
	bulletR := phys.BulletRadius()

	for bi := 0; bi < w.Store.Bullets.Cap(); bi++ {
		b, ok := w.Store.Bullets.At(bi)
		if !ok {
			continue
		}
		if w.bulletHitsShip(bi, b, bulletR, shipR) {
			continue
		}
		w.bulletHitsMeteor(bi, b, bulletR)
	}

	for si := 0; si < w.Store.Ships.Cap(); si++ {
		s, ok := w.Store.Ships.At(si)
		if !ok {
			continue
		}
		for mi := 0; mi < w.Store.Meteors.Cap(); mi++ {
			m, ok := w.Store.Meteors.At(mi)
			if !ok {
				continue
			}
			if w.Space.CollidesWrapped(s.X, s.Y, shipR, m.X, m.Y, w.tuning.Tiers[m.Tier].Radius()) {
				w.killShip(si, KindMeteor)
				w.breakMeteor(mi)
				break
			}
		}
	}

	w.spawnFragments()
}

func (w *World) bulletHitsShip(bi int, b *Bullet, bulletR, shipR float64) bool {
	for si := 0; si < w.Store.Ships.Cap(); si++ {
		s, ok := w.Store.Ships.At(si)
		if !ok || w.Store.Ships.HandleAt(si) == b.Owner {
			continue
		}
		if w.Space.CollidesWrapped(b.X, b.Y, bulletR, s.X, s.Y, shipR) {
			w.Store.Bullets.FreeAt(bi)
			w.killShip(si, KindBullet)
			return true
		}
	}
	return false
}

func (w *World) bulletHitsMeteor(bi int, b *Bullet, bulletR float64) bool {
	for mi := 0; mi < w.Store.Meteors.Cap(); mi++ {
		m, ok := w.Store.Meteors.At(mi)
		if !ok {
			continue
		}
		if w.Space.CollidesWrapped(b.X, b.Y, bulletR, m.X, m.Y, w.tuning.Tiers[m.Tier].Radius()) {
			w.Store.Bullets.FreeAt(bi)
			w.breakMeteor(mi)
			return true
		}
	}
	return false
}

// killShip frees ship slot i and unbinds its controller in the same tick.
func (w *World) killShip(i int, cause string) {
	s, ok := w.Store.Ships.At(i)
	if !ok {
		return
	}
	h := w.Store.Ships.HandleAt(i)
	x, y, ctrl := s.X, s.Y, s.Controller
	w.Store.Ships.FreeAt(i)
	w.emit(Event{Type: EventTypeShipDestroyed, Slot: i, Controller: ctrl, Kind: cause, X: x, Y: y})
	if ctrl >= 0 && ctrl < len(w.controllers) && w.controllers[ctrl].Ship == h {
		w.unbind(ctrl)
	}
}

package game

import (
	"math"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game/spatial"
)

// Integrate advances a ship by one tick of 1/fps seconds.
// The order is fixed: accelerate, move, apply drag, wrap. Drag after
// movement gives a different trajectory than drag before it.
func (s *Ship) Integrate(p config.PhysicsConfig, space spatial.Torus, fps float64) {
	in := s.Controls

	s.XV += in.Gas * p.ShipAccel * -math.Sin(s.A) / fps
	s.YV += in.Gas * p.ShipAccel * math.Cos(s.A) / fps
	s.AV += in.Steer * p.ShipTurnAccel * 2 * math.Pi / fps

	s.X += s.XV / fps
	s.Y += s.YV / fps
	s.A += s.AV / fps

	linear := math.Pow(1-p.ShipDrag, 1/fps)
	s.XV *= linear
	s.YV *= linear
	s.AV *= math.Pow(1-p.ShipTurnDrag, 1/fps)

	s.X, s.Y = space.Wrap(s.X, s.Y)
}

// Speed is the magnitude of the ship's linear velocity.
func (s *Ship) Speed() float64 {
	return math.Hypot(s.XV, s.YV)
}

// Integrate moves a meteor at its constant velocity and spin.
func (m *Meteor) Integrate(space spatial.Torus, fps float64) {
	m.X += m.XV / fps
	m.Y += m.YV / fps
	m.A += m.AV / fps
	m.X, m.Y = space.Wrap(m.X, m.Y)
}

// Advance moves a bullet a fixed distance along its heading.
func (b *Bullet) Advance(speed float64, space spatial.Torus, fps float64) {
	step := speed / fps
	b.X += step * -math.Sin(b.A)
	b.Y += step * math.Cos(b.A)
	b.X, b.Y = space.Wrap(b.X, b.Y)
}

// Expired reports whether the bullet has outlived ttl at time now.
func (b *Bullet) Expired(now, ttl time.Duration) bool {
	return now-b.FiredAt > ttl
}

package game

import "time"

// Input is one tick of normalized controls from an input source.
type Input struct {
	Steer float64 // [-1,1], positive turns counter-clockwise
	Gas   float64 // [0,1]
	Shoot bool
}

// Clamp forces the input into its documented ranges.
func (in Input) Clamp() Input {
	if in.Steer < -1 {
		in.Steer = -1
	}
	if in.Steer > 1 {
		in.Steer = 1
	}
	if in.Gas < 0 {
		in.Gas = 0
	}
	if in.Gas > 1 {
		in.Gas = 1
	}
	return in
}

// Ship is a player-controlled body. Angle 0 points along +y.
type Ship struct {
	X, Y   float64
	A      float64 // Orientation (radians)
	XV, YV float64 // Linear velocity (units/s)
	AV     float64 // Angular velocity (radians/s)

	Controls   Input // Copied from the bound controller every tick
	Controller int   // Id of the controller that owns this ship
}

// Bullet travels along the heading it was fired with. Bullet slot i belongs
// to ship slot i, so a ship has at most one live bullet.
type Bullet struct {
	X, Y    float64
	A       float64
	FiredAt time.Duration // Clock time at spawn
	Owner   Handle        // Ship that fired it
}

// Meteor drifts at constant velocity and spin once spawned.
type Meteor struct {
	Tier   int
	X, Y   float64
	A      float64
	XV, YV float64
	AV     float64
}

// Store holds the entity arenas. Bullets has the same capacity as Ships.
type Store struct {
	Ships   *Arena[Ship]
	Bullets *Arena[Bullet]
	Meteors *Arena[Meteor]
}

// NewStore creates the arenas with fixed capacities.
func NewStore(maxShips, maxMeteors int) *Store {
	return &Store{
		Ships:   NewArena[Ship](maxShips),
		Bullets: NewArena[Bullet](maxShips),
		Meteors: NewArena[Meteor](maxMeteors),
	}
}

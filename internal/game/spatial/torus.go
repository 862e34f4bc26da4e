// Package spatial provides the geometry of the wrap-around playfield.
//
// The playfield is a W×H rectangle whose opposite edges are glued together.
// Positions are kept in [0,W)×[0,H); collision tests account for bodies that
// straddle an edge or a corner.
package spatial

import "math"

// Torus is a rectangular wrap-around domain.
type Torus struct {
	W, H float64
}

// NewTorus creates a domain of the given size in normalized units.
func NewTorus(w, h float64) Torus {
	return Torus{W: w, H: h}
}

// wrap maps v into [0,size) with a single conditional add or subtract.
// Bodies never move more than one domain length per tick, so one step suffices.
func wrap(v, size float64) float64 {
	if v < 0 {
		v += size
	}
	if v >= size {
		v -= size
	}
	// -tiny + size can round up to exactly size
	if v >= size {
		v = 0
	}
	return v
}

// WrapX maps x into [0,W).
func (t Torus) WrapX(x float64) float64 { return wrap(x, t.W) }

// WrapY maps y into [0,H).
func (t Torus) WrapY(y float64) float64 { return wrap(y, t.H) }

// Wrap maps a position into the domain.
func (t Torus) Wrap(x, y float64) (float64, float64) {
	return wrap(x, t.W), wrap(y, t.H)
}

// Contains reports whether (x, y) lies in [0,W)×[0,H).
func (t Torus) Contains(x, y float64) bool {
	return x >= 0 && x < t.W && y >= 0 && y < t.H
}

// Distance is the plain Euclidean distance, ignoring wrap.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Offsets are the translations, in domain lengths, applied to the first body.
// (1,-1) covers the anti-diagonal corner that the other four miss even when
// the test is run in both directions.
var Offsets = [5][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {1, -1}}

// CollidesWrapped reports whether circles (x1,y1,r1) and (x2,y2,r2) overlap
// anywhere on the torus.
//
// The first circle is translated by each of Offsets; the test is then
// repeated with the roles swapped so the result does not depend on argument
// order. Radii must be much smaller than the domain.
func (t Torus) CollidesWrapped(x1, y1, r1, x2, y2, r2 float64) bool {
	return t.collidesShifted(x1, y1, x2, y2, r1+r2) || t.collidesShifted(x2, y2, x1, y1, r1+r2)
}

func (t Torus) collidesShifted(x1, y1, x2, y2, reach float64) bool {
	for _, o := range Offsets {
		if Distance(x1+o[0]*t.W, y1+o[1]*t.H, x2, y2) < reach {
			return true
		}
	}
	return false
}

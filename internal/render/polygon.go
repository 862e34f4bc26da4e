package render

import (
	"math"

	"github.com/fogleman/gg"
)

const (
	shipNotch   = 1 / 8.0 // Depth of the notch cut into the ship's base
	bulletRatio = 4       // Bullet length over width
)

// ShipPolygon is a triangle pointing along +y with a notch in its base,
// scaled to the given hull size.
func ShipPolygon(scale float64) []gg.Point {
	x := 0.5 * -math.Sin(2*math.Pi/3)
	y := 0.5 * math.Cos(2*math.Pi/3)
	n := shipNotch / 2

	return []gg.Point{
		{X: scale * -x, Y: scale * y},
		{X: 0, Y: scale * 0.5},
		{X: scale * x, Y: scale * y},
		{X: scale * -n, Y: scale * y},
		{X: scale * -n, Y: scale * (y + shipNotch)},
		{X: scale * n, Y: scale * (y + shipNotch)},
		{X: scale * n, Y: scale * y},
	}
}

// BulletPolygon is a thin bar along +y.
func BulletPolygon(scale float64) []gg.Point {
	hw := scale * 0.5 / bulletRatio
	hl := scale * 0.5
	return []gg.Point{
		{X: -hw, Y: -hl},
		{X: hw, Y: -hl},
		{X: hw, Y: hl},
		{X: -hw, Y: hl},
	}
}

// MeteorPolygon is a regular polygon with the given circumradius, one
// vertex on +y.
func MeteorPolygon(sides int, radius float64) []gg.Point {
	v := make([]gg.Point, sides)
	for i := range v {
		a := 2 * math.Pi * float64(i) / float64(sides)
		v[i] = gg.Point{X: radius * -math.Sin(a), Y: radius * math.Cos(a)}
	}
	return v
}

// Package render draws simulation snapshots as filled vector polygons.
//
// World coordinates are mapped with the origin at the centre of the image,
// y pointing up and one world unit spanning Scale pixels. Every polygon is
// drawn four times, shifted by the domain size, so a body crossing an edge
// shows on both sides.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// wrapOffsets are the draw translations in domain lengths.
var wrapOffsets = [4][2]float64{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}}

// Renderer rasterizes snapshots into a reusable RGBA image.
type Renderer struct {
	dc     *gg.Context
	width  int
	height int
	scale  float64

	Background color.Color
	Foreground color.Color

	shipScale   float64
	bulletScale float64
	ship        []gg.Point
	bullet      []gg.Point
	meteors     map[meteorKey][]gg.Point
}

type meteorKey struct {
	sides  int
	radius float64
}

// NewRenderer creates a renderer for a width×height image where one world
// unit is scale pixels.
func NewRenderer(width, height int, scale float64) *Renderer {
	return &Renderer{
		dc:         gg.NewContext(width, height),
		width:      width,
		height:     height,
		scale:      scale,
		Background: color.Black,
		Foreground: color.White,
		meteors:    make(map[meteorKey][]gg.Point),
	}
}

// Render draws snap and returns the image. The image is reused by the next
// call.
func (r *Renderer) Render(snap *game.GameSnapshot) *image.RGBA {
	r.refreshPolygons(snap)

	dc := r.dc
	dc.Identity()
	dc.SetColor(r.Background)
	dc.Clear()

	for _, m := range snap.Meteors {
		r.polygon(snap, r.meteorPolygon(m.Sides, m.Radius), m.X, m.Y, m.A)
	}
	for _, s := range snap.Ships {
		r.polygon(snap, r.ship, s.X, s.Y, s.A)
	}
	for _, b := range snap.Bullets {
		r.polygon(snap, r.bullet, b.X, b.Y, b.A)
	}

	dc.Identity()
	dc.SetColor(r.Foreground)
	dc.Fill()

	return dc.Image().(*image.RGBA)
}

// SavePNG writes the last rendered frame.
func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// Size returns the image dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// polygon adds v, placed at (x, y) and rotated by a, to the current path
// under each wrap translation.
func (r *Renderer) polygon(snap *game.GameSnapshot, v []gg.Point, x, y, a float64) {
	dc := r.dc
	for _, o := range wrapOffsets {
		dc.Identity()
		dc.Translate(float64(r.width)/2, float64(r.height)/2)
		dc.Scale(1, -1)
		dc.Scale(r.scale, r.scale)
		dc.Translate(x+o[0]*snap.Width, y+o[1]*snap.Height)
		dc.Rotate(a)

		dc.NewSubPath()
		for _, p := range v {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	}
}

func (r *Renderer) refreshPolygons(snap *game.GameSnapshot) {
	if snap.ShipScale != r.shipScale || r.ship == nil {
		r.shipScale = snap.ShipScale
		r.ship = ShipPolygon(snap.ShipScale)
	}
	if snap.BulletScale != r.bulletScale || r.bullet == nil {
		r.bulletScale = snap.BulletScale
		r.bullet = BulletPolygon(snap.BulletScale)
	}
}

func (r *Renderer) meteorPolygon(sides int, radius float64) []gg.Point {
	key := meteorKey{sides, radius}
	v, ok := r.meteors[key]
	if !ok {
		v = MeteorPolygon(sides, radius)
		r.meteors[key] = v
	}
	return v
}

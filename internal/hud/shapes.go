package hud

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const circleSegments = 24

// canvas accumulates filled polygons inside box (screen coordinates) and
// paints them in one colour.
type canvas struct {
	z   vector.Rasterizer
	box image.Rectangle
}

// begin starts a new shape batch. It reports false when box is not fully on
// dst, in which case the batch must be skipped.
func (c *canvas) begin(dst image.Rectangle, box image.Rectangle) bool {
	if box.Empty() || !box.In(dst) {
		return false
	}
	c.box = box
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	return true
}

func (c *canvas) local(x, y float64) (float32, float32) {
	return float32(x - float64(c.box.Min.X)), float32(y - float64(c.box.Min.Y))
}

// line adds a segment of the given width.
func (c *canvas) line(x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	c.z.MoveTo(c.local(x0+nx, y0+ny))
	c.z.LineTo(c.local(x1+nx, y1+ny))
	c.z.LineTo(c.local(x1-nx, y1-ny))
	c.z.LineTo(c.local(x0-nx, y0-ny))
	c.z.ClosePath()
}

// disc adds a filled circle.
func (c *canvas) disc(cx, cy, r float64) {
	c.z.MoveTo(c.local(cx+r, cy))
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		c.z.LineTo(c.local(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	c.z.ClosePath()
}

func (c *canvas) fill(dst draw.Image, col color.Color) {
	c.z.Draw(dst, c.box, image.NewUniform(col), image.Point{})
}

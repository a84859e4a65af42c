package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text sizes as integer magnifications of the 7×13 bitmap face.
const (
	SizeSmall  = 1
	SizeMedium = 2
	SizeLarge  = 3
)

var face = basicfont.Face7x13

// TextSize returns the on-screen size of s at the given magnification.
func TextSize(s string, scale int) image.Point {
	w := font.MeasureString(face, s).Ceil()
	return image.Pt(w*scale, face.Metrics().Height.Ceil()*scale)
}

// drawText renders s with its top-left corner at at.
func drawText(dst draw.Image, s string, at image.Point, scale int, col color.Color) {
	size := TextSize(s, 1)
	if size.X == 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rectangle{Max: size})
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	r := image.Rectangle{Min: at, Max: at.Add(size.Mul(scale))}
	draw.NearestNeighbor.Scale(dst, r, glyphs, glyphs.Bounds(), draw.Over, nil)
}

// drawTextCentered renders s centred on c.
func drawTextCentered(dst draw.Image, s string, c image.Point, scale int, col color.Color) {
	size := TextSize(s, scale)
	drawText(dst, s, c.Sub(size.Div(2)), scale, col)
}

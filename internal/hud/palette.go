package hud

import "image/color"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// RGBA returns c as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

var Palette = struct {
	Text    RGB
	Ticks   RGB
	Needle  RGB
	Warning RGB
	Marker  RGB
}{
	Text:    RGB{R: 255, G: 255, B: 255},
	Ticks:   RGB{R: 255, G: 255, B: 255},
	Needle:  RGB{R: 255, G: 0, B: 0},
	Warning: RGB{R: 255, G: 0, B: 0},
	Marker:  RGB{R: 255, G: 255, B: 255},
}

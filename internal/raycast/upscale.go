package raycast

import (
	"image"

	"golang.org/x/image/draw"
)

// Upscale stretches a rendered frame over r in dst using nearest-neighbour
// sampling, which keeps the blocky low-resolution look of the caster.
func Upscale(dst draw.Image, r image.Rectangle, frame image.Image) {
	draw.NearestNeighbor.Scale(dst, r, frame, frame.Bounds(), draw.Src, nil)
}

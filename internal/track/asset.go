package track

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"racer/internal/sim"
)

// RasterSize is the side of the square mask and colour rasters after loading.
const RasterSize = 1024

// Mask is a square collision raster. A set sample is off the drivable surface.
type Mask struct {
	Size int
	off  []bool
}

// NewMask thresholds img (already square) into a mask: any nonzero colour
// channel marks the pixel as off-track.
func NewMask(img image.Image) *Mask {
	b := img.Bounds()
	m := &Mask{Size: b.Dx(), off: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.off[y*m.Size+x] = r|g|bl != 0
		}
	}
	return m
}

// At reports the raw sample at pixel (x, y).
func (m *Mask) At(x, y int) bool {
	return m.off[y*m.Size+x]
}

// Asset is everything a race needs from one track. Immutable once built.
type Asset struct {
	Spec    Spec
	Mask    *Mask
	Color   *image.RGBA // top-down texture, same size as Mask
	Sky     image.Image // 360° panorama, any size
	Minimap image.Image
}

// NewAsset normalises the mask and colour rasters to size×size and wraps them
// with the track's spec.
func NewAsset(spec Spec, mask, color, sky, minimap image.Image, size int) *Asset {
	return &Asset{
		Spec:    spec,
		Mask:    NewMask(resize(mask, size)),
		Color:   resize(color, size),
		Sky:     sky,
		Minimap: minimap,
	}
}

// Scale is the arena-unit to raster-pixel factor shared by Mask and Color.
func (a *Asset) Scale() float64 {
	return float64(a.Mask.Size) / sim.ArenaSize
}

// OffTrack samples the mask at round(p*scale). Callers guarantee p is inside
// the arena, which keeps the index in range.
func (a *Asset) OffTrack(p sim.Vec2) bool {
	s := a.Scale()
	return a.Mask.At(int(math.Round(p.X*s)), int(math.Round(p.Y*s)))
}

// resize returns img as an RGBA raster of exactly size×size.
func resize(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

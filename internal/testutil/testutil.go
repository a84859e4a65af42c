// Package testutil provides shared raster fixtures for tests.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"racer/internal/track"
)

// Uniform returns a w×h image filled with c.
func Uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// Gradient returns a w×h image whose red channel encodes x and green channel
// encodes y, so a sampled colour identifies the pixel it came from.
func Gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: 128, A: 255})
		}
	}
	return img
}

// Asset builds an in-memory track: fully drivable mask, gradient colour map,
// gradient sky and a grey minimap. size is the raster side.
func Asset(t *testing.T, id, size int) *track.Asset {
	t.Helper()
	spec, err := track.Lookup(id)
	if err != nil {
		t.Fatalf("lookup track %d: %v", id, err)
	}
	black := color.RGBA{A: 255}
	return track.NewAsset(spec,
		Uniform(size, size, black),
		Gradient(size, size),
		Gradient(720, 240),
		Uniform(64, 64, color.RGBA{R: 90, G: 90, B: 90, A: 255}),
		size)
}

// WritePNG encodes img to dir/name, creating parent directories.
func WritePNG(t *testing.T, dir, name string, img image.Image) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

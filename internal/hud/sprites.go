package hud

import (
	"fmt"
	"image"
	"path/filepath"

	"racer/internal/track"
)

// LoadSprites reads car/frame_01.png … frame_09.png under root.
func LoadSprites(root string) ([]image.Image, error) {
	out := make([]image.Image, 0, 9)
	for i := 1; i <= 9; i++ {
		img, err := track.DecodeFile(filepath.Join(root, "car", fmt.Sprintf("frame_%02d.png", i)))
		if err != nil {
			return nil, fmt.Errorf("car sprite %d: %w", i, err)
		}
		out = append(out, img)
	}
	return out, nil
}

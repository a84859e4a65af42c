package track

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
)

var ErrAssetMissing = errors.New("track asset missing")

// Layout under the resources root.
const (
	maskFile    = "mask.png"
	colorFile   = "track.png"
	minimapFile = "minimap.png"
	skyPath     = "env/skybox.jpg"
)

// Load reads the rasters for track id from root. Any missing or undecodable
// file fails the whole load.
func Load(root string, id int) (*Asset, error) {
	spec, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, "track", strconv.Itoa(id))

	mask, err := DecodeFile(filepath.Join(dir, maskFile))
	if err != nil {
		return nil, err
	}
	color, err := DecodeFile(filepath.Join(dir, colorFile))
	if err != nil {
		return nil, err
	}
	minimap, err := DecodeFile(filepath.Join(dir, minimapFile))
	if err != nil {
		return nil, err
	}
	sky, err := DecodeFile(filepath.Join(root, filepath.FromSlash(skyPath)))
	if err != nil {
		return nil, err
	}
	return NewAsset(spec, mask, color, sky, minimap, RasterSize), nil
}

// DecodeFile reads a PNG or JPEG image.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetMissing, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrAssetMissing, path, err)
	}
	return img, nil
}

package track_test

import (
	"image"
	"image/color"
	"image/jpeg"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/sim"
	"racer/internal/testutil"
	"racer/internal/track"
)

func writeTrack(t *testing.T, root string, id int, mask image.Image) {
	t.Helper()
	dir := filepath.Join("track", strconv.Itoa(id))
	testutil.WritePNG(t, root, filepath.Join(dir, "mask.png"), mask)
	testutil.WritePNG(t, root, filepath.Join(dir, "track.png"), testutil.Gradient(128, 128))
	testutil.WritePNG(t, root, filepath.Join(dir, "minimap.png"), testutil.Gradient(32, 32))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "env"), 0o755))
	f, err := os.Create(filepath.Join(root, "env", "skybox.jpg"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, testutil.Gradient(400, 100), nil))
}

func TestLookup(t *testing.T) {
	spec, err := track.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, sim.Vec2{X: 19.7, Y: 18.15}, spec.Spawn.Pos)
	assert.Equal(t, 4.73, spec.Spawn.Heading)
	assert.Equal(t, sim.Segment{P0: sim.Vec2{X: 18.5, Y: 16}, P1: sim.Vec2{X: 21, Y: 17}}, spec.Finish)
	assert.Equal(t, "1", spec.Key())

	spec, err = track.Lookup(6)
	require.NoError(t, err)
	assert.Equal(t, 0.013, spec.Spawn.Heading)

	for _, id := range []int{0, 7, -1} {
		_, err := track.Lookup(id)
		assert.ErrorIs(t, err, track.ErrUnknownTrack)
	}
}

func TestEverySpawnIsInsideTheArena(t *testing.T) {
	for i := 1; i <= track.Count; i++ {
		spec, err := track.Lookup(i)
		require.NoError(t, err)
		assert.True(t, spec.Spawn.Pos.InArena(), "track %d", i)
		assert.True(t, spec.Finish.P0.InArena() && spec.Finish.P1.InArena(), "track %d", i)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, track.Keys())
}

func TestLoadScalesRastersToFixedSize(t *testing.T) {
	root := t.TempDir()
	// left half drivable (black), right half off-track (white)
	mask := testutil.Uniform(60, 60, color.RGBA{A: 255})
	for y := 0; y < 60; y++ {
		for x := 30; x < 60; x++ {
			mask.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	writeTrack(t, root, 3, mask)

	a, err := track.Load(root, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, a.Spec.ID)
	assert.Equal(t, track.RasterSize, a.Mask.Size)
	assert.Equal(t, image.Rect(0, 0, track.RasterSize, track.RasterSize), a.Color.Bounds())
	assert.InDelta(t, 1024.0/30, a.Scale(), 1e-12)
	assert.Equal(t, image.Rect(0, 0, 400, 100), a.Sky.Bounds())

	assert.False(t, a.OffTrack(sim.Vec2{X: 5, Y: 15}))
	assert.True(t, a.OffTrack(sim.Vec2{X: 25, Y: 15}))
	assert.False(t, a.OffTrack(sim.Vec2{X: sim.ArenaMin, Y: sim.ArenaMin}))
	assert.True(t, a.OffTrack(sim.Vec2{X: sim.ArenaMax, Y: sim.ArenaMax}))
}

func TestLoadFailsOnMissingAsset(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, root, 2, testutil.Gradient(8, 8))
	require.NoError(t, os.Remove(filepath.Join(root, "track", "2", "minimap.png")))

	_, err := track.Load(root, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, track.ErrAssetMissing)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = track.Load(root, 4)
	assert.ErrorIs(t, err, track.ErrAssetMissing)
}

func TestLoadFailsOnCorruptAsset(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, root, 5, testutil.Gradient(8, 8))
	require.NoError(t, os.WriteFile(filepath.Join(root, "track", "5", "track.png"), []byte("not a png"), 0o644))

	_, err := track.Load(root, 5)
	assert.ErrorIs(t, err, track.ErrAssetMissing)
}

func TestLoadRejectsUnknownTrack(t *testing.T) {
	_, err := track.Load(t.TempDir(), 9)
	assert.ErrorIs(t, err, track.ErrUnknownTrack)
}

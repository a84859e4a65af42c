package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/sim"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	var buf bytes.Buffer
	s := Load(t.TempDir(), zerolog.New(&buf))

	assert.Equal(t, Defaults(), s)
	assert.Contains(t, buf.String(), "using defaults")
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	dir := writeSettings(t, `{"master_sound": 3,`)
	assert.Equal(t, Defaults(), Load(dir, zerolog.Nop()))
}

func TestLoad_ReadsValues(t *testing.T) {
	dir := writeSettings(t, `{
		"master_sound": 8,
		"engine_sound": 2,
		"tire_sound": 0,
		"music_sound": 10,
		"forward_key": "I",
		"left_key": "J",
		"right_key": "L",
		"backward_key": "K",
		"steering": 7,
		"track": 4,
		"resolution": "1280x720",
		"fps": true
	}`)

	s := Load(dir, zerolog.Nop())
	assert.Equal(t, Settings{
		MasterVolume: 8,
		EngineVolume: 2,
		TireVolume:   0,
		MusicVolume:  10,
		Bindings:     sim.Bindings{Forward: "I", Left: "J", Right: "L", Backward: "K"},
		Sensitivity:  7,
		Track:        4,
		Width:        1280,
		Height:       720,
		ShowFPS:      true,
	}, s)
}

func TestLoad_PartialFileFallsBackPerKey(t *testing.T) {
	dir := writeSettings(t, `{"steering": 9, "left_key": ""}`)

	s := Load(dir, zerolog.Nop())
	assert.Equal(t, 9, s.Sensitivity)
	assert.Equal(t, "A", s.Bindings.Left)
	assert.Equal(t, 5, s.MasterVolume)
	assert.Equal(t, 1, s.Track)
	assert.Equal(t, 800, s.Width)
}

func TestLoad_ClampsOutOfRange(t *testing.T) {
	dir := writeSettings(t, `{
		"master_sound": 42,
		"engine_sound": -3,
		"steering": 11,
		"track": 9,
		"resolution": "huge"
	}`)

	s := Load(dir, zerolog.Nop())
	assert.Equal(t, 10, s.MasterVolume)
	assert.Equal(t, 0, s.EngineVolume)
	assert.Equal(t, 10, s.Sensitivity)
	assert.Equal(t, 1, s.Track)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestSave_ThenLoad(t *testing.T) {
	dir := t.TempDir()
	want := Defaults()
	want.Track = 6
	want.Sensitivity = 2
	want.Bindings.Forward = "UP"
	want.Width, want.Height = 1024, 768
	want.ShowFPS = true

	require.NoError(t, Save(dir, want))
	assert.Equal(t, want, Load(dir, zerolog.Nop()))
}

func TestSave_MissingDir(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope"), Defaults())
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	s := Defaults()
	s.Sensitivity = 3
	s.TireVolume = 10

	p := s.Params()
	assert.Equal(t, 3.0, p.Sensitivity)
	assert.Equal(t, 10.0, p.TireVolume)
	assert.Equal(t, 5.0, p.MasterVolume)
	assert.Equal(t, sim.DefaultOffTrackPenalty, p.OffTrackPenalty)
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"800x600", 800, 600, false},
		{" 1920X1080 ", 1920, 1080, false},
		{"800", 0, 0, true},
		{"0x600", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseResolution(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

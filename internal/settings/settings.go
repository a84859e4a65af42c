// Package settings reads and writes the persisted player settings. The race
// core only reads them; Save is for whatever UI edits them.
package settings

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"racer/internal/sim"
	"racer/internal/track"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.json"

const (
	keyMasterSound = "master_sound"
	keyEngineSound = "engine_sound"
	keyTireSound   = "tire_sound"
	keyMusicSound  = "music_sound"
	keyForward     = "forward_key"
	keyLeft        = "left_key"
	keyRight       = "right_key"
	keyBackward    = "backward_key"
	keySteering    = "steering"
	keyTrack       = "track"
	keyResolution  = "resolution"
	keyFPS         = "fps"

	defaultResolution = "800x600"
	maxLevel          = 10
)

// Settings is the plain configuration value handed to a race.
type Settings struct {
	MasterVolume int // 0..10
	EngineVolume int
	TireVolume   int
	MusicVolume  int
	Bindings     sim.Bindings
	Sensitivity  int // 0..10
	Track        int // 1..6
	Width        int
	Height       int
	ShowFPS      bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		MasterVolume: 5,
		EngineVolume: 5,
		TireVolume:   5,
		MusicVolume:  5,
		Bindings:     sim.DefaultBindings,
		Sensitivity:  5,
		Track:        1,
		Width:        800,
		Height:       600,
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(keyMasterSound, d.MasterVolume)
	v.SetDefault(keyEngineSound, d.EngineVolume)
	v.SetDefault(keyTireSound, d.TireVolume)
	v.SetDefault(keyMusicSound, d.MusicVolume)
	v.SetDefault(keyForward, d.Bindings.Forward)
	v.SetDefault(keyLeft, d.Bindings.Left)
	v.SetDefault(keyRight, d.Bindings.Right)
	v.SetDefault(keyBackward, d.Bindings.Backward)
	v.SetDefault(keySteering, d.Sensitivity)
	v.SetDefault(keyTrack, d.Track)
	v.SetDefault(keyResolution, defaultResolution)
	v.SetDefault(keyFPS, d.ShowFPS)
}

// Load reads dir/settings.json. A missing or unreadable file yields the
// defaults; out-of-range values are clamped. Load never fails.
func Load(dir string, log zerolog.Logger) Settings {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filepath.Join(dir, FileName))
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("settings unavailable, using defaults")
		return Defaults()
	}

	d := Defaults()
	s := Settings{
		MasterVolume: level(v.GetInt(keyMasterSound)),
		EngineVolume: level(v.GetInt(keyEngineSound)),
		TireVolume:   level(v.GetInt(keyTireSound)),
		MusicVolume:  level(v.GetInt(keyMusicSound)),
		Bindings: sim.Bindings{
			Forward:  keyOr(v.GetString(keyForward), d.Bindings.Forward),
			Left:     keyOr(v.GetString(keyLeft), d.Bindings.Left),
			Right:    keyOr(v.GetString(keyRight), d.Bindings.Right),
			Backward: keyOr(v.GetString(keyBackward), d.Bindings.Backward),
		},
		Sensitivity: level(v.GetInt(keySteering)),
		Track:       v.GetInt(keyTrack),
		ShowFPS:     v.GetBool(keyFPS),
	}
	if _, err := track.Lookup(s.Track); err != nil {
		log.Warn().Int("track", s.Track).Msg("invalid track in settings, using 1")
		s.Track = d.Track
	}
	w, h, err := ParseResolution(v.GetString(keyResolution))
	if err != nil {
		log.Warn().Err(err).Msg("invalid resolution in settings")
		w, h = d.Width, d.Height
	}
	s.Width, s.Height = w, h

	log.Debug().Str("file", v.ConfigFileUsed()).Msg("settings loaded")
	return s
}

// Save writes s to dir/settings.json, replacing any existing file.
func Save(dir string, s Settings) error {
	v := viper.New()
	v.Set(keyMasterSound, s.MasterVolume)
	v.Set(keyEngineSound, s.EngineVolume)
	v.Set(keyTireSound, s.TireVolume)
	v.Set(keyMusicSound, s.MusicVolume)
	v.Set(keyForward, s.Bindings.Forward)
	v.Set(keyLeft, s.Bindings.Left)
	v.Set(keyRight, s.Bindings.Right)
	v.Set(keyBackward, s.Bindings.Backward)
	v.Set(keySteering, s.Sensitivity)
	v.Set(keyTrack, s.Track)
	v.Set(keyResolution, s.Resolution())
	v.Set(keyFPS, s.ShowFPS)

	if err := v.WriteConfigAs(filepath.Join(dir, FileName)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Resolution formats the window size as "WxH".
func (s Settings) Resolution() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Params converts the settings into the physics configuration.
func (s Settings) Params() sim.Params {
	return sim.Params{
		Sensitivity:     float64(s.Sensitivity),
		MasterVolume:    float64(s.MasterVolume),
		EngineVolume:    float64(s.EngineVolume),
		TireVolume:      float64(s.TireVolume),
		OffTrackPenalty: sim.DefaultOffTrackPenalty,
	}
}

// ParseResolution parses "800x600".
func ParseResolution(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("resolution %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("resolution %q: bad width", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("resolution %q: bad height", s)
	}
	return w, h, nil
}

func level(v int) int {
	return min(max(v, 0), maxLevel)
}

func keyOr(k, fallback string) string {
	if strings.TrimSpace(k) == "" {
		return fallback
	}
	return k
}

// Package audio plays the race sounds. Effects are synthesized at start-up
// and driven by the simulation's event bus; nothing here blocks a frame.
package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"racer/internal/sim"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = ChannelCount * 4 // float32 per channel
)

var ErrUnavailable = errors.New("audio unavailable")

// player is the part of oto.Player the system drives.
type player interface {
	Play()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// System owns the output context and one voice per effect. A nil backend
// makes every call a no-op.
type System struct {
	newPlayer func(io.Reader) player
	ready     <-chan struct{}
	log       zerolog.Logger

	samples map[Sound][]byte

	mu     sync.Mutex
	voices map[Sound]player
	music  player
}

// New opens the default output device.
func New(log zerolog.Logger) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	np := func(r io.Reader) player { return ctx.NewPlayer(r) }
	return newSystem(np, ready, log), nil
}

// Muted returns a system that discards everything.
func Muted() *System {
	return &System{log: zerolog.Nop()}
}

func newSystem(np func(io.Reader) player, ready <-chan struct{}, log zerolog.Logger) *System {
	s := &System{
		newPlayer: np,
		ready:     ready,
		log:       log,
		samples:   make(map[Sound][]byte),
		voices:    make(map[Sound]player),
	}
	for _, snd := range []Sound{SoundEngine, SoundTire, SoundStart} {
		s.samples[snd] = Generate(snd)
	}
	return s
}

// Attach routes the simulation signals to playback.
func (s *System) Attach(bus *sim.EventBus) {
	bus.Subscribe(sim.EventStartEngine, func(e sim.Event) { s.Play(SoundStart, e.Volume) })
	bus.Subscribe(sim.EventEngine, func(e sim.Event) { s.Play(SoundEngine, e.Volume) })
	bus.Subscribe(sim.EventTireScreech, func(e sim.Event) { s.Play(SoundTire, e.Volume) })
	bus.Subscribe(sim.EventLapCompleted, func(sim.Event) { s.stop(SoundEngine) })
}

func (s *System) isReady() bool {
	if s.newPlayer == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play starts snd unless its voice is still sounding. A sounding engine only
// takes the new volume.
func (s *System) Play(snd Sound, volume float64) {
	if !s.isReady() {
		return
	}
	volume = clampF(volume, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.voices[snd]; ok {
		if p.IsPlaying() {
			if snd == SoundEngine {
				p.SetVolume(volume)
			}
			return
		}
		s.closePlayer(snd, p)
	}

	data, ok := s.samples[snd]
	if !ok {
		return
	}
	p := s.newPlayer(&soundReader{data: data})
	p.SetVolume(volume)
	p.Play()
	s.voices[snd] = p
}

// StartMusic loops the background track at volume, replacing any running one.
func (s *System) StartMusic(volume float64) {
	if !s.isReady() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.music != nil {
		_ = s.music.Close()
	}
	s.music = s.newPlayer(&musicReader{seed: 7})
	s.music.SetVolume(clampF(volume, 0, 1))
	s.music.Play()
}

func (s *System) stop(snd Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.voices[snd]; ok {
		s.closePlayer(snd, p)
	}
}

func (s *System) closePlayer(snd Sound, p player) {
	if err := p.Close(); err != nil {
		s.log.Debug().Err(err).Stringer("sound", snd).Msg("closing player")
	}
	delete(s.voices, snd)
}

// Close stops every voice and the music.
func (s *System) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for snd, p := range s.voices {
		s.closePlayer(snd, p)
	}
	if s.music != nil {
		_ = s.music.Close()
		s.music = nil
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

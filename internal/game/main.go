// Package game is the desktop front end: it opens the window, feeds key
// state and wall-clock time into a race and presents the composed screen.
package game

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"racer/internal/audio"
	"racer/internal/hud"
	"racer/internal/race"
	"racer/internal/raycast"
	"racer/internal/settings"
	"racer/internal/track"
)

// Options configure one desktop race.
type Options struct {
	Resources string
	Settings  settings.Settings
	Records   race.Recorder // nil disables saving
	Workers   int
	Log       zerolog.Logger
}

// RunDesktop plays one race in a window and returns when it finishes or the
// player quits. Asset problems abort before the window opens.
func RunDesktop(opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := opts.Log
	s := opts.Settings

	asset, err := track.Load(opts.Resources, s.Track)
	if err != nil {
		return fmt.Errorf("load track %d: %w", s.Track, err)
	}
	sprites, err := hud.LoadSprites(opts.Resources)
	if err != nil {
		return err
	}
	overlay, err := hud.New(s.Width, s.Height, asset.Minimap, sprites, s.ShowFPS)
	if err != nil {
		return err
	}

	r, err := race.New(asset, race.Config{
		Params:   s.Params(),
		Bindings: s.Bindings,
		Columns:  raycast.DefaultColumns,
		Rows:     s.Height / 2,
		Workers:  opts.Workers,
	}, opts.Records, log)
	if err != nil {
		return err
	}

	window, err := initWindow(s.Width, s.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)

	rend, err := NewRenderer(s.Width, s.Height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	snd, err := audio.New(log)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without sound")
		snd = audio.Muted()
	}
	defer snd.Close()
	snd.Attach(r.Bus())
	snd.StartMusic(float64(s.MusicVolume) / 10 * float64(s.MasterVolume) / 10)

	return loop(window, rend, overlay, r, log)
}

func loop(window *glfw.Window, rend *Renderer, overlay *hud.HUD, r *race.Race, log zerolog.Logger) error {
	input := NewInput(window)
	screen := overlay.NewScreen()
	var meter hud.FPSMeter

	last := glfw.GetTime()
	for r.State() == race.Running {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := now - last
		last = now
		fps := meter.Tick(dt)

		f, err := r.Frame(race.Input{
			Pressed:   input.KeyState(),
			Quit:      input.Quit(),
			ElapsedMs: dt * 1000,
		})
		if errors.Is(err, race.ErrStopped) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("frame failed")
			return err
		}

		overlay.Compose(screen, f, fps)
		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		if err := rend.Present(screen, fbW, fbH); err != nil {
			return err
		}
		window.SwapBuffers()
	}
	return nil
}

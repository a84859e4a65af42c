// Package race runs one race: it owns the vehicle, drives the per-frame
// order of render, lap check and physics, and reports what the presentation
// layer should draw. It has no window or audio dependency.
package race

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"racer/internal/logging"
	"racer/internal/raycast"
	"racer/internal/sim"
	"racer/internal/track"
)

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

var ErrStopped = errors.New("race stopped")

// Recorder persists a finished lap. records.Store satisfies it.
type Recorder interface {
	Append(trackKey string, seconds float64) error
}

// Config is the per-race configuration handed over by the settings layer.
type Config struct {
	Params   sim.Params
	Bindings sim.Bindings
	Columns  int // horizontal ray samples, raycast.DefaultColumns if zero
	Rows     int // vertical samples per half; required
	Workers  int // raycaster parallelism, 0 = NumCPU
}

// Input is what the presentation layer collected since the last frame.
type Input struct {
	Pressed   sim.KeyState
	Quit      bool
	ElapsedMs float64
}

// HUD is the overlay data for one frame.
type HUD struct {
	Speed      float64  // |acceleration|, 0..3
	Seconds    float64  // race clock
	Position   sim.Vec2 // arena coordinates, for the minimap dot
	OffTrack   bool
	Lap        sim.LapState
	LapSeconds float64 // valid when Lap == sim.Completed
}

// Frame is one presented frame. Image is reused by the next call.
type Frame struct {
	Image  *image.RGBA
	Sprite int // car sprite, 1..9
	HUD    HUD
}

type Race struct {
	ID uuid.UUID

	asset    *track.Asset
	caster   *raycast.Caster
	frame    *image.RGBA
	params   sim.Params
	bindings sim.Bindings
	bus      *sim.EventBus
	recorder Recorder
	log      zerolog.Logger
	trace    zerolog.Logger

	vehicle sim.Vehicle
	lap     sim.LapTracker
	state   State
	clockMs float64
}

// New sets the vehicle on the track's spawn pose and queues the
// start-engine signal. rec may be nil.
func New(asset *track.Asset, cfg Config, rec Recorder, log zerolog.Logger) (*Race, error) {
	if asset == nil {
		return nil, errors.New("race: nil track asset")
	}
	cols := cfg.Columns
	if cols == 0 {
		cols = raycast.DefaultColumns
	}
	caster, err := raycast.New(asset, cols, cfg.Rows, raycast.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, fmt.Errorf("race: %w", err)
	}

	id := uuid.New()
	r := &Race{
		ID:       id,
		asset:    asset,
		caster:   caster,
		frame:    caster.NewFrame(),
		params:   cfg.Params,
		bindings: cfg.Bindings,
		bus:      sim.NewEventBus(),
		recorder: rec,
		log: log.With().
			Str("race", id.String()).
			Str("track", asset.Spec.Key()).
			Logger(),
		vehicle: sim.NewVehicle(asset.Spec.Spawn),
	}
	r.trace = logging.Sampled(r.log, 600)
	r.bus.Emit(sim.Event{Type: sim.EventStartEngine, Volume: cfg.Params.MasterVolume / 10})
	r.log.Info().
		Float64("x", r.vehicle.Pos.X).
		Float64("y", r.vehicle.Pos.Y).
		Float64("heading", r.vehicle.Heading).
		Msg("race started")
	return r, nil
}

// Bus is where audio and other collaborators subscribe. Events are
// delivered at the end of every Frame.
func (r *Race) Bus() *sim.EventBus { return r.bus }

func (r *Race) State() State { return r.state }

func (r *Race) Vehicle() sim.Vehicle { return r.vehicle }

func (r *Race) Lap() sim.LapTracker { return r.lap }


// Seconds is the race clock.
func (r *Race) Seconds() float64 { return r.clockMs / 1000 }

// Stop ends the race without a result.
func (r *Race) Stop() {
	if r.state == Stopped {
		return
	}
	r.state = Stopped
	r.log.Info().Float64("seconds", r.Seconds()).Msg("race aborted")
}

// Frame runs one iteration. The image shows the vehicle as it was before
// this frame's physics step. After a quit or a completed lap the race is
// Stopped and further calls return ErrStopped.
func (r *Race) Frame(in Input) (Frame, error) {
	if r.state == Stopped {
		return Frame{}, ErrStopped
	}
	if in.Quit {
		r.Stop()
		return Frame{}, ErrStopped
	}
	r.clockMs += in.ElapsedMs

	if err := r.caster.Render(r.frame, r.vehicle); err != nil {
		return Frame{}, fmt.Errorf("render: %w", err)
	}
	out := Frame{Image: r.frame, Sprite: r.vehicle.SpriteFrame()}

	r.checkLap()

	sim.Step(&r.vehicle, sim.MapInput(in.Pressed, r.bindings), in.ElapsedMs, r.asset, r.params, r.bus)

	out.HUD = HUD{
		Speed:      absF(r.vehicle.Acceleration),
		Seconds:    r.Seconds(),
		Position:   r.vehicle.Pos,
		OffTrack:   r.offTrackQueued(),
		Lap:        r.lap.State,
		LapSeconds: r.lap.Seconds,
	}
	r.trace.Trace().
		Float64("ms", in.ElapsedMs).
		Float64("accel", r.vehicle.Acceleration).
		Float64("steer", r.vehicle.Steering).
		Int("events", len(r.bus.Pending())).
		Msg("frame")
	r.bus.Flush()
	return out, nil
}

func (r *Race) checkLap() {
	path := r.vehicle.Path()
	switch r.lap.Check(path.P0, path.P1, r.asset.Spec.Finish, r.clockMs) {
	case sim.StartCrossed:
		r.log.Debug().Float64("seconds", r.Seconds()).Msg("start line crossed")
		r.bus.Emit(sim.Event{Type: sim.EventLapStarted})
	case sim.Finished:
		r.state = Stopped
		r.bus.Emit(sim.Event{Type: sim.EventLapCompleted, Seconds: r.lap.Seconds})
		r.log.Info().Float64("seconds", r.lap.Seconds).Msg("race finished")
		if r.recorder == nil {
			return
		}
		if err := r.recorder.Append(r.asset.Spec.Key(), r.lap.Seconds); err != nil {
			r.log.Error().Err(err).Msg("saving record")
		}
	}
}

func (r *Race) offTrackQueued() bool {
	for _, e := range r.bus.Pending() {
		if e.Type == sim.EventOffTrack {
			return true
		}
	}
	return false
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package sim

// Per-call control increments. These are applied once per Step regardless of
// elapsed time; only the position integration is scaled by dt.
const (
	steerIncrement   = 0.003 // at sensitivity 5
	steerDecay       = 0.001
	steerDeadzone    = 0.01
	accelStep        = 0.01
	accelDecay       = 0.005
	accelDeadzone    = 0.001
	engineThreshold  = 0.01
	screechThreshold = 2.0
	msPerUnit        = 500.0

	// DefaultOffTrackPenalty is subtracted from acceleration every step the
	// vehicle sits on a masked pixel.
	DefaultOffTrackPenalty = 0.001
)

// Surface answers the collision-mask lookup for a position already inside
// the arena.
type Surface interface {
	OffTrack(p Vec2) bool
}

// Params is the per-race configuration read by Step.
type Params struct {
	Sensitivity     float64 // 0..10
	MasterVolume    float64 // 0..10
	EngineVolume    float64 // 0..10
	TireVolume      float64 // 0..10
	OffTrackPenalty float64
}

// DefaultParams mirrors the built-in settings.
func DefaultParams() Params {
	return Params{
		Sensitivity:     5,
		MasterVolume:    5,
		EngineVolume:    5,
		TireVolume:      5,
		OffTrackPenalty: DefaultOffTrackPenalty,
	}
}

// Step advances v by one frame. Audio and HUD signals are queued on bus.
func Step(v *Vehicle, in Input, elapsedMs float64, surface Surface, p Params, bus *EventBus) {
	v.PrevPos = v.Pos

	updateSteering(v, in, p)
	updateAcceleration(v, in, p, bus)

	candidate := v.Pos.Add(Direction(v.Heading).Scale(elapsedMs / msPerUnit * v.Acceleration))
	if candidate.InArena() {
		v.Pos = candidate
	}

	// Position is inside the arena here, so the mask lookup stays in range.
	if surface != nil && surface.OffTrack(v.Pos) {
		v.Acceleration = clampF(v.Acceleration-p.OffTrackPenalty, -MaxAcceleration, MaxAcceleration)
		bus.Emit(Event{Type: EventOffTrack})
	}

	v.Heading = NormalizeAngle(v.Heading + v.Steering*v.Acceleration)
}

func updateSteering(v *Vehicle, in Input, p Params) {
	inc := steerIncrement * p.Sensitivity / 5
	if in.Left && v.Steering > -MaxSteering {
		v.Steering -= inc
	}
	if in.Right && v.Steering < MaxSteering {
		v.Steering += inc
	}

	if absF(v.Steering) > steerDeadzone {
		v.Steering -= steerDecay * sign(v.Steering)
	} else if !in.Steering() {
		v.Steering = 0
	}
	v.Steering = clampF(v.Steering, -MaxSteering, MaxSteering)
}

func updateAcceleration(v *Vehicle, in Input, p Params, bus *EventBus) {
	switch {
	case in.Forward && v.Acceleration <= MaxAcceleration:
		v.Acceleration += accelStep
	case in.Backward && v.Acceleration >= -MaxAcceleration:
		v.Acceleration -= accelStep
	case !in.Forward && !in.Backward && absF(v.Acceleration) > accelDeadzone:
		// stops at zero instead of overshooting into a ±decay oscillation
		v.Acceleration = approach(v.Acceleration, 0, accelDecay)
	default:
		v.Acceleration = 0
	}
	v.Acceleration = clampF(v.Acceleration, -MaxAcceleration, MaxAcceleration)

	speed := absF(v.Acceleration)
	if speed > engineThreshold {
		bus.Emit(Event{
			Type:   EventEngine,
			Volume: p.EngineVolume / 10 * p.MasterVolume / 10 * (speed + 1),
		})
	}
	if in.Steering() && speed > screechThreshold {
		bus.Emit(Event{
			Type:   EventTireScreech,
			Volume: p.TireVolume / 10 * p.MasterVolume / 10,
		})
	}
}

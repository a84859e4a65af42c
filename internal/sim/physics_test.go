package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSurface bool

func (s fixedSurface) OffTrack(Vec2) bool { return bool(s) }

type randomSurface struct{ r *rand.Rand }

func (s randomSurface) OffTrack(Vec2) bool { return s.r.Intn(4) == 0 }

func TestStepKeepsAccelerationAndSteeringBounded(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	p := DefaultParams()
	p.Sensitivity = 10
	p.OffTrackPenalty = 0.05

	for i := 0; i < 20000; i++ {
		in := Input{
			Forward:  r.Intn(2) == 0,
			Backward: r.Intn(3) == 0,
			Left:     r.Intn(2) == 0,
			Right:    r.Intn(3) == 0,
		}
		Step(&v, in, r.Float64()*40, randomSurface{r}, p, nil)

		require.GreaterOrEqual(t, v.Acceleration, -MaxAcceleration, "step %d", i)
		require.LessOrEqual(t, v.Acceleration, MaxAcceleration, "step %d", i)
		require.GreaterOrEqual(t, v.Steering, -MaxSteering, "step %d", i)
		require.LessOrEqual(t, v.Steering, MaxSteering, "step %d", i)
		require.True(t, v.Pos.InArena(), "step %d: %+v", i, v.Pos)
		require.True(t, v.Heading >= 0 && v.Heading < 2*math.Pi, "step %d: heading %f", i, v.Heading)
	}
}

func TestStepSaturatesAtFullThrottle(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	for i := 0; i < 1000; i++ {
		Step(&v, Input{Forward: true}, 0, nil, DefaultParams(), nil)
	}
	assert.Equal(t, MaxAcceleration, v.Acceleration)

	for i := 0; i < 2000; i++ {
		Step(&v, Input{Backward: true}, 0, nil, DefaultParams(), nil)
	}
	assert.Equal(t, -MaxAcceleration, v.Acceleration)
}

func TestReleasingInputSettlesToExactlyZero(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	p := DefaultParams()
	p.OffTrackPenalty = 0.0013

	for i := 0; i < 400; i++ {
		Step(&v, Input{Forward: true, Right: true}, 0, fixedSurface(i%3 == 0), p, nil)
	}
	require.NotZero(t, v.Acceleration)
	require.NotZero(t, v.Steering)

	for i := 0; i < 2000; i++ {
		Step(&v, Input{}, 0, nil, p, nil)
	}
	assert.Equal(t, 0.0, v.Acceleration)
	assert.Equal(t, 0.0, v.Steering)
}

func TestReleasingReverseSettlesToExactlyZero(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	for i := 0; i < 137; i++ {
		Step(&v, Input{Backward: true, Left: true}, 0, nil, DefaultParams(), nil)
	}
	for i := 0; i < 2000; i++ {
		Step(&v, Input{}, 0, nil, DefaultParams(), nil)
	}
	assert.Equal(t, 0.0, v.Acceleration)
	assert.Equal(t, 0.0, v.Steering)
}

func TestStepRejectsCandidateOutsideArena(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 28.9, Y: 15}, Heading: 0})
	v.Acceleration = 3

	Step(&v, Input{Forward: true}, 500, nil, DefaultParams(), nil)

	assert.Equal(t, Vec2{X: 28.9, Y: 15}, v.Pos)
	assert.Equal(t, v.Pos, v.PrevPos)
	assert.Equal(t, MaxAcceleration, v.Acceleration)
}

func TestStepIntegratesPositionByElapsedTime(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 10, Y: 10}, Heading: math.Pi / 2})
	v.Acceleration = 1

	Step(&v, Input{}, 500, nil, DefaultParams(), nil)

	// coasting decays 1 → 0.995 before the move, dt = 500/500
	assert.InDelta(t, 10, v.Pos.X, 1e-9)
	assert.InDelta(t, 10.995, v.Pos.Y, 1e-9)
	assert.Equal(t, Vec2{X: 10, Y: 10}, v.PrevPos)
}

func TestStepCannotTurnWhenStationary(t *testing.T) {
	v := NewVehicle(Pose{Pos: Vec2{X: 10, Y: 10}, Heading: 1})
	for i := 0; i < 50; i++ {
		Step(&v, Input{Left: true}, 16, nil, DefaultParams(), nil)
	}
	assert.Equal(t, 1.0, v.Heading)
	assert.Less(t, v.Steering, 0.0)
}

func TestStepTurnsProportionallyToSpeed(t *testing.T) {
	slow := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}, Heading: 1})
	fast := slow
	slow.Acceleration = 0.5
	fast.Acceleration = 2.5

	Step(&slow, Input{Right: true}, 0, nil, DefaultParams(), nil)
	Step(&fast, Input{Right: true}, 0, nil, DefaultParams(), nil)

	assert.Greater(t, fast.Heading-1, slow.Heading-1)
	assert.Greater(t, slow.Heading, 1.0)
}

func TestSteeringIncrementScalesWithSensitivity(t *testing.T) {
	p := DefaultParams()
	p.Sensitivity = 10
	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})

	Step(&v, Input{Right: true}, 0, nil, p, nil)
	assert.InDelta(t, 0.006, v.Steering, 1e-12)

	p.Sensitivity = 0
	w := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	Step(&w, Input{Right: true}, 0, nil, p, nil)
	assert.Equal(t, 0.0, w.Steering)
}

func TestOffTrackAppliesPenaltyEveryStep(t *testing.T) {
	on := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	off := on
	bus := NewEventBus()

	for i := 0; i < 10; i++ {
		Step(&on, Input{Forward: true}, 16, fixedSurface(false), DefaultParams(), nil)
		Step(&off, Input{Forward: true}, 16, fixedSurface(true), DefaultParams(), bus)
	}

	assert.InDelta(t, on.Acceleration-10*DefaultOffTrackPenalty, off.Acceleration, 1e-9)

	warnings := 0
	for _, e := range bus.Pending() {
		if e.Type == EventOffTrack {
			warnings++
		}
	}
	assert.Equal(t, 10, warnings)
}

func TestStepEmitsEngineAndScreech(t *testing.T) {
	p := Params{Sensitivity: 5, MasterVolume: 10, EngineVolume: 10, TireVolume: 4}
	bus := NewEventBus()

	v := NewVehicle(Pose{Pos: Vec2{X: 15, Y: 15}})
	Step(&v, Input{Forward: true}, 0, nil, p, bus)
	assert.Empty(t, bus.Pending(), "0.01 is not above the engine threshold")

	v.Acceleration = 2.5
	Step(&v, Input{Forward: true, Left: true}, 0, nil, p, bus)

	events := bus.Pending()
	require.Len(t, events, 2)
	assert.Equal(t, EventEngine, events[0].Type)
	assert.InDelta(t, 3.51, events[0].Volume, 1e-9)
	assert.Equal(t, EventTireScreech, events[1].Type)
	assert.InDelta(t, 0.4, events[1].Volume, 1e-9)
}

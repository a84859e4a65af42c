// Package sim holds the per-frame vehicle simulation: kinematics, input
// mapping, the off-track penalty and finish-line crossing detection.
package sim

import "math"

// Arena bounds shared by every track (arena units).
const (
	ArenaSize = 30.0
	ArenaMin  = 1.0
	ArenaMax  = 29.0
)

// Vehicle limits.
const (
	MaxAcceleration = 3.0
	MaxSteering     = 0.1
)

// Vec2 is a point in arena units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// InArena reports whether both coordinates lie in [ArenaMin, ArenaMax].
func (v Vec2) InArena() bool {
	return v.X >= ArenaMin && v.X <= ArenaMax && v.Y >= ArenaMin && v.Y <= ArenaMax
}

// Direction returns the unit vector for angle.
func Direction(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Segment is a line segment in arena units.
type Segment struct {
	P0, P1 Vec2
}

// Pose is a spawn position and heading.
type Pose struct {
	Pos     Vec2
	Heading float64
}

// Vehicle is the kinematic state owned by the race loop.
type Vehicle struct {
	Pos          Vec2
	PrevPos      Vec2
	Heading      float64 // radians, [0, 2π)
	Acceleration float64 // signed speed proxy, [-3, 3]
	Steering     float64 // turning rate, [-0.1, 0.1]
}

// NewVehicle places a stationary vehicle at the spawn pose.
func NewVehicle(p Pose) Vehicle {
	return Vehicle{
		Pos:     p.Pos,
		PrevPos: p.Pos,
		Heading: NormalizeAngle(p.Heading),
	}
}

// Path is the segment travelled during the last physics step.
func (v Vehicle) Path() Segment {
	return Segment{P0: v.PrevPos, P1: v.Pos}
}

// SpriteFrame maps the steering accumulator onto the 9 lean poses (1 = full
// left, 5 = straight, 9 = full right).
func (v Vehicle) SpriteFrame() int {
	return clamp(int(math.Round(v.Steering/0.045*4+5)), 1, 9)
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// a tiny negative input can round up to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

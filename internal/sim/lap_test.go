package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Vec2
		want           bool
	}{
		{"crossing diagonals", Vec2{0, 0}, Vec2{2, 2}, Vec2{0, 2}, Vec2{2, 0}, true},
		{"parallel", Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1}, Vec2{1, 1}, false},
		{"collinear disjoint", Vec2{0, 0}, Vec2{1, 1}, Vec2{5, 5}, Vec2{6, 6}, false},
		{"collinear overlapping", Vec2{0, 0}, Vec2{2, 2}, Vec2{1, 1}, Vec2{3, 3}, false},
		{"touching endpoint", Vec2{0, 0}, Vec2{1, 1}, Vec2{1, 1}, Vec2{2, 0}, true},
		{"short of the line", Vec2{0, 0}, Vec2{0.9, 0.9}, Vec2{0, 2}, Vec2{2, 0}, false},
		{"zero length path", Vec2{1, 1}, Vec2{1, 1}, Vec2{0, 2}, Vec2{2, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.p1, tt.p2, tt.p3, tt.p4))
		})
	}
}

func TestLapTrackerNeedsTwoCrossings(t *testing.T) {
	finish := Segment{P0: Vec2{0, 2}, P1: Vec2{2, 0}}
	var lap LapTracker

	assert.Equal(t, NoCrossing, lap.Check(Vec2{0, 0}, Vec2{0.5, 0.5}, finish, 100))
	assert.Equal(t, AwaitingStart, lap.State)

	assert.Equal(t, StartCrossed, lap.Check(Vec2{0.5, 0.5}, Vec2{2, 2}, finish, 200))
	assert.Equal(t, AwaitingFinish, lap.State)
	assert.Zero(t, lap.Seconds)

	assert.Equal(t, NoCrossing, lap.Check(Vec2{2, 2}, Vec2{3, 3}, finish, 5000))
	assert.Equal(t, AwaitingFinish, lap.State)

	assert.Equal(t, Finished, lap.Check(Vec2{2, 2}, Vec2{0, 0}, finish, 12345))
	assert.Equal(t, Completed, lap.State)
	assert.InDelta(t, 12.345, lap.Seconds, 1e-9)
}

func TestLapTrackerIgnoresCrossingsAfterCompletion(t *testing.T) {
	finish := Segment{P0: Vec2{0, 2}, P1: Vec2{2, 0}}
	lap := LapTracker{State: Completed, Seconds: 3}

	assert.Equal(t, NoCrossing, lap.Check(Vec2{0, 0}, Vec2{2, 2}, finish, 9000))
	assert.Equal(t, Completed, lap.State)
	assert.Equal(t, 3.0, lap.Seconds)
}

func TestLapStateString(t *testing.T) {
	assert.Equal(t, "awaiting-start", AwaitingStart.String())
	assert.Equal(t, "awaiting-finish", AwaitingFinish.String())
	assert.Equal(t, "completed", Completed.String())
}

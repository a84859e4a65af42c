// Package track holds the static per-track data: the compiled-in spawn and
// finish-line table and the rasters loaded from the resources directory.
package track

import (
	"errors"
	"fmt"
	"strconv"

	"racer/internal/sim"
)

// Count is the number of shipped tracks. IDs run from 1 to Count.
const Count = 6

var ErrUnknownTrack = errors.New("unknown track")

// Spec is the fixed, non-raster part of a track.
type Spec struct {
	ID     int
	Spawn  sim.Pose
	Finish sim.Segment
}

// Key is the track identifier as used by the records file.
func (s Spec) Key() string { return strconv.Itoa(s.ID) }

var specs = [Count]Spec{
	{ID: 1, Spawn: pose(19.7, 18.15, 4.73), Finish: line(18.5, 16, 21, 17)},
	{ID: 2, Spawn: pose(25.9, 21.14, 4.73), Finish: line(24.94, 19.5, 27, 18.7)},
	{ID: 3, Spawn: pose(27.11, 17.37, 4.9), Finish: line(28.33, 15.61, 26.54, 15.33)},
	{ID: 4, Spawn: pose(27.31, 17.56, 4.74), Finish: line(28.95, 15, 26.38, 15.54)},
	{ID: 5, Spawn: pose(25.58, 17.4, 4.74), Finish: line(24.68, 15.08, 26.45, 15.3)},
	{ID: 6, Spawn: pose(11.21, 15.47, 0.013), Finish: line(13.24, 14.75, 13.43, 16.23)},
}

// Lookup returns the table entry for id.
func Lookup(id int) (Spec, error) {
	if id < 1 || id > Count {
		return Spec{}, fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	return specs[id-1], nil
}

// Keys lists every track identifier in order ("1".."6").
func Keys() []string {
	keys := make([]string, 0, Count)
	for _, s := range specs {
		keys = append(keys, s.Key())
	}
	return keys
}

func pose(x, y, heading float64) sim.Pose {
	return sim.Pose{Pos: sim.Vec2{X: x, Y: y}, Heading: heading}
}

func line(x0, y0, x1, y1 float64) sim.Segment {
	return sim.Segment{P0: sim.Vec2{X: x0, Y: y0}, P1: sim.Vec2{X: x1, Y: y1}}
}

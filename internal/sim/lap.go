package sim

// LapState is the finish-line crossing counter.
type LapState int

const (
	AwaitingStart  LapState = iota // spawn sits just behind the line
	AwaitingFinish                 // start crossed, lap in progress
	Completed                      // second crossing, time recorded
)

func (s LapState) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting-start"
	case AwaitingFinish:
		return "awaiting-finish"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Transition is the result of one LapTracker.Check call.
type Transition int

const (
	NoCrossing Transition = iota
	StartCrossed
	Finished
)

// LapTracker counts crossings of the finish line. The first crossing is the
// race start and is not scored; the second one finishes the race.
type LapTracker struct {
	State   LapState
	Seconds float64 // valid once State == Completed
}

// Check tests the vehicle path prev→cur against the finish line. elapsedMs is
// the race time recorded if this crossing completes the lap.
func (l *LapTracker) Check(prev, cur Vec2, finish Segment, elapsedMs float64) Transition {
	if l.State == Completed {
		return NoCrossing
	}
	if !SegmentsIntersect(prev, cur, finish.P0, finish.P1) {
		return NoCrossing
	}
	if l.State == AwaitingStart {
		l.State = AwaitingFinish
		return StartCrossed
	}
	l.State = Completed
	l.Seconds = elapsedMs / 1000
	return Finished
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 share a point.
// Parallel and collinear segments never intersect; touching an endpoint does.
func SegmentsIntersect(p1, p2, p3, p4 Vec2) bool {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y
	x4, y4 := p4.X, p4.Y

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return false
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / den
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

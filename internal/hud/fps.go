package hud

// FPSMeter averages the frame rate over the last few frames.
type FPSMeter struct {
	dts  [10]float64
	n    int
	next int
}

// Tick records a frame that took dt seconds and returns the current rate.
func (m *FPSMeter) Tick(dt float64) float64 {
	m.dts[m.next] = dt
	m.next = (m.next + 1) % len(m.dts)
	m.n = min(m.n+1, len(m.dts))
	return m.Rate()
}

// Rate is frames per second over the recorded window, 0 before any frame.
func (m *FPSMeter) Rate() float64 {
	var sum float64
	for i := 0; i < m.n; i++ {
		sum += m.dts[i]
	}
	if sum <= 0 {
		return 0
	}
	return float64(m.n) / sum
}

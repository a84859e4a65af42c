package audio

import "math"

// musicReader is an endless procedural driving loop.
type musicReader struct {
	t        float64
	measure  int
	chordIdx int
	seed     uint64
}

var raceChords = [][]float64{
	{110.0, 164.8, 220.0, 261.6}, // Am
	{87.3, 130.8, 174.6, 220.0},  // F
	{130.8, 196.0, 261.6, 329.6}, // C
	{98.0, 146.8, 196.0, 246.9},  // G
}

const musicTempo = 2.2 // beats per second

func (m *musicReader) Read(p []byte) (int, error) {
	samples := len(p) / frameBytes
	for i := 0; i < samples; i++ {
		m.t += 1.0 / SampleRate

		beatLen := 1.0 / musicTempo
		trig := math.Mod(m.t, beatLen)
		beat := int(m.t * musicTempo)
		if beat/4 != m.measure {
			m.measure = beat / 4
			m.chordIdx = (m.chordIdx + 1) % len(raceChords)
		}
		chord := raceChords[m.chordIdx]

		s := kick(trig) * 0.55
		if beat%2 == 1 {
			s += snare(trig, &m.seed) * 0.3
		}
		bassEnv := math.Exp(-trig * 6)
		s += fmBass(m.t, chord[0], bassEnv) * 0.5
		s += fmPad(m.t, chord, 0.6) * 0.35

		duck := 1.0 - 0.2*math.Exp(-trig*20.0)
		putStereoF32(p, i, softSat(s*duck*0.6))
	}
	return samples * frameBytes, nil
}

// kick is a pitch-swept sine with a transient click; trig is the time since
// the beat in seconds.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}

func snare(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := math.Sin(2*math.Pi*188*trig) * 0.24 * env
	noise := (lcg(seed) - lcg(seed)*0.55) * env * 0.6
	return softSat(body + noise)
}

func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	return softSat(b)
}

// fmPad detunes each chord note across three FM oscillators.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	for _, freq := range chord {
		for _, d := range [3]float64{-0.003, 0, 0.004} {
			s += fm(t, freq*(1+d), 1.45, 0.75*env) * 0.05
		}
	}
	return softSat(s)
}

package audio

import (
	"io"
	"math"
)

// Sound is one of the procedurally generated effects.
type Sound int

const (
	SoundEngine Sound = iota // accelerating engine, restarted when it runs out
	SoundTire                // tire screech one-shot
	SoundStart               // ignition one-shot at race start
)

func (s Sound) String() string {
	switch s {
	case SoundEngine:
		return "engine"
	case SoundTire:
		return "tire"
	case SoundStart:
		return "start"
	}
	return "unknown"
}

// Generate renders the stereo float32 buffer for s.
func Generate(s Sound) []byte {
	switch s {
	case SoundEngine:
		return genEngine()
	case SoundTire:
		return genTire()
	case SoundStart:
		return genStart()
	}
	return nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*frameBytes + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat is a gentle saturation curve, never clipping hard.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// genEngine: firing pulses over a rising rev, about a second long.
func genEngine() []byte {
	n := int(1.2 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(31337)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		rpm := 38 + 22*p
		firing := math.Exp(-math.Mod(t*rpm, 1.0)*7) * 0.45
		body := fm(t, rpm*2, 0.5, 2.2) * 0.22
		lp = lp*0.9 + lcg(&seed)*0.1
		env := adsr(p, 0.03, 0.05, 0.9, 0.06)
		putStereoF32(buf, i, softSat((firing+body+lp*0.3)*env*0.7))
	}
	return buf
}

// genTire: band-limited squeal with a wobbling pitch.
func genTire() []byte {
	n := int(0.7 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		pitch := 1650 + 140*math.Sin(2*math.Pi*7.5*t) - 300*p
		squeal := fm(t, pitch, 1.01, 0.8) * 0.32
		lp = lp*0.6 + lcg(&seed)*0.4
		env := adsr(p, 0.04, 0.1, 0.75, 0.3)
		putStereoF32(buf, i, softSat((squeal+lp*0.18)*env))
	}
	return buf
}

// genStart: starter-motor whirr, then the engine catching.
func genStart() []byte {
	n := int(1.6 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(8080)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		var s float64
		if p < 0.45 {
			crank := 11.0
			s = math.Exp(-math.Mod(t*crank, 1.0)*4)*0.3 + fm(t, 190, 0.25, 1.5)*0.12
			s += lcg(&seed) * 0.05
		} else {
			rpm := 30 + 45*math.Exp(-(p-0.45)*6)
			s = math.Exp(-math.Mod(t*rpm, 1.0)*6)*0.5 + fm(t, rpm*2, 0.5, 2.0)*0.2
		}
		env := adsr(p, 0.02, 0.05, 0.95, 0.15)
		putStereoF32(buf, i, softSat(s*env*0.8))
	}
	return buf
}

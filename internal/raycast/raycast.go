// Package raycast renders the first-person view: a sky strip sampled by
// absolute heading above a perspective floor cast onto the track's colour
// map.
package raycast

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"racer/internal/sim"
	"racer/internal/track"
)

// Projection constants.
const (
	DefaultColumns = 120
	FieldOfView    = 60.0 // degrees

	horizonEpsilon = 0.1
	shadeNear      = 1.0
	shadeFar       = 0.4
	skyStripWidth  = 360 // one column per degree
	skyStripScale  = 1.5 // strip height relative to the horizon row count
)

var ErrFrameSize = errors.New("frame size mismatch")

// Caster renders cols×(2·rows) frames for one track. All tables are built in
// New; Render only reads them, so concurrent column work is race free.
type Caster struct {
	cols, rows int
	workers    int

	offsets []float64 // per-column ray offset, radians
	corr    []float64 // per-column perspective correction
	depth   []float64 // per-row inverse depth
	shade   []float64 // per-row fog factor

	sky   *image.RGBA
	color *image.RGBA
}

type Option func(*Caster)

// WithWorkers bounds the number of goroutines used per frame. n <= 0 means
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *Caster) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		c.workers = n
	}
}

// New prepares a caster for asset with cols horizontal samples and rows
// vertical samples per half (the frame is cols wide and 2·rows tall).
func New(a *track.Asset, cols, rows int, opts ...Option) (*Caster, error) {
	if cols < 1 || rows < 2 {
		return nil, fmt.Errorf("raycast: need cols >= 1 and rows >= 2, got %dx%d", cols, rows)
	}
	c := &Caster{
		cols:    cols,
		rows:    rows,
		workers: runtime.NumCPU(),
		color:   a.Color,
	}
	for _, o := range opts {
		o(c)
	}

	c.offsets = make([]float64, cols)
	c.corr = make([]float64, cols)
	for i := 0; i < cols; i++ {
		deg := -FieldOfView/2 + FieldOfView*float64(i)/float64(cols)
		c.offsets[i] = deg * math.Pi / 180
		c.corr[i] = math.Cos(c.offsets[i])
	}

	v := float64(rows)
	r := floats.Span(make([]float64, rows), 0, v)
	c.depth = make([]float64, rows)
	c.shade = make([]float64, rows)
	for i, ri := range r {
		c.depth[i] = v / (v + horizonEpsilon - ri)
		c.shade[i] = shadeFar + (shadeNear-shadeFar)*ri/v
	}

	c.sky = image.NewRGBA(image.Rect(0, 0, skyStripWidth, int(skyStripScale*v)))
	draw.NearestNeighbor.Scale(c.sky, c.sky.Bounds(), a.Sky, a.Sky.Bounds(), draw.Src, nil)
	return c, nil
}

// Bounds is the frame rectangle Render expects.
func (c *Caster) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.cols, 2*c.rows)
}

// NewFrame allocates a frame of the right size.
func (c *Caster) NewFrame() *image.RGBA {
	return image.NewRGBA(c.Bounds())
}

// Render draws the view from v into dst. Columns are computed in parallel and
// each writes only its own pixels, so the result does not depend on the
// worker count.
func (c *Caster) Render(dst *image.RGBA, v sim.Vehicle) error {
	if dst.Bounds() != c.Bounds() {
		return fmt.Errorf("%w: got %v, want %v", ErrFrameSize, dst.Bounds(), c.Bounds())
	}
	if c.workers <= 1 {
		for col := 0; col < c.cols; col++ {
			c.column(dst, col, v.Pos, v.Heading)
		}
		return nil
	}

	band := (c.cols + c.workers - 1) / c.workers
	var g errgroup.Group
	g.SetLimit(c.workers)
	for start := 0; start < c.cols; start += band {
		start := start
		end := min(start+band, c.cols)
		g.Go(func() error {
			for col := start; col < end; col++ {
				c.column(dst, col, v.Pos, v.Heading)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Caster) column(dst *image.RGBA, col int, pos sim.Vec2, heading float64) {
	ray := heading + c.offsets[col]
	dir := sim.Direction(ray)

	deg := int(math.Round(ray*180/math.Pi)) % skyStripWidth
	if deg < 0 {
		deg += skyStripWidth
	}
	for y := 0; y < c.rows; y++ {
		shadeInto(dst.Pix[dst.PixOffset(col, y):], c.sky.Pix[c.sky.PixOffset(deg, y):], 1)
	}

	// Screen row rows+k looks at depth index rows-1-k: far rows sit at the
	// horizon, near rows at the bottom.
	maxIdx := float64(c.color.Bounds().Dx() - 1)
	corr := c.corr[col]
	for k := 0; k < c.rows; k++ {
		d := c.depth[c.rows-1-k] / corr
		px := int(wrapUnit((pos.X+d*dir.X)/sim.ArenaSize) * maxIdx)
		py := int(wrapUnit((pos.Y+d*dir.Y)/sim.ArenaSize) * maxIdx)
		shadeInto(dst.Pix[dst.PixOffset(col, c.rows+k):], c.color.Pix[c.color.PixOffset(px, py):], c.shade[k])
	}
}

// shadeInto writes src's RGB scaled by s into dst with full alpha.
func shadeInto(dst, src []uint8, s float64) {
	dst[0] = uint8(min(float64(src[0])*s, 255))
	dst[1] = uint8(min(float64(src[1])*s, 255))
	dst[2] = uint8(min(float64(src[2])*s, 255))
	dst[3] = 0xff
}

// wrapUnit maps v into [0, 1).
func wrapUnit(v float64) float64 {
	return v - math.Floor(v)
}

// Package hud composes the presented screen: the upscaled raycast frame,
// the car sprite and the race overlay (gauge, timer, minimap, warnings).
// Everything is drawn on the CPU into one RGBA image.
package hud

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"golang.org/x/image/draw"

	"racer/internal/race"
	"racer/internal/raycast"
	"racer/internal/sim"
)

const (
	SpriteSize  = 500
	MinimapSize = 200
	markerR     = 5

	// OffTrackWarning is shown while the car is on a masked pixel.
	OffTrackWarning = "Do not cross the track"

	gaugeTicks     = 29
	gaugeStartDeg  = 140.0
	gaugeTickDeg   = 9.28
	gaugeSweepDeg  = 260.0
	gaugeNeedleLen = 100.0
	gaugeOuterR    = 115.0
	gaugeBox       = 130
)

// HUD holds the pre-scaled overlay art for one race at one resolution.
type HUD struct {
	w, h    int
	minimap *image.RGBA
	sprites []*image.RGBA // index 0 is frame 1
	showFPS bool
	cv      canvas
}

// New scales the minimap and car sprites once. sprites must hold the nine
// frames in order; a nil minimap is left out.
func New(w, h int, minimap image.Image, sprites []image.Image, showFPS bool) (*HUD, error) {
	if len(sprites) != 9 {
		return nil, fmt.Errorf("hud: want 9 car sprites, got %d", len(sprites))
	}
	hd := &HUD{w: w, h: h, showFPS: showFPS}
	if minimap != nil {
		hd.minimap = scaled(minimap, MinimapSize)
	}
	for _, s := range sprites {
		hd.sprites = append(hd.sprites, scaled(s, SpriteSize))
	}
	return hd, nil
}

func scaled(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Bounds is the screen size.
func (hd *HUD) Bounds() image.Rectangle { return image.Rect(0, 0, hd.w, hd.h) }

// NewScreen allocates a screen-sized target for Compose.
func (hd *HUD) NewScreen() *image.RGBA { return image.NewRGBA(hd.Bounds()) }

// Compose draws f and its overlay onto dst.
func (hd *HUD) Compose(dst *image.RGBA, f race.Frame, fps float64) {
	if f.Image != nil {
		raycast.Upscale(dst, hd.Bounds(), f.Image)
	}
	hd.drawCar(dst, f.Sprite)
	if f.HUD.OffTrack {
		drawTextCentered(dst, OffTrackWarning, image.Pt(hd.w/2, hd.h/5), SizeLarge, Palette.Warning.RGBA())
	}
	hd.drawGauge(dst, f.HUD.Speed, image.Pt(hd.w-200, hd.h-150))
	drawTextCentered(dst, TimerText(f.HUD.Seconds), image.Pt(hd.w/2, hd.h/10), SizeLarge, Palette.Text.RGBA())
	hd.drawMinimap(dst, f.HUD.Position)
	if hd.showFPS {
		drawText(dst, fmt.Sprintf("FPS: %d", int(fps)), image.Pt(10, 10), SizeMedium, Palette.Text.RGBA())
	}
}

// TimerText formats the race clock the way the timer shows it.
func TimerText(seconds float64) string {
	return "Timer: " + strconv.FormatFloat(seconds, 'f', -1, 64)
}

func (hd *HUD) drawCar(dst *image.RGBA, frame int) {
	if frame < 1 || frame > len(hd.sprites) {
		return
	}
	at := image.Pt(hd.w/2-SpriteSize/2, hd.h/2+75)
	s := hd.sprites[frame-1]
	draw.Draw(dst, s.Bounds().Add(at), s, image.Point{}, draw.Over)
}

// NeedleAngle is the gauge needle direction in degrees for |acceleration|.
func NeedleAngle(speed float64) float64 {
	return gaugeStartDeg + math.Abs(speed)/sim.MaxAcceleration*gaugeSweepDeg
}

func (hd *HUD) drawGauge(dst *image.RGBA, speed float64, c image.Point) {
	box := image.Rect(c.X-gaugeBox, c.Y-gaugeBox, c.X+gaugeBox, c.Y+gaugeBox)
	cx, cy := float64(c.X), float64(c.Y)

	if hd.cv.begin(dst.Bounds(), box) {
		for i := 0; i < gaugeTicks; i++ {
			sin, cos := math.Sincos((gaugeStartDeg + float64(i)*gaugeTickDeg) * math.Pi / 180)
			inner := 110.0
			if i%2 == 0 {
				inner = 105
			}
			hd.cv.line(cx+inner*cos, cy+inner*sin, cx+gaugeOuterR*cos, cy+gaugeOuterR*sin, 2)
		}
		hd.cv.fill(dst, Palette.Ticks.RGBA())
	}
	for i := 0; i < gaugeTicks; i += 2 {
		sin, cos := math.Sincos((gaugeStartDeg + float64(i)*gaugeTickDeg) * math.Pi / 180)
		at := image.Pt(int(cx+90*cos), int(cy+90*sin))
		drawTextCentered(dst, strconv.Itoa(i*10), at, SizeSmall, Palette.Text.RGBA())
	}

	if hd.cv.begin(dst.Bounds(), box) {
		sin, cos := math.Sincos(NeedleAngle(speed) * math.Pi / 180)
		hd.cv.line(cx, cy, cx+gaugeNeedleLen*cos, cy+gaugeNeedleLen*sin, 5)
		hd.cv.disc(cx, cy, markerR)
		hd.cv.fill(dst, Palette.Needle.RGBA())
	}
}

// MinimapOrigin is the top-left corner of the minimap on screen.
func (hd *HUD) MinimapOrigin() image.Point { return image.Pt(hd.w-250, 50) }

// MarkerPos maps an arena position to the minimap marker centre.
func (hd *HUD) MarkerPos(p sim.Vec2) (float64, float64) {
	o := hd.MinimapOrigin()
	return float64(o.X) + p.X/sim.ArenaSize*MinimapSize, float64(o.Y) + p.Y/sim.ArenaSize*MinimapSize
}

func (hd *HUD) drawMinimap(dst *image.RGBA, p sim.Vec2) {
	o := hd.MinimapOrigin()
	if hd.minimap != nil {
		draw.Draw(dst, hd.minimap.Bounds().Add(o), hd.minimap, image.Point{}, draw.Over)
	}
	x, y := hd.MarkerPos(p)
	box := image.Rect(o.X-markerR-1, o.Y-markerR-1, o.X+MinimapSize+markerR+1, o.Y+MinimapSize+markerR+1)
	if hd.cv.begin(dst.Bounds(), box) {
		hd.cv.disc(x, y, markerR)
		hd.cv.fill(dst, Palette.Marker.RGBA())
	}
}

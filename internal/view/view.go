package view

import "math"

const (
	// Zoom 1 fits the whole timeline; steps double or halve within these.
	MinZoom = 0.25
	MaxZoom = 16
)

// State maps timeline seconds to horizontal pixels for one track area.
// It is read by the renderer and the gesture machine and mutated only
// through its own methods.
type State struct {
	Total float64 // total media duration in seconds
	Zoom  float64
	Start float64 // left edge of the visible window, seconds
}

func New(total float64) *State {
	return &State{Total: total, Zoom: 1}
}

// VisibleDuration is the span of seconds shown at the current zoom.
func (v *State) VisibleDuration() float64 {
	if v.Zoom <= 0 {
		return v.Total
	}
	return v.Total / v.Zoom
}

// TimeToPixel maps a time to an x offset within a track area widthPx wide.
func (v *State) TimeToPixel(t float64, widthPx int) float64 {
	vd := v.VisibleDuration()
	if vd <= 0 {
		return 0
	}
	return (t - v.Start) / vd * float64(widthPx)
}

// PixelToTime is the inverse of TimeToPixel.
func (v *State) PixelToTime(x float64, widthPx int) float64 {
	if widthPx <= 0 {
		return v.Start
	}
	return v.Start + x/float64(widthPx)*v.VisibleDuration()
}

// ZoomIn doubles the zoom (capped) and re-centers on the pre-zoom center.
func (v *State) ZoomIn() {
	center := v.Start + v.VisibleDuration()/2
	v.Zoom = math.Min(v.Zoom*2, MaxZoom)
	v.CenterOn(center)
}

// ZoomOut halves the zoom (floored). When the wider window covers the whole
// timeline the view snaps to 0; otherwise it re-centers on playhead.
func (v *State) ZoomOut(playhead float64) {
	v.Zoom = math.Max(v.Zoom/2, MinZoom)
	if v.VisibleDuration() >= v.Total {
		v.Start = 0
		return
	}
	v.CenterOn(playhead)
}

// CenterOn places t at the middle of the window, clamped to the timeline.
func (v *State) CenterOn(t float64) {
	v.Start = t - v.VisibleDuration()/2
	v.clampStart()
}

// Follow re-centers on the playhead only when it has left the window, so
// the view stays put during normal editing.
func (v *State) Follow(playhead float64) {
	if playhead < v.Start || playhead > v.Start+v.VisibleDuration() {
		v.CenterOn(playhead)
	}
}

func (v *State) clampStart() {
	maxStart := v.Total - v.VisibleDuration()
	if maxStart < 0 {
		maxStart = 0
	}
	if v.Start > maxStart {
		v.Start = maxStart
	}
	if v.Start < 0 {
		v.Start = 0
	}
}

// Tick is one ruler mark.
type Tick struct {
	Time  float64
	Major bool
}

// tick steps from coarse to quarter-second, walked until labels have room.
var tickSteps = []float64{10, 5, 2, 1, 0.5, 0.25}

// Ticks lists ruler marks for the visible window. The step is the finest
// tier that keeps at least minPx pixels between minor ticks; every fourth
// mark (and whole multiples of the coarsest step) is major.
func (v *State) Ticks(widthPx int, minPx float64) []Tick {
	vd := v.VisibleDuration()
	if vd <= 0 || widthPx <= 0 {
		return nil
	}
	pxPerSec := float64(widthPx) / vd
	step := tickSteps[0]
	for _, s := range tickSteps {
		if s*pxPerSec >= minPx {
			step = s
		}
	}
	first := math.Ceil(v.Start/step) * step
	end := math.Min(v.Start+vd, v.Total)
	var out []Tick
	for t := first; t <= end+1e-9; t += step {
		idx := int(math.Round(t / step))
		out = append(out, Tick{Time: t, Major: idx%4 == 0})
	}
	return out
}

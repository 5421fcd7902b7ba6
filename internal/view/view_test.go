package view

import (
	"math"
	"testing"
)

func TestPixelTimeRoundTrip(t *testing.T) {
	v := New(60)
	v.Zoom = 4
	v.Start = 12
	for _, sec := range []float64{12, 13.37, 20, 26.999} {
		px := v.TimeToPixel(sec, 800)
		back := v.PixelToTime(px, 800)
		if math.Abs(back-sec) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", sec, px, back)
		}
	}
}

func TestZoomInRecentersOnWindowCenter(t *testing.T) {
	v := New(60)
	v.CenterOn(10)
	v.ZoomIn()
	if v.Zoom != 2 {
		t.Fatalf("zoom = %v, want 2", v.Zoom)
	}
	if vd := v.VisibleDuration(); vd != 30 {
		t.Fatalf("visible duration = %v, want 30", vd)
	}
	// Centering near 10 with a 30s window clamps the start to 0.
	if v.Start != 0 {
		t.Errorf("start = %v, want 0", v.Start)
	}

	v.CenterOn(40)
	v.ZoomIn()
	if v.VisibleDuration() != 15 {
		t.Fatalf("visible duration = %v, want 15", v.VisibleDuration())
	}
	if math.Abs(v.Start-32.5) > 1e-9 {
		t.Errorf("start = %v, want 32.5 (centered on 40)", v.Start)
	}
}

func TestZoomInCapsAtMax(t *testing.T) {
	v := New(60)
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want cap %v", v.Zoom, MaxZoom)
	}
}

func TestZoomOutSnapsToOriginWhenEverythingFits(t *testing.T) {
	v := New(60)
	v.Zoom = 2
	v.Start = 20
	v.ZoomOut(25)
	if v.Zoom != 1 {
		t.Fatalf("zoom = %v, want 1", v.Zoom)
	}
	if v.Start != 0 {
		t.Errorf("start = %v, want 0 when the window covers the timeline", v.Start)
	}

	v.Zoom = 8
	v.CenterOn(30)
	v.ZoomOut(30)
	if v.Zoom != 4 {
		t.Fatalf("zoom = %v, want 4", v.Zoom)
	}
	if math.Abs(v.Start-22.5) > 1e-9 {
		t.Errorf("start = %v, want 22.5 (centered on playhead)", v.Start)
	}

	for i := 0; i < 8; i++ {
		v.ZoomOut(0)
	}
	if v.Zoom != MinZoom {
		t.Errorf("zoom = %v, want floor %v", v.Zoom, MinZoom)
	}
}

func TestFollowOnlyWhenPlayheadLeaves(t *testing.T) {
	v := New(60)
	v.Zoom = 4
	v.Start = 10
	v.Follow(20) // inside [10,25]
	if v.Start != 10 {
		t.Errorf("follow moved the view for an in-window playhead: start=%v", v.Start)
	}
	v.Follow(40)
	if math.Abs(v.Start-32.5) > 1e-9 {
		t.Errorf("follow start = %v, want 32.5", v.Start)
	}
}

func TestTicksMonotonicAndTiered(t *testing.T) {
	v := New(60)
	prevStep := math.Inf(1)
	for _, zoom := range []float64{0.25, 1, 4, 16} {
		v.Zoom = zoom
		v.Start = 0
		ticks := v.Ticks(800, 40)
		if len(ticks) < 2 {
			t.Fatalf("zoom %v: too few ticks (%d)", zoom, len(ticks))
		}
		step := ticks[1].Time - ticks[0].Time
		for i := 1; i < len(ticks); i++ {
			d := ticks[i].Time - ticks[i-1].Time
			if d <= 0 || math.Abs(d-step) > 1e-9 {
				t.Fatalf("zoom %v: uneven tick spacing %v vs %v", zoom, d, step)
			}
		}
		if step > prevStep {
			t.Errorf("tick step grew when zooming in: %v after %v", step, prevStep)
		}
		prevStep = step
	}
	v.Zoom = 16
	ticks := v.Ticks(1600, 40)
	if got := ticks[1].Time - ticks[0].Time; got != 0.25 {
		t.Errorf("densest tier step = %v, want 0.25", got)
	}
}

package transport

import (
	"math"
	"testing"
)

func TestSeekClamps(t *testing.T) {
	c := NewClock(10, 30)
	c.Seek(-5)
	if c.Time() != 0 {
		t.Errorf("seek below zero: %v", c.Time())
	}
	c.Seek(99)
	if c.Time() != 10 {
		t.Errorf("seek past end: %v", c.Time())
	}
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	c := NewClock(1, 30)
	c.Play()
	for i := 0; i < 100; i++ {
		c.Advance(0.02)
	}
	if c.Time() != 1 {
		t.Errorf("time = %v, want pinned at 1", c.Time())
	}
	if c.Playing() {
		t.Error("still playing past the end")
	}
}

func TestTogglePlayRestartsFromEnd(t *testing.T) {
	c := NewClock(2, 30)
	c.Seek(2)
	c.TogglePlay()
	if c.Time() != 0 || !c.Playing() {
		t.Errorf("toggle at end: time=%v playing=%v", c.Time(), c.Playing())
	}
}

func TestStepFrameGranularity(t *testing.T) {
	c := NewClock(10, 25)
	c.StepFrame(true)
	if math.Abs(c.Time()-0.04) > 1e-12 {
		t.Errorf("frame step = %v, want 0.04", c.Time())
	}
	c.StepFrame(false)
	c.StepFrame(false)
	if c.Time() != 0 {
		t.Errorf("backward step should clamp at 0, got %v", c.Time())
	}
}

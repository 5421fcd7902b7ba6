package gesture

import (
	"math"
	"testing"

	"github.com/tactio/hapticue/internal/cue"
	"github.com/tactio/hapticue/internal/selection"
	"github.com/tactio/hapticue/internal/transport"
	"github.com/tactio/hapticue/internal/view"
)

type fixture struct {
	m     *Machine
	cues  *cue.List
	sel   *selection.State
	view  *view.State
	clock *transport.Clock

	inserted []cue.Kind
	changes  int
}

// newFixture builds a 60s timeline, 600px wide, 24px ruler, 8 tracks of
// 40px. At zoom 1 each pixel is 0.1s.
func newFixture() *fixture {
	f := &fixture{
		cues:  &cue.List{},
		sel:   selection.New(),
		view:  view.New(60),
		clock: transport.NewClock(60, 30),
	}
	f.m = New(Config{
		Layout:    Layout{RulerHeight: 24, TrackHeight: 40, Width: 600, TrackCount: 8},
		Cues:      f.cues,
		Selection: f.sel,
		View:      f.view,
		Playback:  f.clock,
		Insert: func(k cue.Kind, at float64, track int) {
			c := cue.New(k, at, track)
			c.ID = cue.ID(len(f.inserted) + 100)
			f.cues.Add(c)
			f.inserted = append(f.inserted, k)
		},
		OnChange: func() { f.changes++ },
	})
	return f
}

func (f *fixture) addCue(id cue.ID, start, dur float64, track int) *cue.Cue {
	c := cue.New(cue.KindPulse, start, track)
	c.ID = id
	c.Duration = dur
	f.cues.Add(c)
	return c
}

func TestDragMoveFollowsPointer(t *testing.T) {
	f := newFixture()
	c := f.addCue(1, 2, 4, 0) // box x 20..60

	f.m.PointerDown(40, 40, false) // cue body, clear of both edges
	if _, mode, ok := f.m.Dragging(); !ok || mode != DragMove {
		t.Fatalf("expected move drag, got ok=%v mode=%v", ok, mode)
	}
	f.m.PointerMove(140, 40) // +100px = +10s
	if math.Abs(c.Start-12) > 1e-9 {
		t.Errorf("start = %v, want 12", c.Start)
	}
	f.m.PointerUp(140, 40)
	if !f.m.Idle() {
		t.Error("machine not idle after release")
	}
	if f.changes == 0 {
		t.Error("move committed without a change notification")
	}
}

func TestDragMoveClampsToTimeline(t *testing.T) {
	f := newFixture()
	c := f.addCue(1, 2, 4, 0)

	f.m.PointerDown(40, 40, false)
	f.m.PointerMove(-500, 40)
	if c.Start != 0 {
		t.Errorf("start = %v, want clamp at 0", c.Start)
	}
	f.m.PointerMove(5000, 40)
	if math.Abs(c.Start-56) > 1e-9 {
		t.Errorf("start = %v, want clamp at total-duration (56)", c.Start)
	}
}

func TestResizeLeftFreezesBelowMinimum(t *testing.T) {
	f := newFixture()
	c := f.addCue(1, 2, 1, 0)

	f.m.PointerDown(21, 40, false) // within the left grab zone (x0=20)
	if _, mode, _ := f.m.Dragging(); mode != DragResizeLeft {
		t.Fatalf("mode = %v, want resize-left", mode)
	}
	f.m.PointerMove(26, 40) // +0.5s: duration 0.5, still valid
	if math.Abs(c.Start-2.5) > 1e-9 || math.Abs(c.Duration-0.5) > 1e-9 {
		t.Fatalf("after valid shrink: start=%v dur=%v", c.Start, c.Duration)
	}
	f.m.PointerMove(31, 40) // would leave 0s duration; must freeze
	if math.Abs(c.Start-2.5) > 1e-9 || math.Abs(c.Duration-0.5) > 1e-9 {
		t.Errorf("freeze violated: start=%v dur=%v", c.Start, c.Duration)
	}
	if c.Duration <= minCueDuration {
		t.Errorf("duration %v fell to or below the minimum", c.Duration)
	}
}

func TestResizeRightClampsAndRejects(t *testing.T) {
	f := newFixture()
	c := f.addCue(1, 2, 1, 0)

	f.m.PointerDown(29, 40, false) // right grab zone (x1=30)
	if _, mode, _ := f.m.Dragging(); mode != DragResizeRight {
		t.Fatalf("mode = %v, want resize-right", mode)
	}
	f.m.PointerMove(-200, 40)
	if math.Abs(c.Duration-minCueDuration) > 1e-9 {
		t.Errorf("duration = %v, want floor %v", c.Duration, minCueDuration)
	}
	f.m.PointerMove(6000, 40) // would extend past 60s
	if c.Start+c.Duration > 60 {
		t.Errorf("cue end %v exceeds total duration", c.Start+c.Duration)
	}
}

func TestScrubSeeksImmediatelyAndClamps(t *testing.T) {
	f := newFixture()
	f.m.PointerDown(300, 10, false)
	if !f.m.Scrubbing() {
		t.Fatal("ruler press did not start scrubbing")
	}
	if math.Abs(f.clock.Time()-30) > 1e-9 {
		t.Errorf("seek on press = %v, want 30", f.clock.Time())
	}
	f.m.PointerMove(9000, 10)
	if f.clock.Time() != 60 {
		t.Errorf("scrub past the end = %v, want clamp at 60", f.clock.Time())
	}
	f.m.PointerUp(9000, 10)
	if !f.m.Idle() {
		t.Error("machine not idle after scrub release")
	}
}

func TestMarqueeSelectsIntersecting(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0) // box x 20..30, y 24..64
	f.addCue(2, 5, 1, 1) // box x 50..60, y 64..104
	f.addCue(3, 30, 1, 7)

	f.m.PointerDown(10, 30, false)
	f.m.PointerMove(70, 90)
	f.m.PointerUp(70, 90)

	if !f.sel.Has(1) || !f.sel.Has(2) {
		t.Errorf("containing marquee missed cues: %v", f.sel.IDs())
	}
	if f.sel.Has(3) {
		t.Error("disjoint cue selected")
	}
}

func TestMarqueeBelowNoiseThresholdIsClick(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0)
	f.sel.Replace(1)

	// No modifier: the press itself clears the selection, and the tiny
	// rectangle selects nothing back.
	f.m.PointerDown(200, 30, false)
	if f.sel.Len() != 0 {
		t.Fatal("selection not cleared at marquee start")
	}
	f.m.PointerMove(203, 33)
	f.m.PointerUp(203, 33)
	if f.sel.Len() != 0 {
		t.Errorf("noise marquee selected %v", f.sel.IDs())
	}
}

func TestMarqueeWithModifierKeepsSelection(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0)
	f.addCue(2, 40, 1, 0) // box x 400..410
	f.sel.Replace(1)

	f.m.PointerDown(390, 30, true)
	f.m.PointerMove(420, 90)
	f.m.PointerUp(420, 90)

	if !f.sel.Has(1) || !f.sel.Has(2) {
		t.Errorf("modifier marquee lost cues: %v", f.sel.IDs())
	}
}

func TestClickSelectionModifierRule(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0)
	f.addCue(2, 5, 1, 0)

	f.m.PointerDown(25, 40, false)
	f.m.PointerUp(25, 40)
	if f.sel.Len() != 1 || !f.sel.Has(1) {
		t.Fatalf("plain click selection = %v, want {1}", f.sel.IDs())
	}

	f.m.PointerDown(55, 40, true)
	f.m.PointerUp(55, 40)
	if f.sel.Len() != 2 {
		t.Fatalf("modifier click should extend, got %v", f.sel.IDs())
	}

	// Toggling the same cue back out restores the original set.
	f.m.PointerDown(55, 40, true)
	f.m.PointerUp(55, 40)
	if f.sel.Len() != 1 || !f.sel.Has(1) {
		t.Errorf("toggle round trip broke selection: %v", f.sel.IDs())
	}
	if p, ok := f.sel.Primary(); !ok || p != 1 {
		t.Errorf("primary = %v/%v, want 1", p, ok)
	}
}

func TestSingleActiveGesture(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0)

	f.m.PointerDown(300, 10, false) // scrubbing
	f.m.PointerDown(25, 40, false)  // must be ignored
	if _, _, ok := f.m.Dragging(); ok {
		t.Fatal("second pointer-down started a drag during a scrub")
	}
	if !f.m.Scrubbing() {
		t.Fatal("scrub was displaced")
	}
}

func TestLibraryDragHoverAndDrop(t *testing.T) {
	f := newFixture()

	f.m.LibraryDragEnter("kick_hard", 100, 24+40*2+10)
	if tr, ok := f.m.HoverTrack(); !ok || tr != 2 {
		t.Fatalf("hover track = %v/%v, want 2", tr, ok)
	}
	f.m.PointerMove(100, 9999) // below the last track: clamp
	if tr, _ := f.m.HoverTrack(); tr != 7 {
		t.Errorf("hover track = %v, want clamp at 7", tr)
	}

	f.m.Drop(200, 24+40*3+5)
	if len(f.inserted) != 1 || f.inserted[0] != cue.KindKickHard {
		t.Fatalf("drop inserted %v", f.inserted)
	}
	got := f.cues.All()[0]
	if math.Abs(got.Start-20) > 1e-9 || got.Track != 3 {
		t.Errorf("dropped cue at %v on track %d, want 20s on track 3", got.Start, got.Track)
	}
	if !f.m.Idle() {
		t.Error("machine not idle after drop")
	}
}

func TestLibraryDragMalformedPayloadIgnored(t *testing.T) {
	f := newFixture()
	f.m.LibraryDragEnter("laser_sweep", 100, 60)
	if !f.m.Idle() {
		t.Fatal("unknown payload started a gesture")
	}
	f.m.Drop(100, 60)
	if len(f.inserted) != 0 {
		t.Errorf("malformed payload inserted %v", f.inserted)
	}
}

func TestLibraryDragLeaveCancels(t *testing.T) {
	f := newFixture()
	f.m.LibraryDragEnter("pulse", 100, 60)
	f.m.DragLeave()
	if !f.m.Idle() {
		t.Error("drag-leave did not return to idle")
	}
}

func TestDeleteSelected(t *testing.T) {
	f := newFixture()
	f.addCue(1, 2, 1, 0)
	f.addCue(2, 5, 1, 1)
	f.addCue(3, 9, 1, 2)
	f.sel.Add(1)
	f.sel.Add(3)

	f.m.DeleteSelected()
	if f.cues.Len() != 1 || f.cues.ByID(2) == nil {
		t.Fatalf("delete left %d cues", f.cues.Len())
	}
	if f.sel.Len() != 0 {
		t.Error("selection not cleared after delete")
	}

	before := f.changes
	f.m.DeleteSelected()
	if f.changes != before {
		t.Error("empty delete reported a change")
	}
}

func TestDragSensitivityTracksCurrentZoom(t *testing.T) {
	f := newFixture()
	c := f.addCue(1, 2, 4, 0)

	f.m.PointerDown(40, 40, false)
	f.view.Zoom = 2 // live re-zoom mid-drag: 1px is now 0.05s
	f.view.Start = 0
	f.m.PointerMove(140, 40) // +100px = +5s under the new scale
	if math.Abs(c.Start-7) > 1e-9 {
		t.Errorf("start = %v, want 7 under the current scale", c.Start)
	}
}

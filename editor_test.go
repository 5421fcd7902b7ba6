package hapticue

import (
	"testing"

	"github.com/tactio/hapticue/internal/cue"
)

func TestCreateCueDefaultsAndSelection(t *testing.T) {
	e := NewEditor()
	c, err := e.CreateCue("kick_hard", 2.0, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Duration != 0.5 || c.Track != 0 {
		t.Errorf("cue = dur %v track %d, want 0.5 / 0", c.Duration, c.Track)
	}
	if p, ok := e.Selection().Primary(); !ok || p != c.ID {
		t.Errorf("new cue should become primary, got %v/%v", p, ok)
	}
}

func TestCreateCueUnknownKind(t *testing.T) {
	e := NewEditor()
	if _, err := e.CreateCue("laser_sweep", 0, 0); err == nil {
		t.Fatal("unknown kind accepted")
	}
	if len(e.Cues()) != 0 {
		t.Error("failed create left a cue behind")
	}
}

func TestCreateCueHeuristicSkipsOccupiedTrack(t *testing.T) {
	e := NewEditor()
	a, _ := e.CreateCue("pulse", 0, 0)
	a.Duration = 1
	b, _ := e.CreateCue("pulse", 1, 0)
	b.Duration = 1

	c, err := e.CreateCue("pulse", 0.5, -1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Track != 1 {
		t.Errorf("heuristic placed cue on track %d, want 1", c.Track)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	changes := 0
	e := NewEditor(WithChangeTap(func() { changes++ }))
	c, _ := e.CreateCue("pulse", 1, 0)

	ns := 4.0
	if !e.UpdateCue(c.ID, cue.Patch{Start: &ns}) {
		t.Fatal("update of existing cue failed")
	}
	if c.Start != 4 {
		t.Errorf("start = %v, want 4", c.Start)
	}
	if e.UpdateCue(999, cue.Patch{Start: &ns}) {
		t.Error("update of missing cue reported success")
	}

	if !e.DeleteCue(c.ID) {
		t.Fatal("delete failed")
	}
	if _, ok := e.Selection().Primary(); ok {
		t.Error("deleted cue still primary")
	}
	if changes == 0 {
		t.Error("change tap never fired")
	}
}

func TestDeleteCuesCountsExisting(t *testing.T) {
	e := NewEditor()
	a, _ := e.CreateCue("pulse", 0, 0)
	b, _ := e.CreateCue("pulse", 1, 1)
	if n := e.DeleteCues([]cue.ID{a.ID, 999, b.ID}); n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
}

func TestAdvanceFollowsPlayhead(t *testing.T) {
	e := NewEditor(WithDuration(60))
	e.View().Zoom = 4 // 15s window
	e.Clock().Play()
	for i := 0; i < 100; i++ {
		e.Advance(0.2) // to t=20, past the initial [0,15] window
	}
	v := e.View()
	if t0 := e.Clock().Time(); t0 < v.Start || t0 > v.Start+v.VisibleDuration() {
		t.Errorf("playhead %v left the view window [%v,%v]", t0, v.Start, v.Start+v.VisibleDuration())
	}
}

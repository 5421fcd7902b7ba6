package hapticue

import (
	"fmt"

	"github.com/tactio/hapticue/internal/cue"
	"github.com/tactio/hapticue/internal/gesture"
	"github.com/tactio/hapticue/internal/selection"
	"github.com/tactio/hapticue/internal/transport"
	"github.com/tactio/hapticue/internal/view"
)

type EditorOption func(*editorConfig)

type editorConfig struct {
	trackCount int
	duration   float64
	frameRate  float64
	changeTap  func()
}

func defaultEditorConfig() editorConfig {
	return editorConfig{trackCount: 8, duration: 60, frameRate: 30}
}

func WithTrackCount(n int) EditorOption {
	return func(cfg *editorConfig) {
		if n > 0 {
			cfg.trackCount = n
		}
	}
}

func WithDuration(seconds float64) EditorOption {
	return func(cfg *editorConfig) {
		if seconds > 0 {
			cfg.duration = seconds
		}
	}
}

func WithFrameRate(fps float64) EditorOption {
	return func(cfg *editorConfig) {
		if fps > 0 {
			cfg.frameRate = fps
		}
	}
}

// WithChangeTap installs a callback invoked after every committed cue
// mutation. UIs use it to mark the open document dirty.
func WithChangeTap(tap func()) EditorOption {
	return func(cfg *editorConfig) {
		cfg.changeTap = tap
	}
}

// Editor is one editing session: it owns the cue collection, selection,
// view window, playback clock and the gesture machine that ties them
// together. All methods are for a single goroutine; gesture handling and
// rendering are expected to share the UI thread.
type Editor struct {
	cues       *cue.List
	sel        *selection.State
	view       *view.State
	clock      *transport.Clock
	machine    *gesture.Machine
	trackCount int
	frameRate  float64
	nextID     cue.ID
	changeTap  func()
}

func NewEditor(opts ...EditorOption) *Editor {
	cfg := defaultEditorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Editor{
		cues:       &cue.List{},
		sel:        selection.New(),
		view:       view.New(cfg.duration),
		clock:      transport.NewClock(cfg.duration, cfg.frameRate),
		trackCount: cfg.trackCount,
		frameRate:  cfg.frameRate,
		changeTap:  cfg.changeTap,
	}
	e.machine = gesture.New(gesture.Config{
		Cues:      e.cues,
		Selection: e.sel,
		View:      e.view,
		Playback:  e.clock,
		Insert: func(k cue.Kind, at float64, track int) {
			e.addCue(k, at, track)
		},
		OnChange: e.changed,
	})
	return e
}

func (e *Editor) Cues() []*cue.Cue            { return e.cues.All() }
func (e *Editor) Selection() *selection.State { return e.sel }
func (e *Editor) View() *view.State           { return e.view }
func (e *Editor) Clock() *transport.Clock     { return e.clock }
func (e *Editor) Gestures() *gesture.Machine  { return e.machine }
func (e *Editor) TrackCount() int             { return e.trackCount }

func (e *Editor) changed() {
	if e.changeTap != nil {
		e.changeTap()
	}
}

func (e *Editor) addCue(k cue.Kind, at float64, track int) *cue.Cue {
	if track < 0 || track >= e.trackCount {
		track = e.cues.FreeTrackAt(at, e.trackCount)
	}
	c := cue.New(k, at, track)
	e.nextID++
	c.ID = e.nextID
	e.cues.Add(c)
	e.sel.Replace(c.ID)
	return c
}

// CreateCue inserts a cue of the named kind at a time. A negative track
// asks for the first free track at that instant (advisory placement).
// The new cue becomes the selection.
func (e *Editor) CreateCue(kindName string, at float64, track int) (*cue.Cue, error) {
	k, ok := cue.KindFromName(kindName)
	if !ok {
		return nil, fmt.Errorf("unknown cue kind %q", kindName)
	}
	if at < 0 {
		at = 0
	}
	c := e.addCue(k, at, track)
	e.changed()
	return c, nil
}

// UpdateCue applies a partial patch, reporting whether the cue exists.
// Invalid fields inside the patch are dropped, never surfaced.
func (e *Editor) UpdateCue(id cue.ID, p cue.Patch) bool {
	c := e.cues.ByID(id)
	if c == nil {
		return false
	}
	c.Apply(p)
	e.changed()
	return true
}

func (e *Editor) DeleteCue(id cue.ID) bool {
	if !e.cues.Remove(id) {
		return false
	}
	e.sel.Drop(id)
	e.changed()
	return true
}

func (e *Editor) DeleteCues(ids []cue.ID) int {
	n := 0
	for _, id := range ids {
		if e.cues.Remove(id) {
			e.sel.Drop(id)
			n++
		}
	}
	if n > 0 {
		e.changed()
	}
	return n
}

// Advance drives the playback clock and keeps the playhead in view.
func (e *Editor) Advance(dt float64) {
	e.clock.Advance(dt)
	if e.clock.Playing() {
		e.view.Follow(e.clock.Time())
	}
}

// reset replaces the session contents, used by document loading.
func (e *Editor) reset(duration float64, trackCount int) {
	if duration <= 0 {
		duration = defaultEditorConfig().duration
	}
	if trackCount <= 0 {
		trackCount = defaultEditorConfig().trackCount
	}
	e.cues = &cue.List{}
	e.sel.Clear()
	e.trackCount = trackCount
	e.view = view.New(duration)
	e.clock = transport.NewClock(duration, e.frameRate)
	layout := e.machine.LayoutInfo()
	e.machine = gesture.New(gesture.Config{
		Layout:    layout,
		Cues:      e.cues,
		Selection: e.sel,
		View:      e.view,
		Playback:  e.clock,
		Insert: func(k cue.Kind, at float64, track int) {
			e.addCue(k, at, track)
		},
		OnChange: e.changed,
	})
	e.nextID = 0
}

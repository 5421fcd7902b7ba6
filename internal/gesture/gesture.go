package gesture

import (
	"github.com/tactio/hapticue/internal/cue"
	"github.com/tactio/hapticue/internal/selection"
	"github.com/tactio/hapticue/internal/view"
)

// Playback is the slice of the media surface the machine needs: it reads
// the total duration and writes the playhead while scrubbing.
type Playback interface {
	Seek(t float64)
	Duration() float64
}

// Layout is the fixed timeline geometry in pixels. The ruler spans the top;
// tracks stack below it at a fixed height.
type Layout struct {
	RulerHeight int
	TrackHeight int
	Width       int // track area width
	TrackCount  int
}

func (l Layout) trackAt(y float64) (int, bool) {
	tr := int((y - float64(l.RulerHeight)) / float64(l.TrackHeight))
	if tr < 0 {
		return 0, false
	}
	if tr >= l.TrackCount {
		return l.TrackCount - 1, false
	}
	return tr, true
}

type DragMode int

const (
	DragMove DragMode = iota
	DragResizeLeft
	DragResizeRight
)

// At most one gesture is in flight; the current gesture is a single variant
// value and nil means idle, so overlapping gestures cannot exist.
type gesture interface {
	isGesture()
}

type dragCue struct {
	id            cue.ID
	mode          DragMode
	startX        float64
	startTime     float64
	startDuration float64
}

type scrub struct{}

type marquee struct {
	x0, y0 float64
	x1, y1 float64
}

type libraryDrag struct {
	kind  cue.Kind
	track int
}

func (dragCue) isGesture()     {}
func (scrub) isGesture()       {}
func (marquee) isGesture()     {}
func (libraryDrag) isGesture() {}

const (
	edgeGrabPx     = 6   // resize handle width on each cue edge
	marqueeNoisePx = 5   // below this in either axis a marquee is a click
	minCueDuration = 0.1 // resizing never shrinks below this
)

// Config wires the machine to the state it coordinates. All referenced
// state is owned by the editor session; the machine is its only mutator.
type Config struct {
	Layout    Layout
	Cues      *cue.List
	Selection *selection.State
	View      *view.State
	Playback  Playback

	// Insert commits a library drop through the cue construction contract.
	Insert func(kind cue.Kind, at float64, track int)
	// OnChange fires after any committed cue mutation (not selection moves).
	OnChange func()
}

type Machine struct {
	cfg     Config
	current gesture
}

func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// SetLayout swaps the timeline geometry, e.g. on window resize. Mid-drag
// deltas then map through the new scale.
func (m *Machine) SetLayout(l Layout) {
	m.cfg.Layout = l
}

func (m *Machine) LayoutInfo() Layout {
	return m.cfg.Layout
}

func (m *Machine) Idle() bool {
	return m.current == nil
}

// Dragging reports an in-flight cue drag.
func (m *Machine) Dragging() (cue.ID, DragMode, bool) {
	if g, ok := m.current.(dragCue); ok {
		return g.id, g.mode, true
	}
	return 0, 0, false
}

// Marquee returns the live rubber-band rectangle corners.
func (m *Machine) Marquee() (x0, y0, x1, y1 float64, ok bool) {
	if g, ok := m.current.(marquee); ok {
		return g.x0, g.y0, g.x1, g.y1, true
	}
	return 0, 0, 0, 0, false
}

func (m *Machine) Scrubbing() bool {
	_, ok := m.current.(scrub)
	return ok
}

// HoverTrack reports the track under an in-flight library drag.
func (m *Machine) HoverTrack() (int, bool) {
	if g, ok := m.current.(libraryDrag); ok {
		return g.track, true
	}
	return 0, false
}

// CueRect returns the cue's screen-space bounding box under the current view.
func (m *Machine) CueRect(c *cue.Cue) (x0, y0, x1, y1 float64) {
	l := m.cfg.Layout
	x0 = m.cfg.View.TimeToPixel(c.Start, l.Width)
	x1 = m.cfg.View.TimeToPixel(c.End(), l.Width)
	y0 = float64(l.RulerHeight + c.Track*l.TrackHeight)
	y1 = y0 + float64(l.TrackHeight)
	return
}

// hitTest finds the topmost cue under the pointer and the drag mode its
// grab zone implies. Selected cues stack above unselected ones.
func (m *Machine) hitTest(x, y float64) (*cue.Cue, DragMode) {
	pick := func(selectedPass bool) (*cue.Cue, DragMode) {
		all := m.cfg.Cues.All()
		for i := len(all) - 1; i >= 0; i-- {
			c := all[i]
			if m.cfg.Selection.Has(c.ID) != selectedPass {
				continue
			}
			x0, y0, x1, y1 := m.CueRect(c)
			if x < x0 || x > x1 || y < y0 || y > y1 {
				continue
			}
			switch {
			case x <= x0+edgeGrabPx:
				return c, DragResizeLeft
			case x >= x1-edgeGrabPx:
				return c, DragResizeRight
			}
			return c, DragMove
		}
		return nil, 0
	}
	if c, mode := pick(true); c != nil {
		return c, mode
	}
	return pick(false)
}

// PointerDown routes a press to scrubbing, cue dragging or marquee
// selection. Ignored while another gesture is active.
func (m *Machine) PointerDown(x, y float64, modifier bool) {
	if m.current != nil {
		return
	}
	l := m.cfg.Layout

	if y < float64(l.RulerHeight) {
		m.current = scrub{}
		m.seekTo(x)
		return
	}

	if c, mode := m.hitTest(x, y); c != nil {
		m.clickSelect(c.ID, modifier)
		m.current = dragCue{
			id:            c.ID,
			mode:          mode,
			startX:        x,
			startTime:     c.Start,
			startDuration: c.Duration,
		}
		return
	}

	if y >= float64(l.RulerHeight+l.TrackCount*l.TrackHeight) {
		return
	}
	// Empty track space: without a modifier the old selection dies at
	// gesture start, not at release.
	if !modifier {
		m.cfg.Selection.Clear()
	}
	m.current = marquee{x0: x, y0: y, x1: x, y1: y}
}

// clickSelect applies the click-modifier rule: plain click replaces the
// selection, a modifier click toggles membership.
func (m *Machine) clickSelect(id cue.ID, modifier bool) {
	if modifier {
		m.cfg.Selection.Toggle(id)
		return
	}
	m.cfg.Selection.Replace(id)
}

func (m *Machine) PointerMove(x, y float64) {
	switch g := m.current.(type) {
	case dragCue:
		m.dragTo(g, x)
	case scrub:
		m.seekTo(x)
	case marquee:
		g.x1, g.y1 = x, y
		m.current = g
	case libraryDrag:
		g.track, _ = m.cfg.Layout.trackAt(y)
		m.current = g
	}
}

// PointerUp finishes the gesture; a marquee commits its selection here.
func (m *Machine) PointerUp(x, y float64) {
	if g, ok := m.current.(marquee); ok {
		g.x1, g.y1 = x, y
		m.commitMarquee(g)
	}
	m.current = nil
}

func (m *Machine) seekTo(x float64) {
	t := m.cfg.View.PixelToTime(x, m.cfg.Layout.Width)
	if t < 0 {
		t = 0
	}
	if total := m.cfg.Playback.Duration(); t > total {
		t = total
	}
	m.cfg.Playback.Seek(t)
}

// dragTo maps the pointer delta through the *current* time scale, so
// re-zooming mid-drag changes sensitivity.
func (m *Machine) dragTo(g dragCue, x float64) {
	c := m.cfg.Cues.ByID(g.id)
	if c == nil {
		m.current = nil
		return
	}
	dt := (x - g.startX) / float64(m.cfg.Layout.Width) * m.cfg.View.VisibleDuration()
	total := m.cfg.Playback.Duration()

	switch g.mode {
	case DragMove:
		ns := g.startTime + dt
		if maxStart := total - g.startDuration; ns > maxStart {
			ns = maxStart
		}
		if ns < 0 {
			ns = 0
		}
		c.Apply(cue.Patch{Start: &ns})
		m.changed()

	case DragResizeLeft:
		ns := g.startTime + dt
		if ns < 0 {
			ns = 0
		}
		nd := g.startDuration - (ns - g.startTime)
		if nd <= minCueDuration {
			return // freeze at the last valid size
		}
		c.Apply(cue.Patch{Start: &ns, Duration: &nd})
		m.changed()

	case DragResizeRight:
		nd := g.startDuration + dt
		if nd < minCueDuration {
			nd = minCueDuration
		}
		if g.startTime+nd > total {
			return
		}
		c.Apply(cue.Patch{Duration: &nd})
		m.changed()
	}
}

// commitMarquee selects every cue whose screen box intersects the
// rectangle (inclusive). Sub-threshold rectangles are pointer noise.
func (m *Machine) commitMarquee(g marquee) {
	w := g.x1 - g.x0
	h := g.y1 - g.y0
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	if w <= marqueeNoisePx || h <= marqueeNoisePx {
		return
	}
	rx0, rx1 := minMax(g.x0, g.x1)
	ry0, ry1 := minMax(g.y0, g.y1)
	for _, c := range m.cfg.Cues.All() {
		x0, y0, x1, y1 := m.CueRect(c)
		if x0 <= rx1 && x1 >= rx0 && y0 <= ry1 && y1 >= ry0 {
			m.cfg.Selection.Add(c.ID)
		}
	}
}

// LibraryDragEnter starts tracking an external palette drag. Unknown kind
// names are malformed payloads and leave the machine idle.
func (m *Machine) LibraryDragEnter(kindName string, x, y float64) {
	if m.current != nil {
		return
	}
	k, ok := cue.KindFromName(kindName)
	if !ok {
		return
	}
	tr, _ := m.cfg.Layout.trackAt(y)
	m.current = libraryDrag{kind: k, track: tr}
}

// Drop inserts a cue of the dragged kind at the drop position.
func (m *Machine) Drop(x, y float64) {
	g, ok := m.current.(libraryDrag)
	m.current = nil
	if !ok || m.cfg.Insert == nil {
		return
	}
	at := m.cfg.View.PixelToTime(x, m.cfg.Layout.Width)
	if at < 0 {
		at = 0
	}
	tr, _ := m.cfg.Layout.trackAt(y)
	m.cfg.Insert(g.kind, at, tr)
	m.changed()
}

func (m *Machine) DragLeave() {
	if _, ok := m.current.(libraryDrag); ok {
		m.current = nil
	}
}

// DeleteSelected removes every selected cue and clears the selection.
// Empty selections are a no-op.
func (m *Machine) DeleteSelected() {
	ids := m.cfg.Selection.IDs()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		m.cfg.Cues.Remove(id)
	}
	m.cfg.Selection.Clear()
	m.changed()
}

func (m *Machine) changed() {
	if m.cfg.OnChange != nil {
		m.cfg.OnChange()
	}
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

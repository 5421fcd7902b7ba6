package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tactio/hapticue"
	"github.com/tactio/hapticue/internal/cue"
	"github.com/tactio/hapticue/internal/gesture"
	"github.com/tactio/hapticue/internal/peaks"
	"github.com/tactio/hapticue/internal/wave"
)

const (
	windowW    = 1100
	windowH    = 720
	minWindowW = 980
	minWindowH = 640

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	rulerH     = 24
	paletteW   = 190
	paletteRow = 40
	statusH    = 40

	peakBins = 1024
)

var (
	bgColor      = color.RGBA{30, 32, 40, 255}
	panelColor   = color.RGBA{46, 49, 60, 255}
	borderColor  = color.RGBA{80, 84, 100, 255}
	laneColorA   = color.RGBA{36, 39, 48, 255}
	laneColorB   = color.RGBA{40, 43, 53, 255}
	rulerColor   = color.RGBA{24, 26, 33, 255}
	tickColor    = color.RGBA{90, 95, 112, 255}
	tickMinor    = color.RGBA{58, 62, 75, 255}
	peakColor    = color.RGBA{60, 90, 130, 160}
	playheadCol  = color.RGBA{255, 90, 90, 255}
	marqueeCol   = color.RGBA{120, 170, 255, 60}
	marqueeEdge  = color.RGBA{120, 170, 255, 200}
	hoverLaneCol = color.RGBA{120, 170, 255, 28}
	cueFillCol   = color.RGBA{52, 70, 96, 255}
	cueEdgeCol   = color.RGBA{96, 130, 176, 255}
	cueSelEdge   = color.RGBA{255, 200, 90, 255}
	waveColor    = color.RGBA{140, 210, 255, 230}
	waveSelColor = color.RGBA{255, 225, 150, 240}
)

type paletteEntry struct {
	kind  string
	label string
}

var palette = []paletteEntry{
	{"rumble_low", "Rumble Low"},
	{"rumble_high", "Rumble High"},
	{"kick_soft", "Kick Soft"},
	{"kick_hard", "Kick Hard"},
	{"heartbeat_slow", "Heartbeat Slow"},
	{"heartbeat_fast", "Heartbeat Fast"},
	{"pulse", "Pulse"},
	{"explosion", "Explosion"},
	{"ramp_up", "Ramp Up"},
	{"ramp_down", "Ramp Down"},
}

type game struct {
	editor *hapticue.Editor
	cache  *wave.Cache

	docPath string
	dirty   bool

	peaks      *peaks.Set
	peaksDirty bool

	paletteHeld int // palette row pressed but not yet dragged out, -1 = none

	status    string
	statusErr bool

	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
}

func newGame(docPath string, duration float64, fps float64) (*game, error) {
	g := &game{
		docPath:     docPath,
		paletteHeld: -1,
		status:      "Ready",
		textCache:   make(map[string]*ebiten.Image, 1024),
		viewW:       windowW,
		viewH:       windowH,
		cache:       wave.NewCache(),
		peaksDirty:  true,
	}
	g.editor = hapticue.NewEditor(
		hapticue.WithDuration(duration),
		hapticue.WithFrameRate(fps),
		hapticue.WithChangeTap(func() {
			g.dirty = true
			g.peaksDirty = true
		}),
	)
	if docPath != "" {
		if err := g.editor.LoadDocumentFile(docPath); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			g.setStatus("New document: " + filepath.Base(docPath))
		} else {
			g.setStatus("Loaded " + filepath.Base(docPath))
		}
		g.dirty = false
	}
	return g, nil
}

func (g *game) Update() error {
	l := g.layoutRects()
	g.editor.Gestures().SetLayout(gesture.Layout{
		RulerHeight: rulerH,
		TrackHeight: g.trackHeight(l.timeline),
		Width:       l.timeline.Dx(),
		TrackCount:  g.editor.TrackCount(),
	})
	g.handleKeys()
	g.handleMouse(l)
	g.editor.Advance(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) handleKeys() {
	clock := g.editor.Clock()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		clock.TogglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.editor.Gestures().DeleteSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual),
		inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.editor.View().ZoomIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus),
		inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.editor.View().ZoomOut(clock.Time())
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		clock.StepFrame(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		clock.StepFrame(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyS) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.saveDocument()
	case inpututil.IsKeyJustPressed(ebiten.KeyE) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.exportCues()
	}
}

func (g *game) handleMouse(l uiLayout) {
	mx, my := ebiten.CursorPosition()
	m := g.editor.Gestures()
	modifier := ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyControl)
	lx := float64(mx - l.timeline.Min.X)
	ly := float64(my - l.timeline.Min.Y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointInRect(mx, my, l.palette):
			g.paletteHeld = g.paletteIndexAt(my, l.palette)
		case pointInRect(mx, my, l.timeline):
			m.PointerDown(lx, ly, modifier)
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		// A held palette entry becomes a library drag once it crosses
		// into the timeline.
		if g.paletteHeld >= 0 && pointInRect(mx, my, l.timeline) {
			m.LibraryDragEnter(palette[g.paletteHeld].kind, lx, ly)
			g.paletteHeld = -1
		}
		m.PointerMove(lx, ly)
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if _, hovering := m.HoverTrack(); hovering {
			if pointInRect(mx, my, l.timeline) {
				m.Drop(lx, ly)
			} else {
				m.DragLeave()
			}
		} else {
			m.PointerUp(lx, ly)
		}
		g.paletteHeld = -1
	}

	_, wy := ebiten.Wheel()
	if wy != 0 && pointInRect(mx, my, l.timeline) {
		if wy > 0 {
			g.editor.View().ZoomIn()
		} else {
			g.editor.View().ZoomOut(g.editor.Clock().Time())
		}
	}
}

func (g *game) paletteIndexAt(my int, rect image.Rectangle) int {
	idx := (my - rect.Min.Y - lineH) / paletteRow
	if idx < 0 || idx >= len(palette) {
		return -1
	}
	return idx
}

func (g *game) saveDocument() {
	if g.docPath == "" {
		g.setError("no document path (start with -doc)")
		return
	}
	if err := g.editor.SaveDocumentFile(g.docPath); err != nil {
		g.setError(err.Error())
		return
	}
	g.dirty = false
	g.setStatus("Saved " + filepath.Base(g.docPath))
}

func (g *game) exportCues() {
	if g.docPath == "" {
		g.setError("no document path (start with -doc)")
		return
	}
	out := g.docPath[:len(g.docPath)-len(filepath.Ext(g.docPath))] + ".json"
	data, err := g.editor.ExportJSON()
	if err != nil {
		g.setError(err.Error())
		return
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		g.setError(err.Error())
		return
	}
	g.setStatus("Exported " + filepath.Base(out))
}

type uiLayout struct {
	palette  image.Rectangle
	timeline image.Rectangle
	status   image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w := g.viewW
	h := g.viewH
	if w < minWindowW {
		w = minWindowW
	}
	if h < minWindowH {
		h = minWindowH
	}

	pad := 16
	statusTop := h - pad - statusH
	paletteRect := image.Rect(pad, pad, pad+paletteW, statusTop-8)
	timelineRect := image.Rect(paletteRect.Max.X+12, pad, w-pad, statusTop-8)
	statusRect := image.Rect(pad, statusTop, w-pad, statusTop+statusH)
	return uiLayout{palette: paletteRect, timeline: timelineRect, status: statusRect}
}

func (g *game) trackHeight(timeline image.Rectangle) int {
	n := g.editor.TrackCount()
	if n < 1 {
		n = 1
	}
	th := (timeline.Dy() - rulerH) / n
	if th < 24 {
		th = 24
	}
	return th
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()

	g.drawPalette(screen, l.palette)
	g.drawTimeline(screen, l.timeline)
	g.drawStatus(screen, l.status)
}

func (g *game) drawPalette(screen *ebiten.Image, rect image.Rectangle) {
	drawPanel(screen, rect)
	g.drawText(screen, "Cue Library", rect.Min.X+8, rect.Min.Y+6)
	top := rect.Min.Y + lineH
	for i, p := range palette {
		y := top + i*paletteRow
		if y+paletteRow > rect.Max.Y {
			break
		}
		btn := image.Rect(rect.Min.X+6, y+4, rect.Max.X-6, y+paletteRow-2)
		fill := laneColorB
		if g.paletteHeld == i {
			fill = cueFillCol
		}
		ebitenutil.DrawRect(screen, float64(btn.Min.X), float64(btn.Min.Y), float64(btn.Dx()), float64(btn.Dy()), fill)
		drawBorderRect(screen, btn)
		g.drawText(screen, p.label, btn.Min.X+8, btn.Min.Y+(btn.Dy()-lineH)/2)
	}
}

func (g *game) drawTimeline(screen *ebiten.Image, rect image.Rectangle) {
	v := g.editor.View()
	m := g.editor.Gestures()
	trackH := g.trackHeight(rect)
	width := rect.Dx()
	n := g.editor.TrackCount()

	// Ruler strip with the intensity peak backdrop.
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(width), rulerH, rulerColor)
	g.drawPeaks(screen, rect, width)

	// Track lanes.
	for tr := 0; tr < n; tr++ {
		y := rect.Min.Y + rulerH + tr*trackH
		col := laneColorA
		if tr%2 == 1 {
			col = laneColorB
		}
		if hov, ok := m.HoverTrack(); ok && hov == tr {
			col = blend(col, hoverLaneCol)
		}
		ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(y), float64(width), float64(trackH), col)
	}

	// Time grid.
	for _, tick := range v.Ticks(width, 60) {
		x := rect.Min.X + int(v.TimeToPixel(tick.Time, width))
		col := tickMinor
		bottom := rect.Min.Y + rulerH + n*trackH
		if tick.Major {
			col = tickColor
			g.drawText(screen, formatTime(tick.Time), x+3, rect.Min.Y+2)
		}
		ebitenutil.DrawRect(screen, float64(x), float64(rect.Min.Y+rulerH), 1, float64(bottom-rect.Min.Y-rulerH), col)
	}

	// Cues: unselected first so selected boxes read as stacked on top.
	sel := g.editor.Selection()
	for _, pass := range []bool{false, true} {
		for _, c := range g.editor.Cues() {
			if sel.Has(c.ID) != pass {
				continue
			}
			g.drawCue(screen, rect, c, pass)
		}
	}

	// Marquee rubber band.
	if x0, y0, x1, y1, ok := m.Marquee(); ok {
		rx0, rx1 := minMax(x0, x1)
		ry0, ry1 := minMax(y0, y1)
		mr := image.Rect(rect.Min.X+int(rx0), rect.Min.Y+int(ry0), rect.Min.X+int(rx1), rect.Min.Y+int(ry1))
		ebitenutil.DrawRect(screen, float64(mr.Min.X), float64(mr.Min.Y), float64(mr.Dx()), float64(mr.Dy()), marqueeCol)
		drawOutline(screen, mr, marqueeEdge)
	}

	// Playhead.
	ph := v.TimeToPixel(g.editor.Clock().Time(), width)
	if ph >= 0 && ph <= float64(width) {
		x := float64(rect.Min.X) + ph
		ebitenutil.DrawRect(screen, x, float64(rect.Min.Y), 2, float64(rulerH+n*trackH), playheadCol)
	}

	drawOutline(screen, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+rulerH+n*trackH), borderColor)
}

func (g *game) drawCue(screen *ebiten.Image, rect image.Rectangle, c *cue.Cue, selected bool) {
	m := g.editor.Gestures()
	x0, y0, x1, y1 := m.CueRect(c)
	if x1 < 0 || x0 > float64(rect.Dx()) {
		return
	}
	box := image.Rect(
		rect.Min.X+int(x0), rect.Min.Y+int(y0)+2,
		rect.Min.X+int(x1), rect.Min.Y+int(y1)-2,
	)
	clipped := box.Intersect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y))
	if clipped.Empty() {
		return
	}
	ebitenutil.DrawRect(screen, float64(clipped.Min.X), float64(clipped.Min.Y), float64(clipped.Dx()), float64(clipped.Dy()), cueFillCol)

	edge := cueEdgeCol
	wcol := waveColor
	if selected {
		edge = cueSelEdge
		wcol = waveSelColor
	}
	drawOutline(screen, box, edge)

	boxW := box.Dx()
	boxH := box.Dy()
	if boxW < 4 || boxH < 8 {
		return
	}
	pts := g.cache.Get(c, boxW, boxH, g.editor.View().Zoom)
	for i := 1; i < len(pts); i++ {
		x0 := float64(box.Min.X) + pts[i-1].X
		x1 := float64(box.Min.X) + pts[i].X
		if x1 < float64(rect.Min.X) || x0 > float64(rect.Max.X) {
			continue
		}
		ebitenutil.DrawLine(screen,
			x0, float64(box.Min.Y)+pts[i-1].Y,
			x1, float64(box.Min.Y)+pts[i].Y,
			wcol)
	}
}

// drawPeaks paints the whole-timeline intensity envelope behind the ruler
// so dense regions are visible even when zoomed in elsewhere.
func (g *game) drawPeaks(screen *ebiten.Image, rect image.Rectangle, width int) {
	if g.peaksDirty || g.peaks == nil {
		g.peaks = g.rebuildPeaks()
		g.peaksDirty = false
	}
	v := g.editor.View()
	vals := g.peaks.Window(v.Start, v.VisibleDuration(), width/2)
	for i, p := range vals {
		h := p * float64(rulerH-4)
		if h < 1 {
			continue
		}
		x := rect.Min.X + i*2
		y := float64(rect.Min.Y+rulerH-2) - h
		ebitenutil.DrawRect(screen, float64(x), y, 2, h, peakColor)
	}
}

func (g *game) rebuildPeaks() *peaks.Set {
	dur := g.editor.Clock().Duration()
	vals := make([]float64, peakBins)
	for _, c := range g.editor.Cues() {
		if c.Duration <= 0 {
			continue
		}
		i0 := int(c.Start / dur * peakBins)
		i1 := int(c.End() / dur * peakBins)
		for i := i0; i <= i1 && i < peakBins; i++ {
			if i < 0 {
				continue
			}
			t := (float64(i)/peakBins*dur - c.Start) / c.Duration
			if v := cueIntensityAt(c, t); v > vals[i] {
				vals[i] = v
			}
		}
	}
	return &peaks.Set{Values: vals, Duration: dur}
}

func cueIntensityAt(c *cue.Cue, t float64) float64 {
	switch p := c.Params.(type) {
	case cue.Static:
		return p.Intensity
	case cue.Ramp:
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return p.IntensityStart + (p.IntensityEnd-p.IntensityStart)*t
	}
	return 0
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle) {
	drawPanel(screen, rect)
	clock := g.editor.Clock()
	state := "Paused"
	if clock.Playing() {
		state = "Playing"
	}
	mark := ""
	if g.dirty {
		mark = " *"
	}
	msg := fmt.Sprintf("%s  %s / %s  zoom %gx  cues %d  selected %d%s",
		state,
		formatTime(clock.Time()), formatTime(clock.Duration()),
		g.editor.View().Zoom,
		len(g.editor.Cues()), g.editor.Selection().Len(), mark)
	if g.status != "" {
		msg += "   | " + g.status
	}
	if g.statusErr {
		msg = "ERROR: " + g.status
	}
	maxChars := maxInt(8, (rect.Dx()-16)/charW)
	g.drawText(screen, shortenEnd(msg, maxChars), rect.Min.X+8, rect.Min.Y+(rect.Dy()-lineH)/2)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW < minWindowW {
		outsideW = minWindowW
	}
	if outsideH < minWindowH {
		outsideH = minWindowH
	}
	g.viewW = outsideW
	g.viewH = outsideH
	return outsideW, outsideH
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		w := maxInt(1, len([]rune(msg))*7)
		img = ebiten.NewImage(w, 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 3000 {
			g.textCache = make(map[string]*ebiten.Image, 1024)
		}
		g.textCache[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func drawPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), panelColor)
	drawOutline(screen, rect, borderColor)
}

func drawBorderRect(screen *ebiten.Image, rect image.Rectangle) {
	drawOutline(screen, rect, borderColor)
}

func drawOutline(screen *ebiten.Image, rect image.Rectangle, col color.Color) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w, 1, col)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, col)
	ebitenutil.DrawRect(screen, x, y, 1, h, col)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, col)
}

func blend(base color.RGBA, over color.RGBA) color.RGBA {
	a := float64(over.A) / 255
	return color.RGBA{
		R: uint8(float64(base.R)*(1-a) + float64(over.R)*a),
		G: uint8(float64(base.G)*(1-a) + float64(over.G)*a),
		B: uint8(float64(base.B)*(1-a) + float64(over.B)*a),
		A: 255,
	}
}

func formatTime(t float64) string {
	mins := int(t) / 60
	secs := t - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

func shortenEnd(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		return string(r[:maxInt(0, maxChars)])
	}
	return string(r[:maxChars-3]) + "..."
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

func main() {
	var (
		docPath  = flag.String("doc", "", "project document to open or create (.yaml)")
		duration = flag.Float64("duration", 60, "timeline length in seconds for new documents")
		fps      = flag.Float64("fps", 30, "video frame rate used by frame stepping")
	)
	flag.Parse()

	path := *docPath
	if path != "" {
		p, err := filepath.Abs(path)
		if err != nil {
			log.Fatalf("resolve %q: %v", path, err)
		}
		path = p
	}

	g, err := newGame(path, *duration, *fps)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("hapticue studio")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if g.dirty && path != "" {
		if err := g.editor.SaveDocumentFile(path); err != nil {
			log.Fatalf("save on exit: %v", err)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/tactio/hapticue"
	"github.com/tactio/hapticue/internal/cue"
	"github.com/tactio/hapticue/internal/wave"
)

const supersample = 2

var (
	stripBg    = color.RGBA{30, 32, 40, 255}
	centerLine = color.RGBA{58, 62, 75, 255}
	cueBg      = color.RGBA{46, 54, 68, 255}
	curveColor = color.RGBA{140, 210, 255, 255}
)

// renderTrack draws every cue on one track into a single strip image at
// double resolution, then downsamples for smooth curves.
func renderTrack(cues []*cue.Cue, duration float64, width, height int) *image.RGBA {
	w := width * supersample
	h := height * supersample
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(stripBg), image.Point{}, draw.Src)
	hline(img, 0, w, h/2, centerLine)

	cache := wave.NewCache()
	for _, c := range cues {
		x0 := int(c.Start / duration * float64(w))
		x1 := int(c.End() / duration * float64(w))
		if x1 <= x0 {
			x1 = x0 + 1
		}
		boxW := x1 - x0
		draw.Draw(img, image.Rect(x0, 0, x1, h), image.NewUniform(cueBg), image.Point{}, draw.Src)

		// Zoom 1 gives the baseline sample density; the strip is a
		// whole-timeline overview, not a zoomed editing view.
		pts := cache.Get(c, boxW, h, 1)
		for i := 1; i < len(pts); i++ {
			line(img,
				x0+int(pts[i-1].X), int(pts[i-1].Y),
				x0+int(pts[i].X), int(pts[i].Y),
				curveColor)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)
	return out
}

func hline(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x < x1; x++ {
		img.SetRGBA(x, y, col)
	}
}

// line is a plain DDA rasterizer; antialiasing comes from the final
// downsample instead.
func line(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		img.SetRGBA(x0, y0, col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(dx)*t))
		y := y0 + int(math.Round(float64(dy)*t))
		img.SetRGBA(x, y, col)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func main() {
	var (
		docPath = flag.String("doc", "", "project document to render (.yaml)")
		outDir  = flag.String("out", ".", "directory for the track strip PNGs")
		width   = flag.Int("width", 1600, "strip width in pixels")
		height  = flag.Int("height", 120, "strip height in pixels")
	)
	flag.Parse()
	if *docPath == "" {
		log.Fatal("usage: hapticue-render -doc scene.yaml [-out dir]")
	}

	e := hapticue.NewEditor()
	if err := e.LoadDocumentFile(*docPath); err != nil {
		log.Fatalf("load %q: %v", *docPath, err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	byTrack := make(map[int][]*cue.Cue)
	for _, c := range e.Cues() {
		byTrack[c.Track] = append(byTrack[c.Track], c)
	}

	duration := e.Clock().Duration()
	base := filepath.Base(*docPath)
	base = base[:len(base)-len(filepath.Ext(base))]

	var eg errgroup.Group
	for tr := 0; tr < e.TrackCount(); tr++ {
		cues := byTrack[tr]
		if len(cues) == 0 {
			continue
		}
		tr := tr
		eg.Go(func() error {
			img := renderTrack(cues, duration, *width, *height)
			name := fmt.Sprintf("%s_track%02d.png", base, tr)
			return writePNG(filepath.Join(*outDir, name), img)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("rendered %d track strips to %s", len(byTrack), *outDir)
}

package hapticue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tactio/hapticue/internal/cue"
)

// Document is the on-disk project format: timeline geometry plus every cue
// with its track. It is this module's own format; the Record JSON in
// export.go remains the interchange shape.
type Document struct {
	Version  int           `yaml:"version"`
	Duration float64       `yaml:"duration"`
	Tracks   int           `yaml:"tracks"`
	Cues     []DocumentCue `yaml:"cues"`
}

type DocumentCue struct {
	Type     string  `yaml:"type"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	Track    int     `yaml:"track"`

	Intensity float64 `yaml:"intensity,omitempty"`
	Sharpness float64 `yaml:"sharpness,omitempty"`

	IntensityStart float64 `yaml:"intensity_start,omitempty"`
	IntensityEnd   float64 `yaml:"intensity_end,omitempty"`
	SharpnessStart float64 `yaml:"sharpness_start,omitempty"`
	SharpnessEnd   float64 `yaml:"sharpness_end,omitempty"`
}

const documentVersion = 1

// Document snapshots the session for saving.
func (e *Editor) Document() Document {
	doc := Document{
		Version:  documentVersion,
		Duration: e.clock.Duration(),
		Tracks:   e.trackCount,
	}
	for _, c := range e.cues.All() {
		dc := DocumentCue{
			Type:     c.Kind.Name(),
			Start:    c.Start,
			Duration: c.Duration,
			Track:    c.Track,
		}
		switch p := c.Params.(type) {
		case cue.Ramp:
			dc.IntensityStart = p.IntensityStart
			dc.IntensityEnd = p.IntensityEnd
			dc.SharpnessStart = p.SharpnessStart
			dc.SharpnessEnd = p.SharpnessEnd
		case cue.Static:
			dc.Intensity = p.Intensity
			dc.Sharpness = p.Sharpness
		}
		doc.Cues = append(doc.Cues, dc)
	}
	return doc
}

// LoadDocument replaces the session contents with the document's. Cue
// parameters are clamped to [0,1]; an unknown cue type fails the whole
// load so a typo cannot silently drop cues.
func (e *Editor) LoadDocument(doc Document) error {
	for i, dc := range doc.Cues {
		if _, ok := cue.KindFromName(dc.Type); !ok {
			return fmt.Errorf("cue %d: unknown type %q", i, dc.Type)
		}
	}
	e.reset(doc.Duration, doc.Tracks)
	for _, dc := range doc.Cues {
		k, _ := cue.KindFromName(dc.Type)
		track := dc.Track
		if track < 0 || track >= e.trackCount {
			track = 0
		}
		c := e.addCue(k, dc.Start, track)
		if dc.Duration > 0 {
			c.Duration = dc.Duration
		}
		if k.IsRamp() {
			c.Apply(cue.Patch{Params: cue.Ramp{
				IntensityStart: clamp01(dc.IntensityStart),
				IntensityEnd:   clamp01(dc.IntensityEnd),
				SharpnessStart: clamp01(dc.SharpnessStart),
				SharpnessEnd:   clamp01(dc.SharpnessEnd),
			}})
		} else {
			c.Apply(cue.Patch{Params: cue.Static{
				Intensity: clamp01(dc.Intensity),
				Sharpness: clamp01(dc.Sharpness),
			}})
		}
	}
	e.sel.Clear()
	return nil
}

func (e *Editor) SaveDocumentFile(path string) error {
	data, err := yaml.Marshal(e.Document())
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (e *Editor) LoadDocumentFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	return e.LoadDocument(doc)
}

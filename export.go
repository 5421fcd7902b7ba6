package hapticue

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tactio/hapticue/internal/cue"
)

// Record is the external cue shape shared with export/import collaborators.
// Static kinds carry intensity/sharpness; ramp kinds carry the four
// endpoint fields instead. This layout is a compatibility contract; do not
// rename fields.
type Record struct {
	Timestamp float64 `json:"timestamp"`
	Duration  float64 `json:"duration"`
	Type      string  `json:"type"`

	Intensity *float64 `json:"intensity,omitempty"`
	Sharpness *float64 `json:"sharpness,omitempty"`

	IntensityStart *float64 `json:"intensity_start,omitempty"`
	IntensityEnd   *float64 `json:"intensity_end,omitempty"`
	SharpnessStart *float64 `json:"sharpness_start,omitempty"`
	SharpnessEnd   *float64 `json:"sharpness_end,omitempty"`
}

func ptr(v float64) *float64 { return &v }

// ExportRecords flattens the session's cues into records ordered by
// timestamp. Track assignment is an editing concern and is not exported.
func (e *Editor) ExportRecords() []Record {
	out := make([]Record, 0, e.cues.Len())
	for _, c := range e.cues.All() {
		out = append(out, recordFor(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func recordFor(c *cue.Cue) Record {
	r := Record{Timestamp: c.Start, Duration: c.Duration, Type: c.Kind.Name()}
	switch p := c.Params.(type) {
	case cue.Ramp:
		r.IntensityStart = ptr(p.IntensityStart)
		r.IntensityEnd = ptr(p.IntensityEnd)
		r.SharpnessStart = ptr(p.SharpnessStart)
		r.SharpnessEnd = ptr(p.SharpnessEnd)
	case cue.Static:
		r.Intensity = ptr(p.Intensity)
		r.Sharpness = ptr(p.Sharpness)
	}
	return r
}

// ExportJSON marshals the records with indentation, ready for a file.
func (e *Editor) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.ExportRecords(), "", "  ")
}

// ImportJSON appends cues parsed from exported records. Records do not
// carry a track, so each cue lands on the first track free at its start
// instant.
func (e *Editor) ImportJSON(data []byte) (int, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse cue records: %w", err)
	}
	n := 0
	for i, r := range records {
		k, ok := cue.KindFromName(r.Type)
		if !ok {
			return n, fmt.Errorf("record %d: unknown cue type %q", i, r.Type)
		}
		c := e.addCue(k, r.Timestamp, -1)
		if r.Duration > 0 {
			c.Duration = r.Duration
		}
		c.Apply(cue.Patch{Params: paramsFromRecord(k, r)})
		n++
	}
	if n > 0 {
		e.sel.Clear()
		e.changed()
	}
	return n, nil
}

func paramsFromRecord(k cue.Kind, r Record) cue.Params {
	get := func(p *float64, def float64) float64 {
		if p == nil {
			return def
		}
		return clamp01(*p)
	}
	if k.IsRamp() {
		return cue.Ramp{
			IntensityStart: get(r.IntensityStart, 0),
			IntensityEnd:   get(r.IntensityEnd, 0),
			SharpnessStart: get(r.SharpnessStart, 0),
			SharpnessEnd:   get(r.SharpnessEnd, 0),
		}
	}
	return cue.Static{
		Intensity: get(r.Intensity, 0.8),
		Sharpness: get(r.Sharpness, 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

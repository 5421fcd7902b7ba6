package cue

// ID identifies a cue for its whole lifetime. Zero is never assigned.
type ID int

type Kind int

const (
	KindRumbleLow Kind = iota + 1
	KindRumbleHigh
	KindKickSoft
	KindKickHard
	KindHeartbeatSlow
	KindHeartbeatFast
	KindPulse
	KindExplosion
	KindRampUp
	KindRampDown
)

var kindNames = map[Kind]string{
	KindRumbleLow:     "rumble_low",
	KindRumbleHigh:    "rumble_high",
	KindKickSoft:      "kick_soft",
	KindKickHard:      "kick_hard",
	KindHeartbeatSlow: "heartbeat_slow",
	KindHeartbeatFast: "heartbeat_fast",
	KindPulse:         "pulse",
	KindExplosion:     "explosion",
	KindRampUp:        "ramp_up",
	KindRampDown:      "ramp_down",
}

// Name returns the wire name used by drop payloads, documents and export.
func (k Kind) Name() string {
	return kindNames[k]
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsRamp reports whether the kind carries a Ramp payload. Every other kind
// carries a Static payload; the mapping is fixed for the life of a cue.
func (k Kind) IsRamp() bool {
	return k == KindRampUp || k == KindRampDown
}

// KindFromName resolves a wire name. ok is false for unknown names, which
// callers treat as a malformed payload and ignore.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Params is the closed payload union: exactly Static or Ramp.
type Params interface {
	sealedParams()
}

// Static holds constant intensity/sharpness, both in [0,1].
type Static struct {
	Intensity float64
	Sharpness float64
}

// Ramp holds endpoint intensity/sharpness interpolated linearly over the
// cue's duration, all in [0,1]. Only ramp_up/ramp_down cues carry it.
type Ramp struct {
	IntensityStart float64
	IntensityEnd   float64
	SharpnessStart float64
	SharpnessEnd   float64
}

func (Static) sealedParams() {}
func (Ramp) sealedParams()   {}

// Cue is one timed haptic event on a track.
type Cue struct {
	ID       ID
	Kind     Kind
	Start    float64 // seconds, >= 0
	Duration float64 // seconds, > 0
	Track    int
	Params   Params
}

const (
	defaultDuration     = 0.5
	defaultRampDuration = 2.0
)

// New builds a cue of the given kind at start on track, with the kind's
// default duration and parameters.
func New(kind Kind, start float64, track int) *Cue {
	if start < 0 {
		start = 0
	}
	c := &Cue{Kind: kind, Start: start, Track: track}
	switch kind {
	case KindRampUp:
		c.Duration = defaultRampDuration
		c.Params = Ramp{IntensityStart: 0.1, IntensityEnd: 1.0, SharpnessStart: 0.1, SharpnessEnd: 0.7}
	case KindRampDown:
		c.Duration = defaultRampDuration
		c.Params = Ramp{IntensityStart: 1.0, IntensityEnd: 0.1, SharpnessStart: 0.7, SharpnessEnd: 0.1}
	default:
		c.Duration = defaultDuration
		c.Params = Static{Intensity: 0.8, Sharpness: 0.5}
	}
	return c
}

// End returns the cue's end instant in seconds.
func (c *Cue) End() float64 {
	return c.Start + c.Duration
}

// Patch is a partial update; nil fields are left untouched. Parameter
// values are expected to be pre-clamped to [0,1] by the editing surface.
type Patch struct {
	Start    *float64
	Duration *float64
	Track    *int
	Params   Params
}

// Apply commits the patch. Updates that would make the duration
// non-positive or the start negative are dropped field-wise; a Params value
// whose shape does not match the cue's kind is ignored.
func (c *Cue) Apply(p Patch) {
	if p.Start != nil && *p.Start >= 0 {
		c.Start = *p.Start
	}
	if p.Duration != nil && *p.Duration > 0 {
		c.Duration = *p.Duration
	}
	if p.Track != nil && *p.Track >= 0 {
		c.Track = *p.Track
	}
	if p.Params != nil {
		switch p.Params.(type) {
		case Ramp:
			if c.Kind.IsRamp() {
				c.Params = p.Params
			}
		case Static:
			if !c.Kind.IsRamp() {
				c.Params = p.Params
			}
		}
	}
}

// List owns an ordered collection of cues. Order is insertion order; the
// renderer decides stacking separately from storage.
type List struct {
	cues []*Cue
}

func (l *List) Add(c *Cue) {
	l.cues = append(l.cues, c)
}

// All returns the backing slice; callers must not reorder it.
func (l *List) All() []*Cue {
	return l.cues
}

func (l *List) Len() int {
	return len(l.cues)
}

func (l *List) ByID(id ID) *Cue {
	for _, c := range l.cues {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Remove deletes the cue with the given id, reporting whether it existed.
func (l *List) Remove(id ID) bool {
	for i, c := range l.cues {
		if c.ID == id {
			l.cues = append(l.cues[:i], l.cues[i+1:]...)
			return true
		}
	}
	return false
}

// FreeTrackAt scans tracks 0..trackCount-1 and returns the first whose cues
// do not cover the instant at. Falls back to 0 when every track is occupied.
// Placement is advisory only; overlap is not an enforced invariant.
func (l *List) FreeTrackAt(at float64, trackCount int) int {
	for tr := 0; tr < trackCount; tr++ {
		occupied := false
		for _, c := range l.cues {
			if c.Track == tr && at >= c.Start && at < c.End() {
				occupied = true
				break
			}
		}
		if !occupied {
			return tr
		}
	}
	return 0
}

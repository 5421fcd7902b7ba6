package wave

import (
	"math"

	"github.com/tactio/hapticue/internal/cue"
)

// Point is one sample of a rendered curve. X runs left to right over
// [0,width]; Y is centered on height/2.
type Point struct {
	X float64
	Y float64
}

const (
	minSamples = 32
	maxSamples = 512

	// Per-family amplitude factors. Peak deviation from the center line
	// stays within 0.45*height for every family, jitter included.
	ampRumble    = 0.40
	ampKick      = 0.45
	ampHeartbeat = 0.45
	ampPulse     = 0.42
	ampExplosion = 0.45
	ampRamp      = 0.45

	jitterSpan = 0.05 // rumble jitter, as a fraction of intensity
)

// Synthesize renders the cue's parameters into a curve spanning widthPx
// horizontally, centered vertically in heightPx. Higher zoom and longer
// cues get more samples. The result depends only on the inputs: rumble
// jitter is drawn from a generator seeded by the cue id, so re-synthesis
// of the same cue is reproducible.
func Synthesize(c *cue.Cue, widthPx, heightPx int, zoom float64) []Point {
	n := sampleCount(c.Duration, zoom)
	pts := make([]Point, n)
	h := float64(heightPx)
	w := float64(widthPx)
	amp := h * factorFor(c.Kind)

	rng := newJitter(uint64(c.ID))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		v := sampleValue(c, t, rng)
		pts[i] = Point{X: t * w, Y: h/2 - v*amp}
	}
	return pts
}

func sampleCount(duration, zoom float64) int {
	n := int(math.Floor(duration * 60 * math.Sqrt(zoom)))
	if n < minSamples {
		return minSamples
	}
	if n > maxSamples {
		return maxSamples
	}
	return n
}

func factorFor(k cue.Kind) float64 {
	switch k {
	case cue.KindRumbleLow, cue.KindRumbleHigh:
		return ampRumble
	case cue.KindKickSoft, cue.KindKickHard:
		return ampKick
	case cue.KindHeartbeatSlow, cue.KindHeartbeatFast:
		return ampHeartbeat
	case cue.KindPulse:
		return ampPulse
	case cue.KindExplosion:
		return ampExplosion
	case cue.KindRampUp, cue.KindRampDown:
		return ampRamp
	}
	return ampPulse
}

// sampleValue evaluates the normalized curve value at local position
// t in [0,1]. The result, intensity included, stays within [-1.05, 1.05]
// (the overshoot is rumble jitter, absorbed by ampRumble).
func sampleValue(c *cue.Cue, t float64, rng *jitter) float64 {
	// A static-kind cue with a missing payload yields the zero Static,
	// which flattens the curve to the center line instead of failing.
	st, _ := c.Params.(cue.Static)
	switch c.Kind {
	case cue.KindRumbleLow:
		return rumble(t, c.Duration, 2.0, st, rng)
	case cue.KindRumbleHigh:
		return rumble(t, c.Duration, 8.0, st, rng)
	case cue.KindKickSoft:
		return kick(t, c.Duration, 0.25, 0.15, 6, st)
	case cue.KindKickHard:
		return kick(t, c.Duration, 0.15, 0.08, 12, st)
	case cue.KindHeartbeatSlow:
		return heartbeat(t, c.Duration, 1.2, st)
	case cue.KindHeartbeatFast:
		return heartbeat(t, c.Duration, 0.6, st)
	case cue.KindPulse:
		return pulse(t, c.Duration, st)
	case cue.KindExplosion:
		return explosion(t, c.Duration, st)
	case cue.KindRampUp, cue.KindRampDown:
		rp, ok := c.Params.(cue.Ramp)
		if !ok {
			// Malformed payload: hold a flat half-amplitude line rather
			// than fail. Not reachable through the editing surface.
			return 0.5
		}
		return ramp(t, c.Duration, c.Kind == cue.KindRampDown, rp)
	}
	return 0
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

// applySharpness bends a normalized value. Sharpness 0 leaves the response
// linear; raising it shrinks the exponent toward 0.3, pushing mid values
// toward full scale so transitions read as angular. Sign is preserved.
func applySharpness(v, sharpness float64) float64 {
	e := 1 - 0.7*clamp01(sharpness)
	if v >= 0 {
		return math.Pow(v, e)
	}
	return -math.Pow(-v, e)
}

func rumble(t, duration, baseFreq float64, p cue.Static, rng *jitter) float64 {
	sec := t * duration
	ph := 2 * math.Pi * baseFreq * sec
	s := p.Sharpness
	sum := math.Sin(ph) + 0.3*s*math.Sin(2*ph) + 0.15*s*math.Sin(3*ph)
	v := applySharpness(sum/(1+0.45*s), s)
	v += rng.next() * jitterSpan
	return v * p.Intensity
}

func kick(t, duration, peakPos, halfWidth, decayRate float64, p cue.Static) float64 {
	s := p.Sharpness
	if t <= peakPos {
		// Attack spike rising into the peak.
		base := 1 - (peakPos-t)/halfWidth
		if base < 0 {
			base = 0
		}
		return applySharpness(base, s) * p.Intensity
	}
	sec := (t - peakPos) * duration
	decay := math.Exp(-decayRate * (t - peakPos))
	vibFreq := 8 + 14*s
	v := decay * (0.70 + 0.25*math.Sin(2*math.Pi*vibFreq*sec))
	return v * p.Intensity
}

func heartbeat(t, duration, interval float64, p cue.Static) float64 {
	sec := t * duration
	u := math.Mod(sec, interval) / interval
	s := p.Sharpness
	var v float64
	switch {
	case u < 0.12:
		v = 0.8 * applySharpness(math.Sin(math.Pi*u/0.12), s)
	case u >= 0.18 && u < 0.28:
		v = 0.5 * applySharpness(math.Sin(math.Pi*(u-0.18)/0.10), s)
	case u >= 0.28 && u < 0.35:
		v = 0.15 * math.Sin(math.Pi*(u-0.28)/0.07)
	}
	return v * p.Intensity
}

func pulse(t, duration float64, p cue.Static) float64 {
	s := p.Sharpness
	duty := 0.3 + 0.3*s
	rate := 3 + 4*s
	phase := math.Mod(t*duration*rate, 1)
	// Edge window shrinks as sharpness rises: sharper means squarer.
	edge := 0.02 + 0.10*(1-s)
	var v float64
	switch {
	case phase < edge:
		v = -1 + 2*phase/edge
	case phase < duty:
		v = 1
	case phase < duty+edge:
		v = 1 - 2*(phase-duty)/edge
	default:
		v = -1
	}
	return applySharpness(v, s) * p.Intensity
}

func explosion(t, duration float64, p cue.Static) float64 {
	s := p.Sharpness
	blast := 0.08 + 0.05*(1-s)
	if t <= blast {
		return applySharpness(math.Sin(math.Pi*t/blast), s) * p.Intensity
	}
	sec := (t - blast) * duration
	decay := math.Exp(-(4 + 8*s) * (t - blast))
	after := math.Sin(2 * math.Pi * (15 + 20*s) * sec)
	return decay * (0.75 + 0.25*after) * p.Intensity
}

func ramp(t, duration float64, down bool, p cue.Ramp) float64 {
	intensity := p.IntensityStart + (p.IntensityEnd-p.IntensityStart)*t
	sharp := clamp01(p.SharpnessStart + (p.SharpnessEnd-p.SharpnessStart)*t)
	progress := t
	if down {
		progress = 1 - t
	}
	// Exponential-leaning above sharpness 0.5, logarithmic-leaning below,
	// linear exactly at 0.5.
	k := 0.4 + 1.2*sharp
	base := math.Pow(progress, k)
	// High-frequency texture fades out as the base saturates so the
	// combined value never leaves [0,1].
	texture := 0.03 * sharp * math.Sin(2*math.Pi*(10+10*sharp)*t*duration)
	return (base + texture*(1-base)) * intensity
}

// jitter is a small xorshift generator used only for the rumble families.
// Seeding from the cue id keeps re-synthesis of the same cue identical
// while letting distinct cues shimmer differently.
type jitter struct {
	state uint64
}

func newJitter(seed uint64) *jitter {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &jitter{state: seed}
}

// next returns a uniform value in [-1, 1).
func (j *jitter) next() float64 {
	j.state ^= j.state << 13
	j.state ^= j.state >> 7
	j.state ^= j.state << 17
	return float64(j.state>>11)/float64(1<<53)*2 - 1
}

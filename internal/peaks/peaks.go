package peaks

// Set holds normalized audio peaks for visual reference behind the haptic
// tracks. Values are in [0,1], one per equally spaced bucket across
// Duration seconds. The timeline only ever reads it.
type Set struct {
	Values   []float64
	Duration float64
}

// Window max-pools the peaks into n columns covering [start, start+span).
// Degenerate inputs yield nil rather than an error.
func (s *Set) Window(start, span float64, n int) []float64 {
	if s == nil || len(s.Values) == 0 || s.Duration <= 0 || span <= 0 || n <= 0 {
		return nil
	}
	out := make([]float64, n)
	perSec := float64(len(s.Values)) / s.Duration
	for i := 0; i < n; i++ {
		t0 := start + span*float64(i)/float64(n)
		t1 := start + span*float64(i+1)/float64(n)
		b0 := int(t0 * perSec)
		b1 := int(t1 * perSec)
		if b1 <= b0 {
			b1 = b0 + 1
		}
		peak := 0.0
		for b := b0; b < b1; b++ {
			if b < 0 || b >= len(s.Values) {
				continue
			}
			if s.Values[b] > peak {
				peak = s.Values[b]
			}
		}
		out[i] = peak
	}
	return out
}

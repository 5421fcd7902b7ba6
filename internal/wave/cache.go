package wave

import "github.com/tactio/hapticue/internal/cue"

type cacheKey struct {
	id       cue.ID
	kind     cue.Kind
	duration float64
	params   cue.Params
	width    int
	height   int
	zoom     float64
}

// Cache memoizes Synthesize keyed on the exact parameter tuple, so a cue
// being dragged (start time changing, everything else stable) re-renders
// for free. Safe for single-threaded render loops only.
type Cache struct {
	entries map[cacheKey][]Point
}

const cacheLimit = 2048

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]Point, 64)}
}

// Get returns the memoized curve for the cue, synthesizing on miss.
func (cc *Cache) Get(c *cue.Cue, widthPx, heightPx int, zoom float64) []Point {
	key := cacheKey{
		id:       c.ID,
		kind:     c.Kind,
		duration: c.Duration,
		params:   c.Params,
		width:    widthPx,
		height:   heightPx,
		zoom:     zoom,
	}
	if pts, ok := cc.entries[key]; ok {
		return pts
	}
	if len(cc.entries) > cacheLimit {
		cc.entries = make(map[cacheKey][]Point, 64)
	}
	pts := Synthesize(c, widthPx, heightPx, zoom)
	cc.entries[key] = pts
	return pts
}

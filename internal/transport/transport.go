package transport

// Clock is the in-process playback surface the timeline talks to. It only
// tracks a time value; decoding and audio output live elsewhere.
type Clock struct {
	duration  float64
	frameRate float64
	time      float64
	playing   bool
}

func NewClock(duration, frameRate float64) *Clock {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Clock{duration: duration, frameRate: frameRate}
}

func (c *Clock) Duration() float64 {
	return c.duration
}

func (c *Clock) Time() float64 {
	return c.time
}

func (c *Clock) Playing() bool {
	return c.playing
}

func (c *Clock) Play()  { c.playing = true }
func (c *Clock) Pause() { c.playing = false }

func (c *Clock) TogglePlay() {
	if c.playing {
		c.Pause()
		return
	}
	if c.time >= c.duration {
		c.time = 0
	}
	c.Play()
}

// Seek clamps into [0, duration].
func (c *Clock) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if t > c.duration {
		t = c.duration
	}
	c.time = t
}

// StepFrame nudges the playhead by one frame in either direction.
func (c *Clock) StepFrame(forward bool) {
	step := 1 / c.frameRate
	if forward {
		c.Seek(c.time + step)
		return
	}
	c.Seek(c.time - step)
}

// Advance moves time forward while playing, pausing at the end.
func (c *Clock) Advance(dt float64) {
	if !c.playing {
		return
	}
	c.time += dt
	if c.time >= c.duration {
		c.time = c.duration
		c.playing = false
	}
}

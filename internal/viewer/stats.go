package viewer

import "time"

// frameCounter counts frames per wall-clock second.
type frameCounter struct {
	start  time.Time
	frames int
	fps    int
}

// tick records a frame at now and reports whether a full second has
// elapsed, in which case fps holds the count for that second.
func (c *frameCounter) tick(now time.Time) bool {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	if now.Sub(c.start) < time.Second {
		return false
	}
	c.fps = c.frames
	c.frames = 0
	c.start = now
	return true
}

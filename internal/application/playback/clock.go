package playback

import "time"

// maxStepsPerUpdate bounds how far a single long frame can fast-forward
const maxStepsPerUpdate = 64

// Clock drives an Animator from a fixed-rate update loop such as ebiten's
// Update. It accumulates frame time and advances whenever the delay
// requested by the previous step has elapsed.
type Clock struct {
	anim  *Animator
	run   uint64
	wait  time.Duration
	armed bool
}

// NewClock creates a clock for the given animator
func NewClock(anim *Animator) *Clock {
	return &Clock{anim: anim}
}

// Update accounts for dt of elapsed time and returns the number of steps
// applied.
func (c *Clock) Update(dt time.Duration) int {
	if !c.anim.Playing() {
		c.armed = false
		return 0
	}
	if !c.armed || c.run != c.anim.Run() {
		// new or superseded run: the first step is due immediately
		c.run = c.anim.Run()
		c.wait = 0
		c.armed = true
	}

	c.wait -= dt
	steps := 0
	for c.wait <= 0 && steps < maxStepsPerUpdate {
		delay, ok := c.anim.Advance(c.run)
		if !ok {
			c.armed = false
			break
		}
		steps++
		c.wait += delay
		if delay <= 0 {
			break
		}
	}
	return steps
}

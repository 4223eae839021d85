package loop

import (
	"time"

	"github.com/tomz197/pong/internal/loop/config"
)

// Clock is a fixed-timestep accumulator. Real elapsed time is banked each
// frame and paid out in whole steps, so the simulation rate does not depend
// on the frame rate.
type Clock struct {
	step time.Duration
	acc  time.Duration
}

// NewClock creates a clock paying out steps of the given length.
func NewClock(step time.Duration) *Clock {
	return &Clock{step: step}
}

// Advance banks elapsed time and returns how many steps to run now.
// At most config.MaxCatchUp is banked, so a stalled frame does not cause a
// burst of steps.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.step <= 0 || elapsed <= 0 {
		return 0
	}
	c.acc = min(c.acc+elapsed, config.MaxCatchUp)
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	return n
}

// Banked returns the time not yet paid out as a step.
func (c *Clock) Banked() time.Duration {
	return c.acc
}

package component

import "time"

// FrameClock is a repeating timer that fires when its accumulated time
// reaches Period. A fire wraps Elapsed back below Period, so a tick that
// overshoots by several periods still fires only once.
type FrameClock struct {
	Period  time.Duration
	Elapsed time.Duration
}

func NewFrameClock(period time.Duration) FrameClock {
	if period < 0 {
		period = 0
	}
	return FrameClock{Period: period}
}

// Advance adds delta and reports whether the clock fired.
func (c *FrameClock) Advance(delta time.Duration) bool {
	if delta > 0 {
		c.Elapsed += delta
	}
	if c.Elapsed < c.Period {
		return false
	}
	if c.Period > 0 {
		c.Elapsed %= c.Period
	} else {
		c.Elapsed = 0
	}
	return true
}

// ResetToPeriod primes the clock so the next Advance fires regardless of
// its delta.
func (c *FrameClock) ResetToPeriod() {
	c.Elapsed = c.Period
}

var FrameClockComponent = NewComponent[FrameClock]()

package sim

import (
	"errors"
	"math"
)

// ErrLoopPeriod means the loop period is not a positive number.
var ErrLoopPeriod = errors.New("loop period must be positive")

// Timeloop is the wrapping loop clock. CurrentTime stays in [0, MaxTime]
// and Generation counts completed loops.
type Timeloop struct {
	CurrentTime float64
	MaxTime     float64
	Generation  int
}

// NewTimeloop starts a clock at zero.
func NewTimeloop(maxTime float64) (Timeloop, error) {
	if !(maxTime > 0) || math.IsInf(maxTime, 0) {
		return Timeloop{}, ErrLoopPeriod
	}
	return Timeloop{MaxTime: maxTime}, nil
}

// Advance moves the clock forward by dt and reports whether it wrapped.
//
// A tick wraps at most once: if dt spans several periods the extra loops are
// folded into the modulo and only one generation is counted. The caller
// spawns exactly one ghost per true return.
func (c *Timeloop) Advance(dt float64) bool {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return false
	}
	c.CurrentTime += dt
	if c.CurrentTime <= c.MaxTime {
		return false
	}
	c.CurrentTime = math.Mod(c.CurrentTime, c.MaxTime)
	c.Generation++
	return true
}

// Stamp is the absolute session time: completed loops plus the time into
// the current one. Ghost samples are keyed on this axis.
func (c Timeloop) Stamp() float64 {
	return float64(c.Generation)*c.MaxTime + c.CurrentTime
}

// Fraction is how far through the current loop the clock is, in [0,1].
func (c Timeloop) Fraction() float64 {
	return c.CurrentTime / c.MaxTime
}

// Remaining is the time left before the next wrap.
func (c Timeloop) Remaining() float64 {
	return c.MaxTime - c.CurrentTime
}

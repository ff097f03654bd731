package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clock produces the delta time of each frame. A fixed clock always reports
// the same step; a measured clock reports the wall time since the previous
// tick. Both are capped at maxDelta.
type Clock struct {
	fixed    float64
	measured bool
	maxDelta float64

	now  func() time.Time
	last time.Time

	dt     float64
	frames uint64
}

// NewFixedClock steps dt every frame. A non-positive dt uses 1/TPS.
func NewFixedClock(dt, maxDelta float64) *Clock {
	if dt <= 0 {
		dt = 1.0 / float64(ebiten.TPS())
	}
	return &Clock{fixed: dt, maxDelta: maxDelta, now: time.Now}
}

func NewMeasuredClock(maxDelta float64) *Clock {
	return &Clock{measured: true, maxDelta: maxDelta, now: time.Now}
}

// Tick advances to the next frame and returns its delta.
func (c *Clock) Tick() float64 {
	c.frames++

	dt := c.fixed
	if c.measured {
		now := c.now()
		if c.last.IsZero() {
			dt = 0
		} else {
			dt = now.Sub(c.last).Seconds()
		}
		c.last = now
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	if dt < 0 {
		dt = 0
	}
	c.dt = dt
	return dt
}

func (c *Clock) DeltaTime() float64 { return c.dt }
func (c *Clock) Frames() uint64 { return c.frames }

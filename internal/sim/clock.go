package sim

import "time"

// Clock tracks simulated time and the wall-clock timestamp of the last
// frame.
type Clock struct {
	Elapsed   float64 // seconds
	Running   bool
	LastFrame time.Time
}

// frameDelta returns seconds since the previous frame and records now.
// The first frame after a start or resume yields 0.
func (c *Clock) frameDelta(now time.Time) float64 {
	if c.LastFrame.IsZero() {
		c.LastFrame = now
		return 0
	}
	dt := now.Sub(c.LastFrame).Seconds()
	c.LastFrame = now
	if dt < 0 {
		return 0
	}
	return dt
}

func (c *Clock) reset() {
	*c = Clock{}
}

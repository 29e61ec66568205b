package physics

// Clock turns absolute timestamps into Time values. The first tick measures
// from zero.
type Clock struct {
	current Time
}

// Tick advances the clock to now and returns the Time to insert for this tick.
func (c *Clock) Tick(now float64) Time {
	c.current = Time{
		ElapsedSeconds: now - c.current.OverallTime,
		OverallTime:    now,
	}
	return c.current
}

func (c *Clock) Now() float64 {
	return c.current.OverallTime
}

func (c *Clock) Current() Time {
	return c.current
}

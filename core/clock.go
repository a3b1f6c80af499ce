package core

import "time"

// Clock reports time since boot
type Clock struct {
	boot time.Time
	now  func() time.Time
	last int64 // last value from UptimeMillis
}

// NewClock starts a clock at the current instant
func NewClock() *Clock {
	return NewClockFrom(time.Now)
}

// NewClockFrom starts a clock using now as its time source (for testing)
func NewClockFrom(now func() time.Time) *Clock {
	return &Clock{boot: now(), now: now, last: -1}
}

// Uptime returns the time elapsed since boot
func (c *Clock) Uptime() time.Duration {
	d := c.now().Sub(c.boot)
	if d < 0 {
		return 0
	}
	return d
}

// UptimeMillis returns the uptime in whole milliseconds. Successive calls
// strictly increase: a call within the same millisecond as the previous one
// returns the previous value plus one. Only the session loop calls it.
func (c *Clock) UptimeMillis() int64 {
	ms := c.Uptime().Milliseconds()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}

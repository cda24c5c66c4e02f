package game

import "time"

// ClockSnapshot is the remaining time per side in seconds.
type ClockSnapshot struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

// Clock keeps the remaining time of both sides of a timed room. It is not
// safe for concurrent use; the owning Room serializes access.
type Clock struct {
	remaining map[Color]time.Duration
	lastTick  time.Time
	started   bool
}

func NewClock(base time.Duration, now time.Time) *Clock {
	return &Clock{
		remaining: map[Color]time.Duration{White: base, Black: base},
		lastTick:  now,
	}
}

// Start marks the clock-start event. Only the first start, or a start before
// any move was charged, moves lastTick.
func (c *Clock) Start(now time.Time) {
	if c.started {
		return
	}
	c.started = true
	c.lastTick = now
}

// Elapsed is the time since the last tick, without changing anything.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.lastTick)
}

// Charge subtracts the time since the last tick from color and resets the tick.
// Remaining time may go below zero; expiry is reported, never enforced.
func (c *Clock) Charge(color Color, now time.Time) time.Duration {
	elapsed := c.Elapsed(now)
	c.remaining[color] -= elapsed
	c.lastTick = now
	c.started = true
	return elapsed
}

func (c *Clock) Remaining(color Color) time.Duration {
	return c.remaining[color]
}

// Expired reports whether color has run out of time.
func (c *Clock) Expired(color Color) bool {
	return c.remaining[color] <= 0
}

func (c *Clock) Snapshot() *ClockSnapshot {
	return &ClockSnapshot{
		White: c.remaining[White].Seconds(),
		Black: c.remaining[Black].Seconds(),
	}
}

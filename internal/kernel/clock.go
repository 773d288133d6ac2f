// internal/kernel/clock.go

package kernel

// Clock is the simulated millisecond clock of one engine invocation. Every
// emitted event is stamped with the current time, then time advances by the
// event's duration.
type Clock struct {
	now    int
	events []Event
}

// NewClock starts a clock at the given time with an empty timeline.
func NewClock(start int) *Clock {
	return &Clock{now: start}
}

// Now returns the current simulated time.
func (c *Clock) Now() int { return c.now }

// Emit records an event at the current time and advances by its duration.
func (c *Clock) Emit(duration int, kind EventKind, label string) {
	c.events = append(c.events, Event{
		Time:     c.now,
		Duration: duration,
		Kind:     kind,
		Label:    label,
	})
	c.now += duration
}

// Splice appends a finished sub-run's timeline and moves the clock to its end.
func (c *Clock) Splice(r Result) {
	c.events = append(c.events, r.Timeline...)
	c.now = r.End
}

// Events returns the recorded timeline.
func (c *Clock) Events() []Event { return c.events }

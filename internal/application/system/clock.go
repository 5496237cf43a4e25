package system

// dueEpsilon absorbs float error from summing frame times such as 1000/60.
const dueEpsilon = 1e-6 // ms

// TimerEvent is a scheduled callback on a Clock. Its calls are due at
// start + n*delay on the clock's time, so events sharing a start and
// period stay in step.
type TimerEvent struct {
	start     float64 // ms, clock time when added
	delay     float64 // ms
	fired     int
	remaining int // repeats left, -1 forever
	callback  func()
	removed   bool
}

// Remove cancels the event. Pending calls are dropped.
func (e *TimerEvent) Remove() {
	e.removed = true
}

// Done reports whether the event will not fire again.
func (e *TimerEvent) Done() bool {
	return e.removed
}

// Clock is the scene clock. Time advances only through Update.
type Clock struct {
	now    float64 // ms
	events []*TimerEvent
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed scene time in ms.
func (c *Clock) Now() float64 {
	return c.now
}

// AddEvent calls cb every delayMs, repeat+1 times in total.
// A repeat of -1 keeps firing until the event is removed.
func (c *Clock) AddEvent(delayMs float64, repeat int, cb func()) *TimerEvent {
	e := &TimerEvent{start: c.now, delay: delayMs, remaining: repeat, callback: cb}
	c.events = append(c.events, e)
	return e
}

// DelayedCall calls cb once after delayMs.
func (c *Clock) DelayedCall(delayMs float64, cb func()) *TimerEvent {
	return c.AddEvent(delayMs, 0, cb)
}

// Update advances the clock by dtMs and fires due events in the order they
// were added. Events added by a callback start counting on the next update.
func (c *Clock) Update(dtMs float64) {
	c.now += dtMs

	due := c.events
	for _, e := range due {
		if e.removed {
			continue
		}
		for !e.removed && c.now+dueEpsilon >= e.due() {
			e.fired++
			e.callback()

			if e.remaining == 0 {
				e.removed = true
				break
			}
			if e.remaining > 0 {
				e.remaining--
			}
			if e.delay <= 0 {
				break // at most one call per update
			}
		}
	}

	kept := c.events[:0]
	for _, e := range c.events {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(c.events); i++ {
		c.events[i] = nil
	}
	c.events = kept
}

func (e *TimerEvent) due() float64 {
	return e.start + float64(e.fired+1)*e.delay
}

// Pending returns the number of events still scheduled.
func (c *Clock) Pending() int {
	n := 0
	for _, e := range c.events {
		if !e.removed {
			n++
		}
	}
	return n
}

// Reset drops every event and rewinds to zero.
func (c *Clock) Reset() {
	for _, e := range c.events {
		e.removed = true
	}
	c.events = nil
	c.now = 0
}

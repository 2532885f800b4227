package game

import "time"

// Scheduler arms one-shot and repeating callbacks on a shared timeline.
// Callbacks run one at a time, never concurrently.
type Scheduler interface {
	Now() time.Duration
	After(d time.Duration, fn func()) *Timer
	Every(period time.Duration, fn func()) *Timer
}

// Timer is a handle to a scheduled callback. Stopping it is the only way to
// cancel it; a stopped timer never fires again.
type Timer struct {
	id      int
	due     time.Duration
	period  time.Duration // 0 for one-shot timers
	fn      func()
	stopped bool
	fired   int
}

// Stop cancels the timer. It reports whether the timer was still active.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Fired returns how many times the callback has run.
func (t *Timer) Fired() int {
	if t == nil {
		return 0
	}
	return t.fired
}

// Period returns the repeat interval, or 0 for a one-shot timer.
func (t *Timer) Period() time.Duration {
	if t == nil {
		return 0
	}
	return t.period
}

// Clock is a virtual-time Scheduler driven by the caller. The viewer advances
// it once per frame and tests advance it directly, so every callback runs on
// the caller's goroutine inside Advance.
type Clock struct {
	now    time.Duration
	nextID int
	timers []*Timer
}

// NewClock returns a clock at time zero with nothing scheduled.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After runs fn once, d from now. A non-positive d fires on the next Advance.
func (c *Clock) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return c.add(d, 0, fn)
}

// Every runs fn repeatedly with the given period, first after one period.
func (c *Clock) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		period = time.Millisecond
	}
	return c.add(period, period, fn)
}

func (c *Clock) add(delay, period time.Duration, fn func()) *Timer {
	c.nextID++
	t := &Timer{
		id:     c.nextID,
		due:    c.now + delay,
		period: period,
		fn:     fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Pending returns the number of timers that can still fire.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every due callback in due order.
// Equal due times fire in the order the timers were armed.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	end := c.now + d
	for {
		t := c.nextDue(end)
		if t == nil {
			break
		}
		c.now = t.due
		t.fired++
		if t.period > 0 {
			t.due += t.period
		} else {
			t.stopped = true
		}
		t.fn()
		c.compact()
	}
	c.now = end
}

func (c *Clock) nextDue(end time.Duration) *Timer {
	var best *Timer
	for _, t := range c.timers {
		if t.stopped || t.due > end {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// compact drops stopped timers so long sessions don't accumulate handles.
func (c *Clock) compact() {
	kept := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = kept
}

package game

import (
	"strings"
	"testing"
	"time"
)

func TestClockFiresInDueOrder(t *testing.T) {
	c := NewClock()
	var order []string
	c.After(3*time.Second, func() { order = append(order, "c") })
	c.After(1*time.Second, func() { order = append(order, "a") })
	c.After(2*time.Second, func() { order = append(order, "b") })
	c.After(2*time.Second, func() { order = append(order, "b2") })

	c.Advance(5 * time.Second)
	want := "a,b,b2,c"
	if got := strings.Join(order, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if c.Now() != 5*time.Second {
		t.Fatalf("expected clock at 5s, got %s", c.Now())
	}
	if c.Pending() != 0 {
		t.Fatalf("one-shot timers should be gone, %d pending", c.Pending())
	}
}

func TestClockNowDuringCallback(t *testing.T) {
	c := NewClock()
	var at time.Duration
	c.After(1500*time.Millisecond, func() { at = c.Now() })
	c.Advance(10 * time.Second)
	if at != 1500*time.Millisecond {
		t.Fatalf("callback should see its due time, saw %s", at)
	}
}

func TestClockEveryRepeatsUntilStopped(t *testing.T) {
	c := NewClock()
	var tm *Timer
	tm = c.Every(time.Second, func() {
		if tm.Fired() == 3 {
			tm.Stop()
		}
	})
	c.Advance(10 * time.Second)
	if tm.Fired() != 3 {
		t.Fatalf("expected 3 fires, got %d", tm.Fired())
	}
	if tm.Active() {
		t.Fatal("timer should be stopped")
	}
	if tm.Period() != time.Second {
		t.Fatalf("expected period 1s, got %s", tm.Period())
	}
}

func TestClockStoppedTimerNeverFires(t *testing.T) {
	c := NewClock()
	fired := false
	tm := c.After(time.Second, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("first Stop should report an active timer")
	}
	if tm.Stop() {
		t.Fatal("second Stop should report false")
	}
	c.Advance(5 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestClockStopFromEarlierCallback(t *testing.T) {
	c := NewClock()
	fired := false
	late := c.After(2*time.Second, func() { fired = true })
	c.After(time.Second, func() { late.Stop() })
	c.Advance(3 * time.Second)
	if fired {
		t.Fatal("timer stopped by an earlier callback still fired")
	}
}

func TestClockTimerArmedInCallbackFiresInSameAdvance(t *testing.T) {
	c := NewClock()
	var at time.Duration
	c.After(time.Second, func() {
		c.After(time.Second, func() { at = c.Now() })
	})
	c.Advance(3 * time.Second)
	if at != 2*time.Second {
		t.Fatalf("nested timer should fire at 2s, fired at %s", at)
	}
}

func TestNilTimerIsSafe(t *testing.T) {
	var tm *Timer
	if tm.Stop() || tm.Active() || tm.Fired() != 0 || tm.Period() != 0 {
		t.Fatal("nil timer accessors should be zero")
	}
}

package core

import (
	"testing"
	"time"
)

func TestManualClockFiresInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	var fired []string
	c.AfterFunc(3*time.Second, func() { fired = append(fired, "late") })
	c.AfterFunc(1*time.Second, func() { fired = append(fired, "early") })

	c.Advance(500 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("nothing should fire before its deadline, got %v", fired)
	}

	c.Advance(5 * time.Second)
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fired = %v, expected [early late]", fired)
	}
	if !c.Now().Equal(start.Add(5500 * time.Millisecond)) {
		t.Errorf("Now() = %v", c.Now())
	}
}

func TestManualClockStop(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))

	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })
	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, expected 1", c.Pending())
	}

	if !timer.Stop() {
		t.Error("first Stop should report the timer was pending")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}

	c.Advance(2 * time.Second)
	if called {
		t.Error("stopped timer must not fire")
	}
}

func TestManualClockCallbackMayReschedule(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))

	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			c.AfterFunc(time.Second, tick)
		}
	}
	c.AfterFunc(time.Second, tick)

	for i := 0; i < 5; i++ {
		c.Advance(time.Second)
	}
	if count != 3 {
		t.Errorf("count = %d, expected 3", count)
	}
}

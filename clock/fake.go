package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time moves only when Advance
// is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock. AfterFunc callbacks run synchronously
// inside Advance, in deadline order, with Now() reporting the callback's own
// deadline. Callbacks may schedule further timers; those fire in the same
// Advance call when their deadline falls inside the advanced window.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
	seq     uint64
}

type fakeWaiter struct {
	deadline time.Time
	seq      uint64 // FIFO among equal deadlines
	callback func()
	channel  chan time.Time
	interval time.Duration
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock passes d. If d <= 0, f runs
// before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.addLocked(d, 0)
	w.callback = f
	return &Timer{stopFunc: func() bool { return c.stop(w) }}
}

func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	w := c.addLocked(d, d)
	w.channel = ch
	return &Ticker{C: ch, stopFunc: func() { c.stop(w) }}
}

func (c *FakeClock) addLocked(d, interval time.Duration) *fakeWaiter {
	c.seq++
	w := &fakeWaiter{deadline: c.current.Add(d), seq: c.seq, interval: interval}
	c.waiters = append(c.waiters, w)
	return w
}

func (c *FakeClock) stop(w *fakeWaiter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, pending := range c.waiters {
		if pending == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every waiter whose deadline
// falls inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		w := c.nextDueLocked(target)
		if w == nil {
			c.current = target
			c.mu.Unlock()
			return
		}
		c.current = w.deadline
		now := c.current
		if w.interval > 0 {
			c.seq++
			w.deadline = w.deadline.Add(w.interval)
			w.seq = c.seq
		} else {
			c.removeLocked(w)
		}
		c.mu.Unlock()

		if w.callback != nil {
			w.callback()
		} else {
			select {
			case w.channel <- now:
			default:
			}
		}
	}
}

func (c *FakeClock) nextDueLocked(target time.Time) *fakeWaiter {
	var next *fakeWaiter
	for _, w := range c.waiters {
		if w.deadline.After(target) {
			continue
		}
		if next == nil || w.deadline.Before(next.deadline) ||
			(w.deadline.Equal(next.deadline) && w.seq < next.seq) {
			next = w
		}
	}
	return next
}

func (c *FakeClock) removeLocked(w *fakeWaiter) {
	for i, pending := range c.waiters {
		if pending == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// Pending returns the number of registered, unfired waiters.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

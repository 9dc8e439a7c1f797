// Package clock abstracts the time source used by the flasher and the
// beam sweep so their timing can be driven deterministically in tests.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the subset of the time package the lighthouse needs.
type Clock interface {
	Now() time.Time

	// AfterFunc calls f in its own goroutine (Real, FromClockwork) or
	// synchronously from Advance (Fake) once d has elapsed.
	AfterFunc(d time.Duration, f func()) *Timer

	// NewTicker panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It reports whether the call stopped
// the timer; false means it already fired or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Ticker delivers ticks on C. The channel has capacity 1 and ticks are
// dropped when the reader falls behind.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. It does not close C.
func (t *Ticker) Stop() { t.stopFunc() }

// Real returns a Clock backed by the wall clock.
func Real() Clock { return FromClockwork(clockwork.NewRealClock()) }

// FromClockwork adapts a clockwork.Clock, real or fake.
func FromClockwork(c clockwork.Clock) Clock { return clockworkClock{c} }

type clockworkClock struct {
	c clockwork.Clock
}

func (w clockworkClock) Now() time.Time { return w.c.Now() }

func (w clockworkClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := w.c.AfterFunc(d, f)
	return &Timer{stopFunc: t.Stop}
}

func (w clockworkClock) NewTicker(d time.Duration) *Ticker {
	t := w.c.NewTicker(d)
	return &Ticker{C: t.Chan(), stopFunc: t.Stop}
}

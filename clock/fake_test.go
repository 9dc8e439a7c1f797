package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowMovesOnlyOnAdvance(t *testing.T) {
	c := Fake(epoch)
	assert.Equal(t, epoch, c.Now())

	c.Advance(5 * time.Second)
	assert.Equal(t, epoch.Add(5*time.Second), c.Now())
}

func TestFakeAfterFuncFiresAtDeadline(t *testing.T) {
	c := Fake(epoch)
	var firedAt time.Time
	c.AfterFunc(2*time.Second, func() { firedAt = c.Now() })

	c.Advance(time.Second)
	assert.True(t, firedAt.IsZero())

	c.Advance(5 * time.Second)
	assert.Equal(t, epoch.Add(2*time.Second), firedAt)
	assert.Equal(t, epoch.Add(6*time.Second), c.Now())
}

func TestFakeAfterFuncChainsWithinOneAdvance(t *testing.T) {
	c := Fake(epoch)
	var fired []time.Duration

	var step func()
	step = func() {
		fired = append(fired, c.Now().Sub(epoch))
		if len(fired) < 3 {
			c.AfterFunc(100*time.Millisecond, step)
		}
	}
	c.AfterFunc(100*time.Millisecond, step)

	c.Advance(time.Second)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}, fired)
	assert.Zero(t, c.Pending())
}

func TestFakeAfterFuncStop(t *testing.T) {
	c := Fake(epoch)
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	assert.False(t, called)
}

func TestFakeAfterFuncZeroDurationRunsInline(t *testing.T) {
	c := Fake(epoch)
	called := false
	c.AfterFunc(0, func() { called = true })
	assert.True(t, called)
	assert.Zero(t, c.Pending())
}

func TestFakeTickerDropsWhenFull(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	c.Advance(35 * time.Millisecond)

	select {
	case at := <-ticker.C:
		assert.Equal(t, epoch.Add(10*time.Millisecond), at)
	default:
		t.Fatal("ticker did not deliver")
	}
	select {
	case <-ticker.C:
		t.Fatal("expected later ticks to be dropped")
	default:
	}
	assert.Equal(t, 1, c.Pending())

	ticker.Stop()
	assert.Zero(t, c.Pending())
}

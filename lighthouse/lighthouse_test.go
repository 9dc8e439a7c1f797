package lighthouse

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"MemoryMorse/clock"
	"MemoryMorse/config"
	"MemoryMorse/memory"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestLighthouse(t *testing.T, opts ...Option) (*Lighthouse, *clock.FakeClock, *config.Config) {
	t.Helper()
	c := clock.Fake(epoch)
	cfg := config.Default()
	cfg.Audio.Enabled = true
	l := New(c, cfg, opts...)
	t.Cleanup(l.Close)
	return l, c, cfg
}

func TestBeamColorBySentiment(t *testing.T) {
	assert.Equal(t, BeamPositive, BeamColor(memory.Positive))
	assert.Equal(t, BeamNegative, BeamColor(memory.Negative))
	assert.Equal(t, BeamNeutral, BeamColor(memory.Neutral))
	assert.Equal(t, BeamNeutral, BeamColor("stormy"))
}

func TestStartsOnWelcome(t *testing.T) {
	l, _, _ := newTestLighthouse(t)

	assert.Equal(t, memory.Welcome, l.Current())
	assert.Equal(t, BeamNeutral, l.BeamColor())
	assert.False(t, l.Flashing())
	assert.False(t, l.BeamOn())
	assert.Equal(t, 11, l.Snapshot().Length)
}

func TestToneFollowsBeam(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := NewMockTonePlayer(ctrl)
	gomock.InOrder(
		tone.EXPECT().SetTone(true),
		tone.EXPECT().SetTone(false),
		tone.EXPECT().SetTone(true),
	)
	tone.EXPECT().SetTone(false).AnyTimes()

	l, c, _ := newTestLighthouse(t, WithTone(tone))
	l.SetFlashing(true)
	assert.True(t, l.BeamOn())

	c.Advance(200 * time.Millisecond)
	assert.False(t, l.BeamOn())

	c.Advance(200 * time.Millisecond)
	assert.True(t, l.BeamOn())
}

func TestMutedToneStaysSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := NewMockTonePlayer(ctrl)
	tone.EXPECT().SetTone(false).AnyTimes()

	l, c, _ := newTestLighthouse(t, WithTone(tone))
	l.SetAudio(false)
	l.SetFlashing(true)
	c.Advance(time.Second)
}

func TestFlashCompleteAndShow(t *testing.T) {
	l, c, _ := newTestLighthouse(t)

	var completions atomic.Int32
	var beams atomic.Int32
	l.OnFlashComplete(func() { completions.Add(1) })
	l.OnBeam(func(on bool) {
		if on {
			beams.Add(1)
		}
	})

	l.SetFlashing(true)
	c.Advance(6 * time.Second)
	assert.Equal(t, int32(1), completions.Load())
	assert.Equal(t, int32(10), beams.Load(), "nine SOS flashes plus the first of the next pass")

	m := memory.New("e", memory.Negative, epoch)
	l.Show(m)
	assert.Equal(t, m, l.Current())
	assert.Equal(t, BeamNegative, l.BeamColor())
	assert.Equal(t, 1, l.Snapshot().Index, "the new memory starts immediately")

	c.Advance(400 * time.Millisecond)
	assert.Equal(t, int32(2), completions.Load())
}

func TestSetFlashingFalseDarkens(t *testing.T) {
	l, c, _ := newTestLighthouse(t)

	l.SetFlashing(true)
	assert.True(t, l.BeamOn())
	l.SetFlashing(false)
	assert.False(t, l.BeamOn())

	c.Advance(10 * time.Second)
	assert.False(t, l.BeamOn())
	assert.Equal(t, 1, l.Snapshot().Index)
}

func TestCloseIsFinal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := NewMockTonePlayer(ctrl)
	tone.EXPECT().SetTone(gomock.Any()).AnyTimes()

	l, c, _ := newTestLighthouse(t, WithTone(tone))
	l.SetFlashing(true)
	l.Close()
	l.Close()

	assert.False(t, l.BeamOn())
	l.SetFlashing(true)
	l.Show(memory.New("t", memory.Positive, epoch))
	c.Advance(time.Second)
	assert.False(t, l.BeamOn())
	assert.Equal(t, memory.Welcome, l.Current())
}

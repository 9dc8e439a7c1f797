// Package lighthouse hosts a Morse flasher together with the beam sweep and
// the optional tone, and tears all of them down as a unit.
package lighthouse

import (
	"context"
	"image/color"
	"log/slog"
	"sync"

	"MemoryMorse/clock"
	"MemoryMorse/config"
	"MemoryMorse/flasher"
	"MemoryMorse/memory"
)

//go:generate mockgen -destination mock_lighthouse_test.go -package lighthouse MemoryMorse/lighthouse TonePlayer

// TonePlayer sounds while the beam is lit.
type TonePlayer interface {
	SetTone(on bool)
}

// Beam tints by sentiment.
var (
	BeamPositive = color.NRGBA{R: 255, G: 255, B: 200, A: 204}
	BeamNegative = color.NRGBA{R: 255, G: 200, B: 200, A: 204}
	BeamNeutral  = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
)

// BeamColor returns the tint for s.
func BeamColor(s memory.Sentiment) color.NRGBA {
	switch s {
	case memory.Positive:
		return BeamPositive
	case memory.Negative:
		return BeamNegative
	}
	return BeamNeutral
}

// Lighthouse owns one flasher and one sweep.
type Lighthouse struct {
	flasher *flasher.Flasher
	sweep   *Sweep
	logger  *slog.Logger

	mu         sync.Mutex
	current    memory.Memory
	flashing   bool
	audio      bool
	tone       TonePlayer
	onBeam     func(on bool)
	onComplete func()
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
}

// Option configures a Lighthouse.
type Option func(*Lighthouse)

// WithTone routes the beam to p while audio is enabled.
func WithTone(p TonePlayer) Option {
	return func(l *Lighthouse) {
		l.tone = p
	}
}

// WithLogger sets the logger shared with the flasher.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lighthouse) {
		l.logger = logger
	}
}

// New builds a lighthouse showing memory.Welcome. The sweep starts turning
// immediately; flashing starts with SetFlashing(true).
func New(c clock.Clock, cfg *config.Config, opts ...Option) *Lighthouse {
	l := &Lighthouse{logger: slog.Default(), done: make(chan struct{})}
	for _, opt := range opts {
		opt(l)
	}

	l.flasher = flasher.New(
		flasher.WithClock(c),
		flasher.WithTiming(cfg.Timing),
		flasher.WithLogger(l.logger),
	)
	l.flasher.Subscribe(l.handle)
	l.sweep = NewSweep(c, cfg.Sweep.StepDegrees, cfg.Sweep.Frame)
	l.audio = cfg.Audio.Enabled

	var ctx context.Context
	ctx, l.cancel = context.WithCancel(context.Background())
	go func() {
		defer close(l.done)
		l.sweep.Run(ctx)
	}()

	l.Show(memory.Welcome)
	return l
}

func (l *Lighthouse) handle(ev flasher.Event) {
	l.mu.Lock()
	onBeam, onComplete := l.onBeam, l.onComplete
	tone := l.tone
	audio := l.audio
	l.mu.Unlock()

	switch ev.Kind {
	case flasher.EventBeam:
		if tone != nil && audio {
			tone.SetTone(ev.BeamOn)
		}
		if onBeam != nil {
			onBeam(ev.BeamOn)
		}
	case flasher.EventCycleComplete:
		if onComplete != nil {
			onComplete()
		}
	}
}

// Show puts m on the lighthouse, restarting the flash sequence from its
// first symbol.
func (l *Lighthouse) Show(m memory.Memory) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.current = m
	l.mu.Unlock()

	l.logger.Debug("lighthouse showing memory", "id", m.ID, "sentiment", m.Sentiment)
	l.flasher.Configure(m.Morse)
}

// Current returns the memory being flashed.
func (l *Lighthouse) Current() memory.Memory {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// SetFlashing starts or stops the Morse sequence.
func (l *Lighthouse) SetFlashing(on bool) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.flashing = on
	l.mu.Unlock()

	if on {
		l.flasher.Start()
	} else {
		l.flasher.Stop()
	}
}

// Flashing reports the host's flashing flag.
func (l *Lighthouse) Flashing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flashing
}

// SetAudio enables or mutes the tone. Muting while lit silences it at once.
func (l *Lighthouse) SetAudio(on bool) {
	l.mu.Lock()
	l.audio = on
	tone := l.tone
	l.mu.Unlock()

	if tone != nil {
		tone.SetTone(on && l.flasher.BeamOn())
	}
}

// OnBeam sets the beam state callback used by the renderer.
func (l *Lighthouse) OnBeam(fn func(on bool)) {
	l.mu.Lock()
	l.onBeam = fn
	l.mu.Unlock()
}

// OnFlashComplete sets the callback fired after every full pass.
func (l *Lighthouse) OnFlashComplete(fn func()) {
	l.mu.Lock()
	l.onComplete = fn
	l.mu.Unlock()
}

// OnFrame sets the sweep callback used by the renderer.
func (l *Lighthouse) OnFrame(fn func(angle float64)) {
	l.sweep.OnFrame(fn)
}

// BeamOn reports whether the beam is lit.
func (l *Lighthouse) BeamOn() bool { return l.flasher.BeamOn() }

// Angle returns the sweep angle in degrees.
func (l *Lighthouse) Angle() float64 { return l.sweep.Angle() }

// BeamColor returns the tint of the current memory.
func (l *Lighthouse) BeamColor() color.NRGBA {
	return BeamColor(l.Current().Sentiment)
}

// Snapshot exposes the flasher state for the debug overlay.
func (l *Lighthouse) Snapshot() flasher.Snapshot { return l.flasher.Snapshot() }

// Close stops the flasher and the sweep and silences the tone. It returns
// once the sweep goroutine has exited.
func (l *Lighthouse) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.flashing = false
	tone := l.tone
	l.mu.Unlock()

	l.flasher.Close()
	l.cancel()
	<-l.done
	if tone != nil {
		tone.SetTone(false)
	}
	l.logger.Debug("lighthouse closed")
}

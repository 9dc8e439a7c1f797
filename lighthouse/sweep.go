package lighthouse

import (
	"context"
	"math"
	"sync"
	"time"

	"MemoryMorse/clock"
)

// Sweep is the beam's rotation. It turns by a fixed step on every animation
// frame whether the beam is lit or not.
type Sweep struct {
	clock clock.Clock
	step  float64
	frame time.Duration

	mu      sync.Mutex
	angle   float64
	onFrame func(angle float64)
}

// NewSweep returns a sweep at 0 degrees.
func NewSweep(c clock.Clock, step float64, frame time.Duration) *Sweep {
	return &Sweep{clock: c, step: step, frame: frame}
}

// Angle returns the current rotation in degrees, in [0, 360).
func (s *Sweep) Angle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angle
}

// Advance turns the beam by one step and returns the new angle.
func (s *Sweep) Advance() float64 {
	s.mu.Lock()
	s.angle = math.Mod(s.angle+s.step, 360)
	if s.angle < 0 {
		s.angle += 360
	}
	angle := s.angle
	fn := s.onFrame
	s.mu.Unlock()

	if fn != nil {
		fn(angle)
	}
	return angle
}

// OnFrame sets the callback invoked after every step.
func (s *Sweep) OnFrame(fn func(angle float64)) {
	s.mu.Lock()
	s.onFrame = fn
	s.mu.Unlock()
}

// Run advances the sweep once per frame until ctx is done.
func (s *Sweep) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance()
		}
	}
}

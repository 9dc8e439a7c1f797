// Package flasher turns a Morse string into a looping sequence of timed
// beam on/off events.
//
// A Flasher owns exactly one timer chain. Every scheduled callback carries
// the generation it was scheduled for; Stop, Configure and Close bump the
// generation and stop the pending timer, so a callback that lost the race
// with cancellation does nothing.
//
// Events are queued under the flasher's lock in the order the state changed
// and delivered by one goroutine at a time: whichever caller finds the queue
// idle drains it, including events queued meanwhile by other goroutines.
// Listeners run without the lock held, so a listener may call back into the
// flasher; events it causes are delivered after the current one.
package flasher

import (
	"log/slog"
	"sync"
	"time"

	"MemoryMorse/clock"
	"MemoryMorse/morse"
)

// EventKind distinguishes beam changes from cycle completions.
type EventKind int

const (
	EventBeam EventKind = iota
	EventCycleComplete
)

// Event is delivered to listeners.
type Event struct {
	Kind   EventKind
	BeamOn bool // valid for EventBeam
	Cycle  int  // completed passes so far, valid for EventCycleComplete
}

// Listener receives flasher events.
type Listener func(Event)

// Flasher is the Morse sequencer. The zero value is not usable; call New.
type Flasher struct {
	clock  clock.Clock
	timing morse.Timing
	logger *slog.Logger

	mu        sync.Mutex
	seq       morse.Sequence
	index     int
	beamOn    bool
	running   bool
	closed    bool
	cycles    int
	gen       uint64
	pending   *clock.Timer
	listeners map[int]Listener
	nextID    int
	queue     []Event
	draining  bool
}

// Option configures a Flasher.
type Option func(*Flasher)

// WithClock sets the time source. Defaults to clock.Real().
func WithClock(c clock.Clock) Option {
	return func(f *Flasher) {
		f.clock = c
	}
}

// WithTiming overrides the symbol durations. Invalid timings are ignored.
func WithTiming(t morse.Timing) Option {
	return func(f *Flasher) {
		if t.Valid() {
			f.timing = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flasher) {
		f.logger = logger
	}
}

// New creates a stopped flasher with an empty sequence.
func New(opts ...Option) *Flasher {
	f := &Flasher{
		clock:     clock.Real(),
		timing:    morse.DefaultTiming,
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscribe registers l and returns a function that removes it.
func (f *Flasher) Subscribe(l Listener) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = l
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// Configure replaces the sequence and rewinds to its first symbol. A running
// flasher keeps running and starts the new sequence immediately; an empty
// one waits a word gap before its first completion so that swapping between
// empty sequences cannot complete without time passing.
func (f *Flasher) Configure(code string) {
	f.mu.Lock()
	f.seq = morse.Parse(code)
	f.index = 0
	f.cancelLocked()
	f.setBeamLocked(false)
	restart := f.running
	gen := f.gen
	if restart && len(f.seq) == 0 {
		f.scheduleLocked(f.timing.WordGap, func() { f.step(gen) })
		restart = false
	}
	f.logger.Debug("flasher configured", "symbols", len(f.seq), "running", f.running)
	f.mu.Unlock()

	f.emit()
	if restart {
		f.step(gen)
	}
}

// Start begins playback from the current position. Calling Start on a
// running or closed flasher does nothing.
func (f *Flasher) Start() {
	f.mu.Lock()
	if f.running || f.closed {
		f.mu.Unlock()
		return
	}
	f.running = true
	f.cancelLocked()
	gen := f.gen
	f.logger.Debug("flasher started", "index", f.index)
	f.mu.Unlock()

	f.step(gen)
}

// Stop cancels the pending timer and darkens the beam. The position is kept
// so a later Start resumes where playback left off.
func (f *Flasher) Stop() {
	f.mu.Lock()
	f.running = false
	f.cancelLocked()
	f.setBeamLocked(false)
	f.logger.Debug("flasher stopped", "index", f.index)
	f.mu.Unlock()

	f.emit()
}

// Close stops the flasher for good and drops every listener.
func (f *Flasher) Close() {
	f.Stop()

	f.mu.Lock()
	f.closed = true
	f.listeners = make(map[int]Listener)
	f.mu.Unlock()
}

// BeamOn reports whether the beam is currently lit.
func (f *Flasher) BeamOn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.beamOn
}

// Snapshot is a consistent view of the flasher state.
type Snapshot struct {
	Index   int
	Length  int
	BeamOn  bool
	Running bool
	Cycles  int
	Code    string
	Period  time.Duration // length of one full pass
}

// Snapshot returns the current state under the lock.
func (f *Flasher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Index:   f.index,
		Length:  len(f.seq),
		BeamOn:  f.beamOn,
		Running: f.running,
		Cycles:  f.cycles,
		Code:    f.seq.String(),
		Period:  f.timing.Cycle(f.seq),
	}
}

// step emits the symbol at the current index, wrapping first if the end of
// the sequence was reached.
func (f *Flasher) step(gen uint64) {
	f.mu.Lock()
	if !f.current(gen) {
		f.mu.Unlock()
		return
	}

	if f.index >= len(f.seq) {
		f.index = 0
		f.cycles++
		f.queue = append(f.queue, Event{Kind: EventCycleComplete, Cycle: f.cycles})
		f.logger.Debug("flasher cycle complete", "cycle", f.cycles)

		if len(f.seq) == 0 {
			// Nothing to flash; wait a word gap before wrapping again.
			f.scheduleLocked(f.timing.WordGap, func() { f.step(gen) })
			f.mu.Unlock()
			f.emit()
			return
		}
	}

	sym := f.seq[f.index]
	f.index++
	on, off := f.timing.Durations(sym)
	if on > 0 {
		f.setBeamLocked(true)
		f.scheduleLocked(on, func() { f.darken(gen, off) })
	} else {
		f.scheduleLocked(off, func() { f.step(gen) })
	}
	f.mu.Unlock()

	f.emit()
}

// darken ends the lit part of a symbol and schedules the next step.
func (f *Flasher) darken(gen uint64, off time.Duration) {
	f.mu.Lock()
	if !f.current(gen) {
		f.mu.Unlock()
		return
	}
	f.setBeamLocked(false)
	f.scheduleLocked(off, func() { f.step(gen) })
	f.mu.Unlock()

	f.emit()
}

func (f *Flasher) current(gen uint64) bool {
	return f.running && gen == f.gen
}

func (f *Flasher) scheduleLocked(d time.Duration, fn func()) {
	f.pending = f.clock.AfterFunc(d, fn)
}

// cancelLocked invalidates every callback scheduled so far.
func (f *Flasher) cancelLocked() {
	f.gen++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

func (f *Flasher) setBeamLocked(on bool) {
	if f.beamOn == on {
		return
	}
	f.beamOn = on
	f.queue = append(f.queue, Event{Kind: EventBeam, BeamOn: on})
}

// emit delivers queued events unless another goroutine is already doing so.
func (f *Flasher) emit() {
	f.mu.Lock()
	if f.draining {
		f.mu.Unlock()
		return
	}
	f.draining = true
	defer func() {
		f.draining = false
		f.mu.Unlock()
	}()

	for len(f.queue) > 0 {
		ev := f.queue[0]
		f.queue = f.queue[1:]
		listeners := make([]Listener, 0, len(f.listeners))
		for id := 0; id < f.nextID; id++ {
			if l, ok := f.listeners[id]; ok {
				listeners = append(listeners, l)
			}
		}
		f.mu.Unlock()

		for _, l := range listeners {
			l(ev)
		}
		f.mu.Lock()
	}
}

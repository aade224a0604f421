// Package stopwatch measures elapsed time for observed production windows and
// downtime stoppages.
//
// Elapsed time is the sum of completed run segments plus the delta since the
// current segment started, read from a monotonic clock. Nothing accumulates
// per tick, so a slow or irregular render loop cannot drift the reading.
package stopwatch

import (
	"sync"
	"time"
)

// Clock returns monotonic time. time.Now carries a monotonic reading, which
// Sub uses.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Kind distinguishes the main stopwatch from the downtime one.
type Kind int

const (
	Main Kind = iota
	Downtime
)

func (k Kind) String() string {
	if k == Downtime {
		return "downtime"
	}
	return "main"
}

// Stopwatch is safe for concurrent use.
type Stopwatch struct {
	mu sync.Mutex

	kind    Kind
	clock   Clock
	running bool
	started time.Time
	banked  time.Duration
	laps    []time.Duration
}

// New returns a stopped stopwatch on the system clock.
func New(kind Kind) *Stopwatch {
	return NewWithClock(kind, systemClock{})
}

// NewWithClock is New with an injected clock.
func NewWithClock(kind Kind, c Clock) *Stopwatch {
	return &Stopwatch{kind: kind, clock: c}
}

func (s *Stopwatch) Kind() Kind { return s.kind }

// Start resumes from the current elapsed time. No-op while running.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked()
}

// Pause freezes elapsed time. No-op while stopped.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseLocked()
}

// Toggle starts a stopped stopwatch or pauses a running one, and returns the
// new running state.
func (s *Stopwatch) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.pauseLocked()
	} else {
		s.startLocked()
	}
	return s.running
}

// Reset stops the stopwatch and clears elapsed time and laps.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.banked = 0
	s.started = time.Time{}
	s.laps = nil
}

// Lap records the current elapsed time and returns the lap number.
func (s *Stopwatch) Lap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.laps = append(s.laps, s.elapsedLocked())
	return len(s.laps)
}

// Laps returns a copy of the recorded lap times.
func (s *Stopwatch) Laps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.laps))
	copy(out, s.laps)
	return out
}

func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Stopwatch) startLocked() {
	if s.running {
		return
	}
	s.started = s.clock.Now()
	s.running = true
}

func (s *Stopwatch) pauseLocked() {
	if !s.running {
		return
	}
	s.banked += s.clock.Now().Sub(s.started)
	s.running = false
}

func (s *Stopwatch) elapsedLocked() time.Duration {
	if !s.running {
		return s.banked
	}
	return s.banked + s.clock.Now().Sub(s.started)
}

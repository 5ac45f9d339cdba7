package facetrack

import (
	"math"
	"sync"
	"time"
)

// Sim is a camera-free Source for development and tests. It simulates a
// visitor who drifts slowly across the field of view in bursts: present for
// PresentFor, then away for AwayFor, repeating.
type Sim struct {
	// PresentFor and AwayFor shape the visit cycle.
	PresentFor time.Duration
	AwayFor    time.Duration

	// Sweep is the horizontal oscillation period.
	Sweep time.Duration

	mu      sync.Mutex
	started time.Time

	// Forced overrides the cycle when set (tests).
	forced    bool
	forcedPos Position
	forcedOK  bool
}

// NewSim returns a simulated visitor with a 10s-on / 5s-off cycle.
func NewSim() *Sim {
	return &Sim{
		PresentFor: 10 * time.Second,
		AwayFor:    5 * time.Second,
		Sweep:      8 * time.Second,
	}
}

// Detect reports the simulated visitor's position.
func (s *Sim) Detect() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forced {
		return s.forcedPos, s.forcedOK
	}

	if s.started.IsZero() {
		s.started = time.Now()
	}
	elapsed := time.Since(s.started)

	cycle := s.PresentFor + s.AwayFor
	if cycle > 0 && elapsed%cycle >= s.PresentFor {
		return Position{}, false
	}

	t := elapsed.Seconds() / s.Sweep.Seconds()
	return Position{
		X: math.Sin(2 * math.Pi * t),
		Y: 0.3 * math.Sin(2*math.Pi*t/3),
	}, true
}

// Force pins the simulated detection to a fixed result until Release.
func (s *Sim) Force(pos Position, present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = true
	s.forcedPos = pos
	s.forcedOK = present
}

// Release returns the simulator to its automatic cycle.
func (s *Sim) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = false
}

// Close implements Source.
func (s *Sim) Close() error {
	return nil
}

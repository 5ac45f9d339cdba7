package eyes

import (
	"math/rand"
	"time"
)

// Controller owns all eyes and the shared blink schedule, and arbitrates
// which behavior drives each eye on each tick. It is tick-driven and
// single-threaded: callers serialize Tick, SetMode, and snapshot reads.
type Controller struct {
	cfg     Config
	rng     *rand.Rand
	eyes    []*Eye
	primary int
	mode    Mode

	// Shared blink schedule: one timestamp drives the synchronized closing
	// transition of every eye.
	nextBlinkAt int64

	lastNow int64
	started bool
}

// NewController creates a controller with one eye per name. The primary eye
// is the one that follows a tracked target in ModeTracking. A nil rng gets
// a time-seeded source; tests inject a seeded one for determinism.
func NewController(cfg Config, names []string, primary string, rng *rand.Rand) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoEyes
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		cfg:     cfg,
		rng:     rng,
		primary: -1,
		mode:    ModeTracking,
	}
	for i, name := range names {
		c.eyes = append(c.eyes, newEye(name, cfg, rng))
		if name == primary {
			c.primary = i
		}
	}
	if c.primary < 0 {
		return nil, ErrUnknownPrimary
	}
	return c, nil
}

// Mode returns the current operating mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Config returns the active timing parameters.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig replaces the timing parameters on the controller and every eye.
// An eye mid-move finishes its current motion under the old durations; the
// new parameters take effect from its next saccade.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	for _, e := range c.eyes {
		e.cfg = cfg
	}
	return nil
}

// SetMode switches the operating mode. Unknown modes are rejected without
// mutating state.
func (c *Controller) SetMode(m Mode) error {
	switch m {
	case ModeTracking, ModeWandering, ModeRest:
		c.mode = m
		return nil
	default:
		return ErrInvalidMode
	}
}

// Tick advances the whole animation to time now (microseconds, monotonic)
// and returns the render snapshot of every eye. target may be nil when no
// subject is detected this tick.
//
// A now earlier than the previous tick is clamped to the last seen value,
// so a misbehaving clock holds the animation still instead of rewinding it.
func (c *Controller) Tick(now int64, target *Target) []Snapshot {
	if now < c.lastNow {
		now = c.lastNow
	}
	c.lastNow = now

	if !c.started {
		c.started = true
		c.nextBlinkAt = now + durRange(c.rng, c.cfg.BlinkIntervalMin, 2*c.cfg.BlinkIntervalMin)
	}

	// Fire a synchronized blink across all eyes. Eyes already mid-blink
	// ignore the trigger; each eye's own state machine governs progress
	// from here.
	if now >= c.nextBlinkAt {
		duration := durRange(c.rng, c.cfg.BlinkMin, c.cfg.BlinkMax)
		for _, e := range c.eyes {
			e.StartBlink(now, duration)
		}
		c.nextBlinkAt = now + duration*3 + durRange(c.rng, c.cfg.BlinkIntervalMin, 2*c.cfg.BlinkIntervalMin)
	}

	// Blink progression is independent of mode.
	for _, e := range c.eyes {
		e.UpdateBlink(now)
	}

	switch c.mode {
	case ModeTracking:
		for i, e := range c.eyes {
			if i == c.primary && target != nil {
				e.UpdateTracking(target.X, target.Y)
			} else {
				e.UpdateAutonomous(now)
			}
		}
	case ModeWandering:
		for _, e := range c.eyes {
			e.UpdateAutonomous(now)
		}
	case ModeRest:
		// No motion; eyes held closed via the render override below.
	}

	return c.snapshots()
}

// Snapshots returns the current render state of every eye without advancing
// the animation.
func (c *Controller) Snapshots() []Snapshot {
	return c.snapshots()
}

func (c *Controller) snapshots() []Snapshot {
	snaps := make([]Snapshot, len(c.eyes))
	for i, e := range c.eyes {
		snaps[i] = e.Snapshot()
		if c.mode == ModeRest {
			// Rendering override only; BlinkState itself is untouched.
			snaps[i].BlinkFactor = 1.0
		}
	}
	return snaps
}

// Eye returns the named eye, or nil if it does not exist. Intended for
// tests and diagnostics.
func (c *Controller) Eye(name string) *Eye {
	for _, e := range c.eyes {
		if e.name == name {
			return e
		}
	}
	return nil
}

package eyes

import "math/rand"

// Eye holds the full motion and blink state of a single gaze organ.
// It is owned by a Controller and must only be updated from one goroutine.
type Eye struct {
	name string
	cfg  Config
	rng  *rand.Rand

	// Current gaze position in screen-radius units.
	x, y float64

	// Motion state. While moving, position is the eased interpolation
	// from (oldX, oldY) to (newX, newY); while idle, position equals
	// (oldX, oldY) and moveDur holds the hold duration.
	moving     bool
	moveStart  int64
	moveDur    int64
	oldX, oldY float64
	newX, newY float64

	// Major saccade pacing. saccadeInterval is zero when no deadline is
	// pending.
	lastSaccadeStop int64
	saccadeInterval int64

	// Blink state.
	phase       blinkPhase
	blinkStart  int64
	blinkDur    int64
	blinkFactor float64
}

// newEye creates an eye at the display center with the lids open.
func newEye(name string, cfg Config, rng *rand.Rand) *Eye {
	return &Eye{
		name: name,
		cfg:  cfg,
		rng:  rng,
	}
}

// Name returns the eye's identity.
func (e *Eye) Name() string {
	return e.name
}

// UpdateAutonomous advances the wandering motion model to time now.
//
// A moving eye follows the smoothstep ease from old to new and snaps to the
// destination when the duration elapses, drawing the next hold duration and,
// if none is pending, a major-saccade deadline. An idle eye whose hold has
// elapsed either fires a major saccade (deadline passed) or a microsaccade.
func (e *Eye) UpdateAutonomous(now int64) {
	dt := now - e.moveStart

	if e.moving {
		if dt >= e.moveDur {
			// Movement complete: land exactly on the destination.
			e.moving = false
			e.x, e.oldX = e.newX, e.newX
			e.y, e.oldY = e.newY, e.newY

			e.moveDur = nextHold(e.rng, e.cfg)
			if e.saccadeInterval == 0 {
				e.lastSaccadeStop = now
				e.saccadeInterval = durRange(e.rng, e.moveDur, e.cfg.GazeMax)
			}
			e.moveStart = now
		} else {
			t := smoothstep(float64(dt) / float64(e.moveDur))
			e.x = lerp(e.oldX, e.newX, t)
			e.y = lerp(e.oldY, e.newY, t)
		}
		return
	}

	// Holding still.
	e.x, e.y = e.oldX, e.oldY

	if dt > e.moveDur {
		if now-e.lastSaccadeStop > e.saccadeInterval {
			e.newX, e.newY, e.moveDur = nextSaccade(e.rng, e.cfg)
			e.saccadeInterval = 0
		} else {
			e.newX, e.newY, e.moveDur = nextMicrosaccade(e.rng, e.cfg, e.x, e.y)
		}
		e.moveStart = now
		e.moving = true
	}
}

// UpdateTracking snaps the gaze directly to a normalized target, bypassing
// the saccade and easing machinery. The motion state is left untouched, so
// autonomous wandering resumes from the last idle position.
func (e *Eye) UpdateTracking(tx, ty float64) {
	r := e.cfg.DisplayRadius * e.cfg.TrackScale
	e.x = tx * r
	e.y = ty * r
}

// StartBlink begins a blink at time now with the given closing duration.
// It is a no-op while a blink is already in progress.
func (e *Eye) StartBlink(now, duration int64) {
	if e.phase != blinkOpen {
		return
	}
	e.phase = blinkClosing
	e.blinkStart = now
	e.blinkDur = duration
}

// UpdateBlink advances the eyelid state machine to time now. The closure
// factor is continuous across every transition: it reaches exactly 1.0 at
// the closing→opening boundary and 0.0 when the blink completes. Opening
// runs at half the closing speed.
func (e *Eye) UpdateBlink(now int64) {
	if e.phase == blinkOpen {
		return
	}

	dt := now - e.blinkStart
	if dt >= e.blinkDur {
		if e.phase == blinkClosing {
			e.phase = blinkOpening
			e.blinkDur *= 2
			e.blinkStart = now
			e.blinkFactor = 1.0
		} else {
			e.phase = blinkOpen
			e.blinkFactor = 0.0
		}
		return
	}

	e.blinkFactor = float64(dt) / float64(e.blinkDur)
	if e.phase == blinkOpening {
		e.blinkFactor = 1.0 - e.blinkFactor
	}
}

// Snapshot returns the immutable render state of the eye.
func (e *Eye) Snapshot() Snapshot {
	return Snapshot{
		Name:        e.name,
		X:           e.x,
		Y:           e.y,
		BlinkFactor: clamp(e.blinkFactor, 0, 1),
	}
}

// Package eyes implements the gaze animation core for the three-eyed skull.
//
// Each Eye wanders autonomously with eased saccades and microsaccades, snaps
// to a tracked target when one is present, and blinks on a shared schedule.
// The package is pure computation over a caller-supplied clock: all
// timestamps and durations are int64 microseconds on a monotonic timeline,
// advanced once per tick by the Controller. Nothing here blocks, sleeps, or
// spawns goroutines.
package eyes

// Mode selects which behavior drives eye motion on each tick.
type Mode int

const (
	// ModeTracking makes the primary eye follow a detected target while the
	// other eyes wander.
	ModeTracking Mode = iota

	// ModeWandering makes every eye wander autonomously.
	ModeWandering

	// ModeRest suspends motion and holds every eye closed.
	ModeRest
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeTracking:
		return "tracking"
	case ModeWandering:
		return "wandering"
	case ModeRest:
		return "rest"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tracking":
		return ModeTracking, nil
	case "wandering":
		return ModeWandering, nil
	case "rest":
		return ModeRest, nil
	default:
		return ModeTracking, ErrInvalidMode
	}
}

// Target is a normalized gaze target with each component in [-1, 1].
// X grows to the right, Y grows downward, (0, 0) is straight ahead.
// Callers clamp before dispatch; the face tracker already guarantees this.
type Target struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is the read-only render state of one eye for one tick.
// X and Y are in screen-radius units relative to the display center;
// BlinkFactor is eyelid closure, 0 = fully open, 1 = fully closed.
type Snapshot struct {
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	BlinkFactor float64 `json:"blink_factor"`
}

// blinkPhase is the eyelid state machine: open → closing → opening → open.
type blinkPhase int

const (
	blinkOpen blinkPhase = iota
	blinkClosing
	blinkOpening
)

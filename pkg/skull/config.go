package skull

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds the orchestrator's wiring and behavior settings.
type Config struct {
	// WebPort for the dashboard server.
	WebPort string

	// CameraID for the tracking camera.
	CameraID int

	// CascadePath to the Haar face cascade XML.
	CascadePath string

	// SoundsDir is the root of the sound library.
	SoundsDir string

	// SimTracker replaces the camera with a simulated face source.
	SimTracker bool

	// EyeNames in render order; Primary is the eye that locks onto faces.
	EyeNames []string
	Primary  string

	// TickHz is the animation loop rate.
	TickHz int

	// DetectHz is the face detection rate, decoupled from the tick loop.
	DetectHz int

	// FrameDivisor renders eye frames every Nth tick.
	FrameDivisor int

	// AmbientInterval between ambient sounds while no face is present.
	AmbientInterval time.Duration

	// InactivityTimeout without a face before the skull rests.
	InactivityTimeout time.Duration

	// FPSLogInterval between loop rate log lines.
	FPSLogInterval time.Duration

	// RestBrightness for the LEDs while resting.
	RestBrightness float64

	// Seed for the animation RNG; 0 means time-seeded.
	Seed int64
}

// DefaultConfig returns the standard three-eyed setup.
func DefaultConfig() Config {
	return Config{
		WebPort:           "8090",
		CameraID:          0,
		CascadePath:       "haarcascade_frontalface_default.xml",
		SoundsDir:         "sounds",
		EyeNames:          []string{"left", "right", "middle"},
		Primary:           "middle",
		TickHz:            100,
		DetectHz:          15,
		FrameDivisor:      3,
		AmbientInterval:   30 * time.Second,
		InactivityTimeout: 600 * time.Second,
		FPSLogInterval:    5 * time.Second,
		RestBrightness:    0.1,
	}
}

// Validate checks the loop parameters.
func (c Config) Validate() error {
	if len(c.EyeNames) == 0 {
		return fmt.Errorf("no eyes configured")
	}
	if c.TickHz < 1 || c.TickHz > 1000 {
		return fmt.Errorf("tick rate %d out of range", c.TickHz)
	}
	if c.DetectHz < 1 || c.DetectHz > c.TickHz {
		return fmt.Errorf("detect rate %d out of range (tick rate %d)", c.DetectHz, c.TickHz)
	}
	if c.FrameDivisor < 1 {
		return fmt.Errorf("frame divisor %d out of range", c.FrameDivisor)
	}
	if c.AmbientInterval <= 0 || c.InactivityTimeout <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	if c.RestBrightness < 0 || c.RestBrightness > 1 {
		return fmt.Errorf("rest brightness %s out of range",
			strconv.FormatFloat(c.RestBrightness, 'g', -1, 64))
	}
	return nil
}

package eyes

import "fmt"

// Config holds all tunable animation parameters. Durations and intervals
// are microseconds. A Config is injected at construction so tests can run
// with deterministic timing.
type Config struct {
	// DisplayRadius scales gaze coordinates to the display. Autonomous
	// motion and tracked motion both produce positions in screen-radius
	// units derived from this constant.
	DisplayRadius float64 `json:"display_radius"`

	// Major saccade duration bounds.
	SaccadeMin int64 `json:"saccade_min"`
	SaccadeMax int64 `json:"saccade_max"`

	// Microsaccade duration bounds.
	MicrosaccadeMin int64 `json:"microsaccade_min"`
	MicrosaccadeMax int64 `json:"microsaccade_max"`

	// GazeMax is the maximum time between major saccades.
	GazeMax int64 `json:"gaze_max"`

	// Hold duration bounds between movements. The upper draw limit is
	// min(HoldCap, GazeMax).
	HoldMin int64 `json:"hold_min"`
	HoldCap int64 `json:"hold_cap"`

	// Blink closing duration bounds. Opening takes twice the drawn value.
	BlinkMin int64 `json:"blink_min"`
	BlinkMax int64 `json:"blink_max"`

	// BlinkIntervalMin is the minimum gap between synchronized blinks; the
	// scheduler draws the gap from [BlinkIntervalMin, 2×BlinkIntervalMin].
	BlinkIntervalMin int64 `json:"blink_interval_min"`

	// TrackScale maps a normalized [-1,1] target onto the display:
	// position = target × TrackScale × DisplayRadius.
	TrackScale float64 `json:"track_scale"`

	// SaccadeRadiusFrac bounds major saccade targets to a disk of
	// SaccadeRadiusFrac × DisplayRadius around the display center.
	SaccadeRadiusFrac float64 `json:"saccade_radius_frac"`

	// MicrosaccadeRadiusFrac bounds microsaccade jitter to a disk of
	// MicrosaccadeRadiusFrac × DisplayRadius around the current position.
	MicrosaccadeRadiusFrac float64 `json:"microsaccade_radius_frac"`
}

// DefaultConfig returns the stage-tuned parameters for the skull.
func DefaultConfig() Config {
	return Config{
		DisplayRadius: 240,

		SaccadeMin: 83000,  // ~1/12 sec
		SaccadeMax: 166000, // ~1/6 sec

		MicrosaccadeMin: 7000,
		MicrosaccadeMax: 25000,

		GazeMax: 3000000, // 3 sec between major movements at most

		HoldMin: 35000,
		HoldCap: 1000000,

		BlinkMin: 36000, // ~1/28 sec
		BlinkMax: 72000, // ~1/14 sec

		BlinkIntervalMin: 4000000, // at least 4 sec between blinks

		TrackScale:             0.9,
		SaccadeRadiusFrac:      0.75,
		MicrosaccadeRadiusFrac: 0.07,
	}
}

// CalmConfig returns a slower, sleepier parameter set.
func CalmConfig() Config {
	cfg := DefaultConfig()
	cfg.GazeMax = 6000000
	cfg.HoldCap = 2000000
	cfg.SaccadeMin = 120000
	cfg.SaccadeMax = 240000
	cfg.BlinkIntervalMin = 6000000
	return cfg
}

// JumpyConfig returns a twitchy, alert parameter set.
func JumpyConfig() Config {
	cfg := DefaultConfig()
	cfg.GazeMax = 1500000
	cfg.HoldCap = 500000
	cfg.SaccadeMin = 60000
	cfg.SaccadeMax = 120000
	cfg.BlinkIntervalMin = 2500000
	return cfg
}

// Validate checks the config for usable values.
func (c Config) Validate() error {
	if c.DisplayRadius <= 0 {
		return fmt.Errorf("display radius must be positive, got %v", c.DisplayRadius)
	}
	pairs := []struct {
		name    string
		lo, hi  int64
	}{
		{"saccade", c.SaccadeMin, c.SaccadeMax},
		{"microsaccade", c.MicrosaccadeMin, c.MicrosaccadeMax},
		{"hold", c.HoldMin, c.HoldCap},
		{"blink", c.BlinkMin, c.BlinkMax},
	}
	for _, p := range pairs {
		if p.lo <= 0 || p.hi < p.lo {
			return fmt.Errorf("%s duration bounds invalid: [%d, %d]", p.name, p.lo, p.hi)
		}
	}
	if c.GazeMax < c.HoldMin {
		return fmt.Errorf("gaze max %d shorter than hold min %d", c.GazeMax, c.HoldMin)
	}
	if c.BlinkIntervalMin <= 0 {
		return fmt.Errorf("blink interval must be positive, got %d", c.BlinkIntervalMin)
	}
	if c.TrackScale <= 0 || c.TrackScale > 1 {
		return fmt.Errorf("track scale must be in (0, 1], got %v", c.TrackScale)
	}
	if c.SaccadeRadiusFrac <= 0 || c.SaccadeRadiusFrac > 1 {
		return fmt.Errorf("saccade radius fraction must be in (0, 1], got %v", c.SaccadeRadiusFrac)
	}
	if c.MicrosaccadeRadiusFrac <= 0 || c.MicrosaccadeRadiusFrac > 1 {
		return fmt.Errorf("microsaccade radius fraction must be in (0, 1], got %v", c.MicrosaccadeRadiusFrac)
	}
	return nil
}

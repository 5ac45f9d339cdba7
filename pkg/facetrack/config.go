// Package facetrack captures camera frames and detects the nearest face,
// reporting its position normalized to [-1, 1] per axis for the gaze core.
package facetrack

import "fmt"

// Config holds camera and detection parameters.
type Config struct {
	// Camera device index and capture geometry.
	CameraID int `json:"camera_id"`
	Width    int `json:"width"`
	Height   int `json:"height"`
	FPS      int `json:"fps"`

	// CascadePath is the Haar cascade XML file for frontal faces.
	CascadePath string `json:"cascade_path"`

	// Cascade parameters.
	ScaleFactor  float64 `json:"scale_factor"`
	MinNeighbors int     `json:"min_neighbors"`
	MinSize      int     `json:"min_size"` // pixels

	// HoldFrames keeps reporting the last position for this many missed
	// frames before declaring the face lost, smoothing brief dropouts.
	HoldFrames int `json:"hold_frames"`

	// Smoothing is the EMA weight of a new reading (0 disables, 1 means
	// no smoothing at all).
	Smoothing float64 `json:"smoothing"`
}

// DefaultConfig returns the standard 640x480 detection setup.
func DefaultConfig() Config {
	return Config{
		CameraID:     0,
		Width:        640,
		Height:       480,
		FPS:          30,
		CascadePath:  "haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
		HoldFrames:   30, // ~1 second at 30fps
		Smoothing:    0.6,
	}
}

// Validate checks the config for usable values.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid capture size %dx%d", c.Width, c.Height)
	}
	if c.CascadePath == "" {
		return fmt.Errorf("cascade path is required")
	}
	if c.ScaleFactor <= 1.0 {
		return fmt.Errorf("scale factor must be > 1.0, got %v", c.ScaleFactor)
	}
	if c.MinNeighbors < 1 {
		return fmt.Errorf("min neighbors must be >= 1, got %d", c.MinNeighbors)
	}
	if c.HoldFrames < 0 {
		return fmt.Errorf("hold frames must be >= 0, got %d", c.HoldFrames)
	}
	if c.Smoothing < 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing must be in [0, 1], got %v", c.Smoothing)
	}
	return nil
}

// Package config provides environment configuration helpers for go-skull
// commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the skull daemon.
const (
	DefaultWebPort   = "8090"
	DefaultCameraID  = 0
	DefaultSoundsDir = "sounds"
	DefaultCascade   = "haarcascade_frontalface_default.xml"
)

// WebPort returns the dashboard port from SKULL_WEB_PORT or the default.
func WebPort() string {
	if p := os.Getenv("SKULL_WEB_PORT"); p != "" {
		return p
	}
	return DefaultWebPort
}

// CameraID returns the camera device index from SKULL_CAMERA_ID or the
// default.
func CameraID() int {
	if v := os.Getenv("SKULL_CAMERA_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return DefaultCameraID
}

// SoundsDir returns the sound effects directory from SKULL_SOUNDS_DIR or
// the default.
func SoundsDir() string {
	if d := os.Getenv("SKULL_SOUNDS_DIR"); d != "" {
		return d
	}
	return DefaultSoundsDir
}

// CascadePath returns the Haar cascade file path from SKULL_CASCADE or the
// default.
func CascadePath() string {
	if p := os.Getenv("SKULL_CASCADE"); p != "" {
		return p
	}
	return DefaultCascade
}

// LogLevel returns the log level from SKULL_LOG_LEVEL or "info".
func LogLevel() string {
	if l := os.Getenv("SKULL_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

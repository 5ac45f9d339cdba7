package eyes

import "errors"

var (
	// ErrInvalidMode is returned when an unknown mode is requested.
	ErrInvalidMode = errors.New("invalid eye mode")

	// ErrNoEyes is returned when a controller is created without any eyes.
	ErrNoEyes = errors.New("no eyes configured")

	// ErrUnknownPrimary is returned when the primary eye name is not among
	// the configured eyes.
	ErrUnknownPrimary = errors.New("primary eye not found")
)

package facetrack

import "errors"

var (
	// ErrCascadeLoad is returned when the Haar cascade file cannot be loaded.
	ErrCascadeLoad = errors.New("failed to load cascade classifier")
)

package eyes

import (
	"math"
	"math/rand"
)

// inDisk draws a point uniformly-bounded inside a disk of radius r centered
// at (cx, cy) without rejection: x is drawn across the full diameter, then
// y is drawn within the chord height sqrt(r² − x²) at that x.
func inDisk(rng *rand.Rand, cx, cy, r float64) (float64, float64) {
	dx := uniform(rng, -r, r)
	h := math.Sqrt(r*r - dx*dx)
	dy := uniform(rng, -h, h)
	return cx + dx, cy + dy
}

// nextSaccade picks the destination and duration of a major saccade:
// a fresh gaze point anywhere in the central disk of the display.
func nextSaccade(rng *rand.Rand, cfg Config) (x, y float64, duration int64) {
	r := cfg.DisplayRadius * cfg.SaccadeRadiusFrac
	x, y = inDisk(rng, 0, 0, r)
	duration = durRange(rng, cfg.SaccadeMin, cfg.SaccadeMax)
	return x, y, duration
}

// nextMicrosaccade picks a small jitter movement around the current gaze
// point, keeping fixation alive between major saccades.
func nextMicrosaccade(rng *rand.Rand, cfg Config, curX, curY float64) (x, y float64, duration int64) {
	r := cfg.DisplayRadius * cfg.MicrosaccadeRadiusFrac
	x, y = inDisk(rng, curX, curY, r)
	duration = durRange(rng, cfg.MicrosaccadeMin, cfg.MicrosaccadeMax)
	return x, y, duration
}

// nextHold picks how long the eye rests after a movement completes, and
// whether a new major-saccade deadline needs to be drawn.
func nextHold(rng *rand.Rand, cfg Config) int64 {
	limit := cfg.HoldCap
	if cfg.GazeMax < limit {
		limit = cfg.GazeMax
	}
	return durRange(rng, cfg.HoldMin, limit)
}

package eyes

import "math/rand"

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// smoothstep maps linear progress t ∈ [0,1] onto the 3t²−2t³ ease curve.
// The first derivative is zero at both endpoints, so movements start and
// stop without a velocity discontinuity.
func smoothstep(t float64) float64 {
	t = clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// uniform draws a value uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// durRange draws a duration uniformly from [lo, hi] microseconds.
// Degenerate ranges collapse to lo.
func durRange(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

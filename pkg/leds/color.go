// Package leds drives the skull's accent LED strip with animated patterns.
// Pattern math is pure computation over an animation frame counter; the
// physical strip sits behind the Strip interface so patterns are testable
// and the daemon can run headless.
package leds

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Scale returns the color dimmed by a factor in [0, 1].
func (c Color) Scale(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// hsvToRGB converts h, s, v ∈ [0, 1] to an RGB color.
func hsvToRGB(h, s, v float64) Color {
	if s == 0 {
		g := uint8(v * 255)
		return Color{R: g, G: g, B: g}
	}

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return Color{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

package leds

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Pattern selects the strip animation.
type Pattern string

const (
	PatternSolid   Pattern = "solid"
	PatternPulse   Pattern = "pulse"
	PatternRainbow Pattern = "rainbow"
	PatternChase   Pattern = "chase"
	PatternFire    Pattern = "fire"
	PatternStrobe  Pattern = "strobe"
)

// DefaultBrightness is the power-on brightness.
const DefaultBrightness = 0.5

// ParsePattern validates a pattern name.
func ParsePattern(s string) (Pattern, bool) {
	switch Pattern(s) {
	case PatternSolid, PatternPulse, PatternRainbow, PatternChase, PatternFire, PatternStrobe:
		return Pattern(s), true
	}
	return "", false
}

// State is a read-only snapshot of the controller for the dashboard.
type State struct {
	Pattern    Pattern `json:"pattern"`
	Color      Color   `json:"color"`
	Brightness float64 `json:"brightness"`
	Speed      float64 `json:"speed"`
}

// Controller animates a Strip. Update is meant to be called from the main
// loop; the setters are safe from other goroutines.
type Controller struct {
	strip Strip
	rng   *rand.Rand

	mu         sync.Mutex
	color      Color
	pattern    Pattern
	speed      float64
	brightness float64
	frame      float64
	lastUpdate time.Time
}

// NewController wraps a strip with the default red pulse. A nil rng gets a
// time-seeded source (the fire pattern flickers randomly).
func NewController(strip Strip, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		strip:      strip,
		rng:        rng,
		color:      Color{R: 255},
		pattern:    PatternPulse,
		speed:      1.0,
		brightness: DefaultBrightness,
		lastUpdate: time.Now(),
	}
}

// SetColor sets the base color for color-driven patterns.
func (c *Controller) SetColor(col Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.color = col
}

// SetBrightness scales the strip output, clamped to [0, 1].
func (c *Controller) SetBrightness(b float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b < 0 {
		b = 0
	}
	if b > 1 {
		b = 1
	}
	c.brightness = b
	c.strip.SetBrightness(b)
}

// SetPattern switches the animation pattern and restarts its frame counter.
func (c *Controller) SetPattern(p Pattern, speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pattern = p
	if speed > 0 {
		c.speed = speed
	}
	c.frame = 0
}

// State returns the current controller settings.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Pattern:    c.pattern,
		Color:      c.color,
		Brightness: c.brightness,
		Speed:      c.speed,
	}
}

// Update advances the animation by the wall-clock time since the previous
// call and pushes the result to the strip.
func (c *Controller) Update() error {
	now := time.Now()
	dt := now.Sub(c.lastUpdate)
	c.lastUpdate = now
	return c.advance(dt)
}

// advance is the clock-independent part of Update.
func (c *Controller) advance(dt time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 60fps base rate scaled by the pattern speed.
	c.frame += dt.Seconds() * c.speed * 60

	switch c.pattern {
	case PatternSolid:
		c.strip.Fill(c.color)
	case PatternPulse:
		c.renderPulse()
	case PatternRainbow:
		c.renderRainbow()
	case PatternChase:
		c.renderChase()
	case PatternFire:
		c.renderFire()
	case PatternStrobe:
		c.renderStrobe()
	}

	return c.strip.Show()
}

// renderPulse breathes the base color with a sine envelope.
func (c *Controller) renderPulse() {
	pulse := (math.Sin(c.frame*0.05) + 1) / 2
	c.strip.Fill(c.color.Scale(pulse))
}

// renderRainbow cycles hue along the strip.
func (c *Controller) renderRainbow() {
	n := c.strip.Len()
	for i := 0; i < n; i++ {
		hue := math.Mod(float64(i)/float64(n)+c.frame*0.001, 1.0)
		c.strip.Set(i, hsvToRGB(hue, 1, 1))
	}
}

// renderChase runs a single bright pixel with a fading tail.
func (c *Controller) renderChase() {
	n := c.strip.Len()
	pos := int(c.frame*0.2) % n
	for i := 0; i < n; i++ {
		d := i - pos
		if d < 0 {
			d = -d
		}
		if wrap := n - d; wrap < d {
			d = wrap
		}
		fade := 1.0 - float64(d)/5.0
		if fade < 0 {
			fade = 0
		}
		c.strip.Set(i, c.color.Scale(fade))
	}
}

// renderFire flickers each pixel in ember colors.
func (c *Controller) renderFire() {
	n := c.strip.Len()
	for i := 0; i < n; i++ {
		flicker := 0.3 + c.rng.Float64()*0.7
		c.strip.Set(i, Color{
			R: uint8(255 * flicker),
			G: uint8(100 * flicker * (0.3 + c.rng.Float64()*0.4)),
			B: 0,
		})
	}
}

// renderStrobe alternates hard on/off.
func (c *Controller) renderStrobe() {
	if int(c.frame*0.5)%2 == 0 {
		c.strip.Fill(c.color)
	} else {
		c.strip.Fill(Color{})
	}
}

// Clear blanks the strip.
func (c *Controller) Clear() error {
	c.strip.Fill(Color{})
	return c.strip.Show()
}

// Close blanks the strip and releases it.
func (c *Controller) Close() error {
	return c.strip.Close()
}

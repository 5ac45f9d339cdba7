package leds

import "sync"

// Strip is the hardware boundary: a run of individually addressable LEDs.
// MockStrip satisfies it in-memory; an SPI DotStar driver would attach here.
type Strip interface {
	// Len returns the number of LEDs.
	Len() int

	// Set stages the color of one LED; out-of-range indices are ignored.
	Set(i int, c Color)

	// Fill stages every LED to the same color.
	Fill(c Color)

	// SetBrightness scales the whole strip's output, 0.0 to 1.0.
	SetBrightness(b float64)

	// Show pushes the staged colors to the hardware.
	Show() error

	// Close blanks the strip and releases the device.
	Close() error
}

// MockStrip is an in-memory Strip for tests and headless operation.
type MockStrip struct {
	mu         sync.Mutex
	pixels     []Color
	brightness float64
	shows      int
}

// NewMockStrip creates a mock strip with n LEDs.
func NewMockStrip(n int) *MockStrip {
	return &MockStrip{
		pixels:     make([]Color, n),
		brightness: 1.0,
	}
}

// Len implements Strip.
func (m *MockStrip) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pixels)
}

// Set implements Strip.
func (m *MockStrip) Set(i int, c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i >= 0 && i < len(m.pixels) {
		m.pixels[i] = c
	}
}

// Fill implements Strip.
func (m *MockStrip) Fill(c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pixels {
		m.pixels[i] = c
	}
}

// SetBrightness implements Strip.
func (m *MockStrip) SetBrightness(b float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brightness = b
}

// Show implements Strip.
func (m *MockStrip) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows++
	return nil
}

// Close implements Strip.
func (m *MockStrip) Close() error {
	m.Fill(Color{})
	return nil
}

// Pixel returns the staged color of one LED (tests).
func (m *MockStrip) Pixel(i int) Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pixels[i]
}

// Shows returns how many times Show has been called (tests).
func (m *MockStrip) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}

// Brightness returns the staged brightness (tests).
func (m *MockStrip) Brightness() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness
}

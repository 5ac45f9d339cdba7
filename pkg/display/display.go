// Package display rasterizes eye snapshots into JPEG frames for the web
// dashboard and the round LCDs. One Renderer serves one eye; the canvas Mat
// is reused across frames.
package display

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/trioptic/go-skull/pkg/eyes"
)

// Config holds the frame geometry and palette.
type Config struct {
	// Size is the square frame edge in pixels.
	Size int `json:"size"`

	// JPEGQuality in [1, 100].
	JPEGQuality int `json:"jpeg_quality"`

	Background color.RGBA `json:"-"`
	Sclera     color.RGBA `json:"-"`
	Iris       color.RGBA `json:"-"`
	Pupil      color.RGBA `json:"-"`
}

// DefaultConfig matches the 240px round LCDs.
func DefaultConfig() Config {
	return Config{
		Size:        240,
		JPEGQuality: 75,
		Background:  color.RGBA{R: 8, G: 8, B: 8, A: 255},
		Sclera:      color.RGBA{R: 235, G: 230, B: 215, A: 255},
		Iris:        color.RGBA{R: 120, G: 40, B: 10, A: 255},
		Pupil:       color.RGBA{R: 10, G: 5, B: 5, A: 255},
	}
}

// Validate checks the frame parameters.
func (c Config) Validate() error {
	if c.Size < 16 {
		return fmt.Errorf("size %d too small", c.Size)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d out of range", c.JPEGQuality)
	}
	return nil
}

// Renderer draws eye frames onto a reusable canvas.
type Renderer struct {
	cfg    Config
	canvas gocv.Mat
}

// NewRenderer allocates the canvas for one eye.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:    cfg,
		canvas: gocv.NewMatWithSize(cfg.Size, cfg.Size, gocv.MatTypeCV8UC3),
	}, nil
}

// Render draws the snapshot and returns a JPEG frame. The returned slice is
// owned by the caller.
func (r *Renderer) Render(snap eyes.Snapshot) ([]byte, error) {
	size := r.cfg.Size
	center := size / 2
	scleraR := center - 2
	irisR := size / 5
	pupilR := size / 12

	r.canvas.SetTo(scalarOf(r.cfg.Background))

	gocv.Circle(&r.canvas, image.Pt(center, center), scleraR, r.cfg.Sclera, -1)

	ix, iy := irisCenter(snap.X, snap.Y, center, scleraR-irisR)
	gocv.Circle(&r.canvas, image.Pt(ix, iy), irisR, r.cfg.Iris, -1)
	gocv.Circle(&r.canvas, image.Pt(ix, iy), pupilR, r.cfg.Pupil, -1)

	top, bottom := lidHeights(snap.BlinkFactor, size)
	if top > 0 {
		gocv.Rectangle(&r.canvas, image.Rect(0, 0, size, top), r.cfg.Background, -1)
	}
	if bottom > 0 {
		gocv.Rectangle(&r.canvas, image.Rect(0, size-bottom, size, size), r.cfg.Background, -1)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, r.canvas,
		[]int{gocv.IMWriteJpegQuality, r.cfg.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// Close releases the canvas.
func (r *Renderer) Close() error {
	return r.canvas.Close()
}

// irisCenter maps a gaze offset to canvas coordinates, clamped so the iris
// stays inside the sclera. Screen Y grows downward, gaze Y grows upward.
func irisCenter(gx, gy float64, center, maxOffset int) (int, int) {
	return center + clampInt(int(gx), maxOffset),
		center - clampInt(int(gy), maxOffset)
}

// lidHeights converts a blink factor to eyelid coverage in pixels. The lids
// meet in the middle at factor 1.
func lidHeights(factor float64, size int) (top, bottom int) {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	half := float64(size) / 2
	top = int(factor * half)
	bottom = int(factor * half)
	return top, bottom
}

func clampInt(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// scalarOf converts an RGBA color to the BGR-ordered scalar raw Mat
// operations expect. The gocv draw functions do this conversion themselves.
func scalarOf(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), float64(c.A))
}

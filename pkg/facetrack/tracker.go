package facetrack

import (
	"fmt"
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/trioptic/go-skull/internal/log"
)

// Tracker detects faces from a live camera with a Haar cascade classifier.
// Detect is meant to be called from a single loop; the read accessors are
// safe from other goroutines.
type Tracker struct {
	cfg     Config
	cam     *gocv.VideoCapture
	cascade gocv.CascadeClassifier
	frame   gocv.Mat
	gray    gocv.Mat

	mu            sync.RWMutex
	last          Position
	haveLast      bool
	detected      bool
	confidence    float64
	missedFrames  int
	lastDetection time.Time
}

// New opens the camera and loads the face cascade.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cam, err := gocv.OpenVideoCapture(cfg.CameraID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.CameraID, err)
	}
	cam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cam.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	cascade := gocv.NewCascadeClassifier()
	if !cascade.Load(cfg.CascadePath) {
		cam.Close()
		cascade.Close()
		return nil, fmt.Errorf("load cascade %s: %w", cfg.CascadePath, ErrCascadeLoad)
	}

	log.Info("face tracker ready",
		"camera", cfg.CameraID,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"cascade", cfg.CascadePath)

	return &Tracker{
		cfg:     cfg,
		cam:     cam,
		cascade: cascade,
		frame:   gocv.NewMat(),
		gray:    gocv.NewMat(),
	}, nil
}

// Detect grabs a frame and returns the normalized position of the largest
// face. After a detection drops out, the last position is held for up to
// HoldFrames frames so a blink of the classifier doesn't unlock the gaze.
func (t *Tracker) Detect() (Position, bool) {
	if ok := t.cam.Read(&t.frame); !ok || t.frame.Empty() {
		return t.observe(nil, t.cfg.Width, t.cfg.Height)
	}

	gocv.CvtColor(t.frame, &t.gray, gocv.ColorBGRToGray)
	rects := t.cascade.DetectMultiScaleWithParams(
		t.gray,
		t.cfg.ScaleFactor,
		t.cfg.MinNeighbors,
		0,
		image.Pt(t.cfg.MinSize, t.cfg.MinSize),
		image.Pt(0, 0),
	)

	return t.observe(rects, t.frame.Cols(), t.frame.Rows())
}

// observe folds one frame's detections into the tracker state. Split from
// Detect so the dropout and smoothing behavior is testable without a camera.
func (t *Tracker) observe(rects []image.Rectangle, frameW, frameH int) (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(rects) == 0 {
		t.missedFrames++
		if t.haveLast && t.missedFrames < t.cfg.HoldFrames {
			return t.last, true
		}
		t.detected = false
		t.confidence = 0
		return Position{}, false
	}

	best := largestRect(rects)
	pos := normalizeCenter(best, frameW, frameH)

	if t.haveLast && t.cfg.Smoothing > 0 && t.cfg.Smoothing < 1 {
		pos.X = t.cfg.Smoothing*pos.X + (1-t.cfg.Smoothing)*t.last.X
		pos.Y = t.cfg.Smoothing*pos.Y + (1-t.cfg.Smoothing)*t.last.Y
	}

	t.last = pos
	t.haveLast = true
	t.detected = true
	t.confidence = faceConfidence(best, frameW, frameH)
	t.missedFrames = 0
	t.lastDetection = time.Now()

	return pos, true
}

// Detected reports whether a face is currently visible (holds true through
// the dropout window).
func (t *Tracker) Detected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.detected || (t.haveLast && t.missedFrames < t.cfg.HoldFrames)
}

// Confidence returns the detection confidence of the last seen face,
// in [0, 1].
func (t *Tracker) Confidence() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.confidence
}

// Close releases the camera and classifier.
func (t *Tracker) Close() error {
	t.frame.Close()
	t.gray.Close()
	t.cascade.Close()
	return t.cam.Close()
}

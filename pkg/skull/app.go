// Package skull is the application orchestrator. It owns the animation
// controller, face tracker, sounds, LEDs, renderers and the web dashboard,
// and drives them all from a single tick loop on a monotonic clock.
package skull

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/trioptic/go-skull/internal/log"
	"github.com/trioptic/go-skull/pkg/audio"
	"github.com/trioptic/go-skull/pkg/display"
	"github.com/trioptic/go-skull/pkg/eyes"
	"github.com/trioptic/go-skull/pkg/facetrack"
	"github.com/trioptic/go-skull/pkg/leds"
	"github.com/trioptic/go-skull/pkg/web"
)

// face is the shared detection state, written by the detect loop and read
// by the tick loop.
type face struct {
	detected   bool
	x, y       float64
	confidence float64
}

// App wires the skull together and runs its main loop.
type App struct {
	cfg Config

	// ctrlMu serializes controller access between the tick loop and the
	// dashboard handlers.
	ctrlMu  sync.Mutex
	ctrl    *eyes.Controller

	tracker facetrack.Source
	sounds  *audio.Manager
	lights  *leds.Controller
	server  *web.Server

	// renderers per eye name; nil when frame rendering is disabled.
	renderers map[string]*display.Renderer

	faceMu sync.RWMutex
	face   face

	// Loop state, all in clock microseconds. The tick loop owns these.
	lastSeenAt    int64
	lastAmbientAt int64
	wasDetected   bool
	resting       bool

	ticks  int64
	frames int64

	epoch time.Time
}

// New builds the app from its parts. tracker, strip and renderers may be
// nil for headless runs; a nil strip disables LEDs entirely.
func New(cfg Config, tracker facetrack.Source, strip leds.Strip) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	ctrl, err := eyes.NewController(eyes.DefaultConfig(), cfg.EyeNames, cfg.Primary, rng)
	if err != nil {
		return nil, fmt.Errorf("eyes: %w", err)
	}

	a := &App{
		cfg:     cfg,
		ctrl:    ctrl,
		tracker: tracker,
		server:  web.NewServer(cfg.WebPort, cfg.EyeNames),
	}

	audioCfg := audio.DefaultConfig()
	audioCfg.Dir = cfg.SoundsDir
	a.sounds = audio.NewManager(audioCfg, nil)

	if strip != nil {
		a.lights = leds.NewController(strip, nil)
	}

	a.wireServer()
	return a, nil
}

// InitRenderers allocates one frame renderer per eye. Separate from New so
// tests and headless runs can skip the image pipeline.
func (a *App) InitRenderers() error {
	a.renderers = make(map[string]*display.Renderer, len(a.cfg.EyeNames))
	for _, name := range a.cfg.EyeNames {
		r, err := display.NewRenderer(display.DefaultConfig())
		if err != nil {
			return fmt.Errorf("renderer %s: %w", name, err)
		}
		a.renderers[name] = r
	}
	return nil
}

// wireServer connects the dashboard callbacks.
func (a *App) wireServer() {
	a.server.OnStatus = a.status
	a.server.OnSetMode = func(m eyes.Mode) error {
		a.ctrlMu.Lock()
		defer a.ctrlMu.Unlock()
		if err := a.ctrl.SetMode(m); err != nil {
			return err
		}
		log.Info("mode set from dashboard", "mode", m)
		return nil
	}
	a.server.OnTuning = func() eyes.Config {
		a.ctrlMu.Lock()
		defer a.ctrlMu.Unlock()
		return a.ctrl.Config()
	}
	a.server.OnSetTuning = func(cfg eyes.Config) error {
		a.ctrlMu.Lock()
		defer a.ctrlMu.Unlock()
		return a.ctrl.SetConfig(cfg)
	}
	a.server.OnLEDState = func() leds.State {
		if a.lights == nil {
			return leds.State{}
		}
		return a.lights.State()
	}
	a.server.OnSetLEDs = a.applyLEDs
	a.server.OnPlaySound = a.sounds.Play
}

func (a *App) status() web.Status {
	a.faceMu.RLock()
	f := a.face
	a.faceMu.RUnlock()

	a.ctrlMu.Lock()
	mode := a.ctrl.Mode()
	snaps := a.ctrl.Snapshots()
	a.ctrlMu.Unlock()

	st := web.Status{
		Mode:           mode.String(),
		FaceDetected:   f.detected,
		FaceConfidence: f.confidence,
		Eyes:           snaps,
		SoundPlaying:   a.sounds.IsPlaying(),
	}
	if a.lights != nil {
		st.LEDs = a.lights.State()
	}
	if !a.epoch.IsZero() {
		st.UptimeSeconds = time.Since(a.epoch).Seconds()
	}
	return st
}

func (a *App) applyLEDs(req web.LEDRequest) error {
	if a.lights == nil {
		return fmt.Errorf("no led strip attached")
	}
	if req.Pattern != nil {
		p, ok := leds.ParsePattern(*req.Pattern)
		if !ok {
			return fmt.Errorf("unknown led pattern %q", *req.Pattern)
		}
		speed := 1.0
		if req.Speed != nil {
			speed = *req.Speed
		}
		a.lights.SetPattern(p, speed)
	}
	if req.Color != nil {
		a.lights.SetColor(leds.Color{R: req.Color.R, G: req.Color.G, B: req.Color.B})
	}
	if req.Brightness != nil {
		a.lights.SetBrightness(*req.Brightness)
	}
	return nil
}

// Run drives the skull until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.epoch = time.Now()

	if err := a.sounds.Start(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	a.server.StartAsync()

	if a.tracker != nil {
		go a.detectLoop(ctx)
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.TickHz))
	defer ticker.Stop()

	fpsTicker := time.NewTicker(a.cfg.FPSLogInterval)
	defer fpsTicker.Stop()

	log.Info("skull running",
		"eyes", a.cfg.EyeNames,
		"tick_hz", a.cfg.TickHz,
		"web_port", a.cfg.WebPort)

	for {
		select {
		case <-ctx.Done():
			return a.shutdown()
		case <-ticker.C:
			a.step(a.now())
		case <-fpsTicker.C:
			a.logRates()
		}
	}
}

// now returns microseconds since the app epoch. time.Since reads the
// monotonic clock, so wall clock jumps don't reach the animation.
func (a *App) now() int64 {
	return time.Since(a.epoch).Microseconds()
}

// detectLoop polls the face source and publishes into the shared state.
func (a *App) detectLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.DetectHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pos, ok := a.tracker.Detect()
			var conf float64
			if c, can := a.tracker.(interface{ Confidence() float64 }); can {
				conf = c.Confidence()
			} else if ok {
				conf = 1
			}

			a.faceMu.Lock()
			a.face = face{detected: ok, x: pos.X, y: pos.Y, confidence: conf}
			a.faceMu.Unlock()
		}
	}
}

// step advances everything by one tick. now is in clock microseconds.
func (a *App) step(now int64) {
	a.ticks++

	a.faceMu.RLock()
	f := a.face
	a.faceMu.RUnlock()

	var target *eyes.Target
	if f.detected {
		target = &eyes.Target{X: f.x, Y: f.y}
		a.lastSeenAt = now
	}

	a.ctrlMu.Lock()
	a.handleFaceEdge(now, f.detected)
	a.handleInactivity(now)
	snaps := a.ctrl.Tick(now, target)
	a.ctrlMu.Unlock()

	a.handleAmbient(now, f.detected)

	if a.lights != nil {
		a.lights.Update()
	}

	a.publish(snaps)
}

// handleFaceEdge reacts to a face appearing or vanishing.
func (a *App) handleFaceEdge(now int64, detected bool) {
	if detected && !a.wasDetected {
		log.Info("face acquired")
		if err := a.sounds.PlayDetection(); err != nil {
			log.Debug("detection sound unavailable", "error", err)
		}
		if a.lights != nil {
			a.lights.SetPattern(leds.PatternPulse, 2)
		}
		if a.resting {
			a.wake()
		}
	}
	if !detected && a.wasDetected {
		log.Info("face lost")
		if a.lights != nil {
			a.lights.SetPattern(leds.PatternSolid, 1)
		}
	}
	a.wasDetected = detected
}

// handleInactivity puts the skull to rest after the timeout with no face.
func (a *App) handleInactivity(now int64) {
	if a.resting {
		return
	}
	if now-a.lastSeenAt < a.cfg.InactivityTimeout.Microseconds() {
		return
	}
	log.Info("inactivity timeout, resting",
		"idle_seconds", (now-a.lastSeenAt)/1_000_000)
	a.ctrl.SetMode(eyes.ModeRest)
	a.resting = true
	if a.lights != nil {
		a.lights.SetBrightness(a.cfg.RestBrightness)
	}
}

// wake returns from rest to tracking.
func (a *App) wake() {
	log.Info("waking up")
	a.ctrl.SetMode(eyes.ModeTracking)
	a.resting = false
	if a.lights != nil {
		a.lights.SetBrightness(leds.DefaultBrightness)
	}
}

// publish pushes state to the dashboard and renders eye frames on the
// configured divisor.
func (a *App) publish(snaps []eyes.Snapshot) {
	a.server.PublishState(a.statusWith(snaps))

	if a.renderers == nil || a.ticks%int64(a.cfg.FrameDivisor) != 0 {
		return
	}
	for _, snap := range snaps {
		r, ok := a.renderers[snap.Name]
		if !ok {
			continue
		}
		jpeg, err := r.Render(snap)
		if err != nil {
			log.Error("frame render failed", "eye", snap.Name, "error", err)
			continue
		}
		a.server.PublishFrame(snap.Name, jpeg)
		a.frames++
	}
}

// statusWith is status() without re-snapshotting the eyes.
func (a *App) statusWith(snaps []eyes.Snapshot) web.Status {
	st := a.status()
	st.Eyes = snaps
	return st
}

// handleAmbient murmurs now and then while nobody is watching.
func (a *App) handleAmbient(now int64, detected bool) {
	if detected || a.resting {
		return
	}
	if now-a.lastAmbientAt < a.cfg.AmbientInterval.Microseconds() {
		return
	}
	a.lastAmbientAt = now
	if err := a.sounds.PlayAmbient(); err != nil {
		log.Debug("ambient sound unavailable", "error", err)
	}
}

func (a *App) logRates() {
	interval := a.cfg.FPSLogInterval.Seconds()
	log.Info("loop rates",
		"tick_hz", fmt.Sprintf("%.1f", float64(a.ticks)/interval),
		"frame_fps", fmt.Sprintf("%.1f", float64(a.frames)/interval),
		"clients", a.server.StateClientCount())
	a.ticks = 0
	a.frames = 0
}

func (a *App) shutdown() error {
	log.Info("shutting down")

	if a.tracker != nil {
		if err := a.tracker.Close(); err != nil {
			log.Warn("tracker close", "error", err)
		}
	}
	if a.lights != nil {
		a.lights.Clear()
		a.lights.Close()
	}
	for _, r := range a.renderers {
		r.Close()
	}
	a.sounds.Close()
	return a.server.Shutdown()
}

// Package web serves the skull's control dashboard: a small JSON API for
// mode, tuning, LEDs and sounds, plus websocket streams for live eye state
// and per-eye JPEG frames.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/trioptic/go-skull/internal/log"
	"github.com/trioptic/go-skull/pkg/audio"
	"github.com/trioptic/go-skull/pkg/eyes"
	"github.com/trioptic/go-skull/pkg/hub"
	"github.com/trioptic/go-skull/pkg/leds"
)

// Status is the dashboard's snapshot of the whole skull.
type Status struct {
	Mode           string          `json:"mode"`
	FaceDetected   bool            `json:"face_detected"`
	FaceConfidence float64         `json:"face_confidence"`
	Eyes           []eyes.Snapshot `json:"eyes"`
	LEDs           leds.State      `json:"leds"`
	SoundPlaying   bool            `json:"sound_playing"`
	UptimeSeconds  float64         `json:"uptime_seconds"`
}

// LEDRequest is the body for POST /api/leds. Absent fields leave the
// current setting alone.
type LEDRequest struct {
	Pattern    *string  `json:"pattern,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Color      *RGB     `json:"color,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`
}

// RGB is a web-facing color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Server is the dashboard server. The orchestrator wires the On* callbacks
// before Start; nil callbacks answer 503.
type Server struct {
	app  *fiber.App
	port string

	stateHub  *hub.Hub
	frameHubs map[string]*hub.Hub

	startOnce sync.Once
	started   time.Time

	// OnStatus returns the current skull status.
	OnStatus func() Status

	// OnSetMode switches the animation mode.
	OnSetMode func(eyes.Mode) error

	// OnTuning / OnSetTuning read and replace the eye timing parameters.
	OnTuning    func() eyes.Config
	OnSetTuning func(eyes.Config) error

	// OnLEDState reads the strip state; OnSetLEDs applies a change.
	OnLEDState func() leds.State
	OnSetLEDs  func(LEDRequest) error

	// OnPlaySound queues a sound from the category.
	OnPlaySound func(audio.Category) error
}

// NewServer builds the server with one frame stream per eye name.
func NewServer(port string, eyeNames []string) *Server {
	s := &Server{
		port:      port,
		stateHub:  hub.New("state"),
		frameHubs: make(map[string]*hub.Hub, len(eyeNames)),
	}
	for _, name := range eyeNames {
		s.frameHubs[name] = hub.New("frames/" + name)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Skull Dashboard",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/mode", s.handleSetMode)
	api.Get("/tuning", s.handleTuning)
	api.Post("/tuning", s.handleSetTuning)
	api.Get("/leds", s.handleLEDState)
	api.Post("/leds", s.handleSetLEDs)
	api.Post("/sound/:category", s.handlePlaySound)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/frames/:eye", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// Start runs the hubs and listens. Blocks until Shutdown.
func (s *Server) Start() error {
	s.startOnce.Do(func() {
		s.started = time.Now()
		go s.stateHub.Run()
		for _, h := range s.frameHubs {
			go h.Run()
		}
	})
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs Start in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// PublishState broadcasts a status snapshot to /ws/state clients.
func (s *Server) PublishState(st Status) {
	if err := s.stateHub.BroadcastJSON(st); err != nil {
		log.Error("state broadcast failed", "error", err)
	}
}

// PublishFrame broadcasts a JPEG frame for one eye. Frames for unknown
// eyes are dropped.
func (s *Server) PublishFrame(eye string, jpeg []byte) {
	h, ok := s.frameHubs[eye]
	if !ok {
		return
	}
	h.BroadcastBinary(jpeg)
}

// StateClientCount returns the number of /ws/state subscribers.
func (s *Server) StateClientCount() int {
	return s.stateHub.ClientCount()
}

// Shutdown stops the hubs and the listener.
func (s *Server) Shutdown() error {
	s.stateHub.Stop()
	for _, h := range s.frameHubs {
		h.Stop()
	}
	return s.app.Shutdown()
}

// skulld runs the three-eyed skull: autonomous eye animation, face
// tracking, sounds, LEDs and the web dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/trioptic/go-skull/internal/config"
	"github.com/trioptic/go-skull/internal/log"
	"github.com/trioptic/go-skull/pkg/facetrack"
	"github.com/trioptic/go-skull/pkg/leds"
	"github.com/trioptic/go-skull/pkg/skull"
)

func main() {
	cfg, headless := parseFlags()
	log.Init(config.LogLevel())

	app, err := skull.New(cfg, buildTracker(cfg), buildStrip())
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if !headless {
		if err := app.InitRenderers(); err != nil {
			log.Error("renderer init failed", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

// parseFlags builds the configuration from defaults, environment and flags.
func parseFlags() (skull.Config, bool) {
	cfg := skull.DefaultConfig()

	port := flag.String("port", config.WebPort(), "Dashboard port")
	camera := flag.Int("camera", config.CameraID(), "Camera device index")
	cascade := flag.String("cascade", config.CascadePath(), "Haar face cascade path")
	sounds := flag.String("sounds", config.SoundsDir(), "Sound library directory")
	sim := flag.Bool("sim", false, "Use a simulated face source instead of the camera")
	headless := flag.Bool("headless", false, "Disable eye frame rendering")
	seed := flag.Int64("seed", 0, "Animation RNG seed (0 = time-seeded)")
	flag.Parse()

	cfg.WebPort = *port
	cfg.CameraID = *camera
	cfg.CascadePath = *cascade
	cfg.SoundsDir = *sounds
	cfg.SimTracker = *sim
	cfg.Seed = *seed
	return cfg, *headless
}

// buildTracker opens the camera tracker, or the simulator with -sim. A
// camera failure degrades to wandering instead of aborting.
func buildTracker(cfg skull.Config) facetrack.Source {
	if cfg.SimTracker {
		log.Info("using simulated face source")
		return facetrack.NewSim()
	}

	fcfg := facetrack.DefaultConfig()
	fcfg.CameraID = cfg.CameraID
	fcfg.CascadePath = cfg.CascadePath
	tracker, err := facetrack.New(fcfg)
	if err != nil {
		log.Warn("face tracking unavailable, eyes will wander", "error", err)
		return nil
	}
	return tracker
}

// buildStrip returns the LED strip. There is no SPI driver wired in yet,
// so this is the in-memory strip; the controller animates it either way.
func buildStrip() leds.Strip {
	return leds.NewMockStrip(16)
}

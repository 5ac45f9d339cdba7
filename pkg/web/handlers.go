package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/trioptic/go-skull/pkg/audio"
	"github.com/trioptic/go-skull/pkg/eyes"
	"github.com/trioptic/go-skull/pkg/hub"
)

func (s *Server) handleStatus(c *fiber.Ctx) error {
	if s.OnStatus == nil {
		return notWired(c)
	}
	return c.JSON(s.OnStatus())
}

// SetModeRequest is the body for POST /api/mode.
type SetModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSetMode(c *fiber.Ctx) error {
	if s.OnSetMode == nil {
		return notWired(c)
	}

	var req SetModeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	mode, err := eyes.ParseMode(req.Mode)
	if err != nil {
		return badRequest(c, "unknown mode "+req.Mode)
	}
	if err := s.OnSetMode(mode); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"mode": mode.String()})
}

func (s *Server) handleTuning(c *fiber.Ctx) error {
	if s.OnTuning == nil {
		return notWired(c)
	}
	return c.JSON(s.OnTuning())
}

func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	if s.OnTuning == nil || s.OnSetTuning == nil {
		return notWired(c)
	}

	// Start from the live config so partial bodies tweak, not reset.
	cfg := s.OnTuning()
	if err := c.BodyParser(&cfg); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := cfg.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := s.OnSetTuning(cfg); err != nil {
		return internalError(c, err)
	}
	return c.JSON(cfg)
}

func (s *Server) handleLEDState(c *fiber.Ctx) error {
	if s.OnLEDState == nil {
		return notWired(c)
	}
	return c.JSON(s.OnLEDState())
}

func (s *Server) handleSetLEDs(c *fiber.Ctx) error {
	if s.OnSetLEDs == nil {
		return notWired(c)
	}

	var req LEDRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := s.OnSetLEDs(req); err != nil {
		return badRequest(c, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handlePlaySound(c *fiber.Ctx) error {
	if s.OnPlaySound == nil {
		return notWired(c)
	}

	cat := audio.Category(c.Params("category"))
	if err := s.OnPlaySound(cat); err != nil {
		if errors.Is(err, audio.ErrUnknownCategory) || errors.Is(err, audio.ErrNoSounds) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"category": string(cat)})
}

// handleStateWS streams status snapshots. The first message is the current
// status so a fresh client doesn't wait for the next tick.
func (s *Server) handleStateWS(c *websocket.Conn) {
	if s.OnStatus != nil {
		c.WriteJSON(s.OnStatus())
	}
	hub.NewClient(s.stateHub, c).Run()
}

// handleFramesWS streams binary JPEG frames for one eye.
func (s *Server) handleFramesWS(c *websocket.Conn) {
	h, ok := s.frameHubs[c.Params("eye")]
	if !ok {
		c.Close()
		return
	}
	hub.NewClient(h, c).Run()
}

func notWired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "not wired",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler answers liveness probes on the versioned API.
type HealthHandler struct {
	Version string
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		Version: version,
		started: time.Now(),
	}
}

// Check returns the service identity and uptime.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"service": "Live Bus Tracking API",
		"version": h.Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

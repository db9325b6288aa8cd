package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to the liveness probe.
type HealthHandler struct {
	version string
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	})
}

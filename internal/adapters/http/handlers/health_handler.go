package handlers

import (
	"context"
	"time"

	"bookloan/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg  *config.Config
	ping func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. ping checks the configured store.
func NewHealthHandler(cfg *config.Config, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{cfg: cfg, ping: ping}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "bookloan API is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and store health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	overall, storeStatus := "ok", "healthy"
	status := fiber.StatusOK
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			overall, storeStatus = "degraded", "unhealthy"
			status = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"api":   "healthy",
			"store": storeStatus,
			"mode":  h.cfg.AppMode,
		},
	})
}

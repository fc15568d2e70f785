package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler builds a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live reports that the process is up.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "ok", fiber.Map{"status": "live"})
}

// Ready reports whether the database answers.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return utils.SendSuccess(c, "ok", fiber.Map{"status": "ready"})
}

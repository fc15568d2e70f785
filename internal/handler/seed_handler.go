package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// SeedHandler populates demo data. Registered only in development.
type SeedHandler struct {
	seed   service.SeedService
	logger zerolog.Logger
}

// NewSeedHandler builds a new seed handler.
func NewSeedHandler(seed service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		seed:   seed,
		logger: logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Seed creates the demo organization and accounts.
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	if err := h.seed.Seed(c.UserContext()); err != nil {
		return sendServiceError(c, err)
	}
	return utils.SendSuccess(c, "demo data seeded", nil)
}

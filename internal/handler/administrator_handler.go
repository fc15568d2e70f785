package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// AdministratorHandler serves the administrator surface.
type AdministratorHandler struct {
	administrators service.AdministratorService
	logger         zerolog.Logger
}

// NewAdministratorHandler builds a new administrator handler.
func NewAdministratorHandler(administrators service.AdministratorService, logger zerolog.Logger) *AdministratorHandler {
	return &AdministratorHandler{
		administrators: administrators,
		logger:         logger.With().Str("component", "administrator_handler").Logger(),
	}
}

// List returns the administrators of the caller's organization.
func (h *AdministratorHandler) List(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	administrators, err := h.administrators.List(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "administrators", administrators)
}

// Show returns a single administrator.
func (h *AdministratorHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	administrator, err := h.administrators.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "administrator", administrator)
}

// Update modifies an administrator account.
func (h *AdministratorHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.UserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	administrator, err := h.administrators.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "administrator updated", administrator)
}

// Delete removes an administrator account.
func (h *AdministratorHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.administrators.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "administrator deleted", nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// OrganizationHandler serves the organization surface, including the cached
// overview endpoint.
type OrganizationHandler struct {
	organizations service.OrganizationService
	overview      service.OverviewService
	logger        zerolog.Logger
}

// NewOrganizationHandler builds a new organization handler.
func NewOrganizationHandler(organizations service.OrganizationService, overview service.OverviewService, logger zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		organizations: organizations,
		overview:      overview,
		logger:        logger.With().Str("component", "organization_handler").Logger(),
	}
}

// List is reserved; the gate denies everyone.
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	organizations, err := h.organizations.List(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organizations", organizations)
}

// Create is reserved; the gate denies everyone.
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	organization, err := h.organizations.Create(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "organization created", organization)
}

// Show returns a single organization.
func (h *OrganizationHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	organization, err := h.organizations.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organization", organization)
}

// Update modifies an organization's details.
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.OrganizationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	organization, err := h.organizations.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organization updated", organization)
}

// Delete is reserved; the gate denies everyone.
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.organizations.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organization deleted", nil)
}

// Overview returns aggregated activity counts for an organization.
func (h *OrganizationHandler) Overview(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	overview, err := h.overview.Overview(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organization overview", overview)
}

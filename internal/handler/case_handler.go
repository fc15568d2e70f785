package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// CaseHandler serves the report-case surface, including filing reports into
// an existing case.
type CaseHandler struct {
	cases   service.CaseService
	reports service.ReportService
	logger  zerolog.Logger
}

// NewCaseHandler builds a new case handler.
func NewCaseHandler(cases service.CaseService, reports service.ReportService, logger zerolog.Logger) *CaseHandler {
	return &CaseHandler{
		cases:   cases,
		reports: reports,
		logger:  logger.With().Str("component", "case_handler").Logger(),
	}
}

// List returns the cases of the caller's organization.
func (h *CaseHandler) List(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	cases, err := h.cases.List(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "cases", cases)
}

// Create opens a new case under the caller's organization.
func (h *CaseHandler) Create(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	var payload dto.CaseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.cases.Create(c.UserContext(), caller, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "case created", created)
}

// Show returns a single case.
func (h *CaseHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	reportCase, err := h.cases.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "case", reportCase)
}

// Update renames a case.
func (h *CaseHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.CaseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.cases.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "case updated", updated)
}

// Delete removes a case; its reports remain.
func (h *CaseHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.cases.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "case deleted", nil)
}

// Reports returns the reports filed under a case.
func (h *CaseHandler) Reports(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	reports, err := h.cases.Reports(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "case reports", reports)
}

// CreateReport files a report into an existing case.
func (h *CaseHandler) CreateReport(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.ReportCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.reports.Create(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report created", created)
}

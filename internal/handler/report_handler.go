package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// ReportHandler serves the report surface: filing, triage, moving between
// cases and the message thread.
type ReportHandler struct {
	reports  service.ReportService
	messages service.MessageService
	logger   zerolog.Logger
}

// NewReportHandler builds a new report handler.
func NewReportHandler(reports service.ReportService, messages service.MessageService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		messages: messages,
		logger:   logger.With().Str("component", "report_handler").Logger(),
	}
}

// List returns all reports of the caller's organization.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.List(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "reports", reports)
}

// Create files a report into a fresh unnamed case.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	var payload dto.ReportCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.reports.CreateInNewCase(c.UserContext(), caller, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report created", created)
}

// Show returns a single report.
func (h *ReportHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	report, err := h.reports.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report", report)
}

// Update modifies a report.
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.ReportUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.reports.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report updated", updated)
}

// Delete removes a report; its messages remain.
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.reports.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report deleted", nil)
}

// Move re-parents a report into another case.
func (h *ReportHandler) Move(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.ReportMoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	moved, err := h.reports.Move(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report moved", moved)
}

// Open stamps a report as taken under handling.
func (h *ReportHandler) Open(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	opened, err := h.reports.Open(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report opened", opened)
}

// Close stamps a report as resolved.
func (h *ReportHandler) Close(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	closed, err := h.reports.Close(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report closed", closed)
}

// Messages returns the message thread of a report.
func (h *ReportHandler) Messages(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	messages, err := h.reports.Messages(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "report messages", messages)
}

// CreateMessage posts a message on a report.
func (h *ReportHandler) CreateMessage(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.MessageCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.messages.Create(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message created", created)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// TeacherHandler serves the teacher surface.
type TeacherHandler struct {
	teachers service.TeacherService
	logger   zerolog.Logger
}

// NewTeacherHandler builds a new teacher handler.
func NewTeacherHandler(teachers service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		teachers: teachers,
		logger:   logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// List returns the teachers of the caller's organization.
func (h *TeacherHandler) List(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	teachers, err := h.teachers.List(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "teachers", teachers)
}

// Show returns a single teacher.
func (h *TeacherHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	teacher, err := h.teachers.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "teacher", teacher)
}

// Update modifies a teacher account.
func (h *TeacherHandler) Update(c *fiber.Ctx) error {
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

	teacher, err := h.teachers.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "teacher updated", teacher)
}

// Delete removes a teacher account.
func (h *TeacherHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.teachers.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "teacher deleted", nil)
}

// Reports returns the reports a teacher has filed themself.
func (h *TeacherHandler) Reports(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	reports, err := h.teachers.Reports(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "teacher reports", reports)
}

// AssignedReports returns the reports a teacher handles.
func (h *TeacherHandler) AssignedReports(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	reports, err := h.teachers.AssignedReports(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "assigned reports", reports)
}

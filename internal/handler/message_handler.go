package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// MessageHandler serves standalone message operations; posting and listing
// happen on the report surface.
type MessageHandler struct {
	messages service.MessageService
	logger   zerolog.Logger
}

// NewMessageHandler builds a new message handler.
func NewMessageHandler(messages service.MessageService, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		logger:   logger.With().Str("component", "message_handler").Logger(),
	}
}

// Show returns a single message.
func (h *MessageHandler) Show(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	message, err := h.messages.Show(c.UserContext(), caller, id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "message", message)
}

// Update edits a message.
func (h *MessageHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	var payload dto.MessageUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.messages.Update(c.UserContext(), caller, id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "message updated", updated)
}

// Delete removes a message.
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return sendServiceError(c, err)
	}

	if err := h.messages.Delete(c.UserContext(), caller, id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "message deleted", nil)
}

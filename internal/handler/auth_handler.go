package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

// AuthHandler serves registration, login and the caller's own profile.
type AuthHandler struct {
	auth   service.AuthService
	logger zerolog.Logger
}

// NewAuthHandler builds a new auth handler.
func NewAuthHandler(auth service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register creates a new student account and returns a bearer token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	token, err := h.auth.Register(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", token)
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	token, err := h.auth.Login(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "logged in", token)
}

// Profile returns the caller's own account.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	profile, err := h.auth.Profile(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "profile", profile)
}

// ProfileOrganization returns the caller's own organization.
func (h *AuthHandler) ProfileOrganization(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	organization, err := h.auth.ProfileOrganization(c.UserContext(), caller)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "organization", organization)
}

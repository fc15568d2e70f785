package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/middleware"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

var errBadID = errors.New("invalid id parameter")

// requireCaller returns the authenticated caller. Routes reaching a handler
// without the auth middleware are a wiring bug and answer 401.
func requireCaller(c *fiber.Ctx) (authz.Caller, error) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return authz.Caller{}, fiber.ErrUnauthorized
	}
	return caller, nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}

// sendServiceError maps service sentinels onto the HTTP surface. Unknown
// errors answer 500 without leaking the cause.
func sendServiceError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.SendValidationError(c, validationErrs)
	}

	switch {
	case errors.Is(err, errBadID):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id parameter")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendFieldError(c, "email", "email is already taken")
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCaseNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidAPIKey):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid api key")
	case errors.Is(err, service.ErrSeedingDisabled):
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

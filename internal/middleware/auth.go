package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/utils"
)

const callerLocalsKey = "caller"

// Protected returns a middleware that validates JWT bearer tokens and
// resolves the caller triple (user id, role, organization id) from the
// claims. Handlers behind it can rely on CallerFromContext succeeding.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		caller, err := callerFromClaims(claims)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		c.Locals(callerLocalsKey, caller)

		return c.Next()
	}
}

// CallerFromContext returns the caller resolved by Protected. The boolean is
// false on routes that never went through the middleware.
func CallerFromContext(c *fiber.Ctx) (authz.Caller, bool) {
	value := c.Locals(callerLocalsKey)
	if value == nil {
		return authz.Caller{}, false
	}
	caller, ok := value.(authz.Caller)
	return caller, ok
}

func callerFromClaims(claims jwt.MapClaims) (authz.Caller, error) {
	id, err := claimUint(claims, "sub")
	if err != nil {
		return authz.Caller{}, err
	}

	roleValue, err := claimUint(claims, "role")
	if err != nil {
		return authz.Caller{}, err
	}
	role, err := models.ParseRole(int(roleValue))
	if err != nil {
		return authz.Caller{}, err
	}

	organizationID, err := claimUint(claims, "org_id")
	if err != nil {
		return authz.Caller{}, err
	}

	return authz.Caller{ID: id, Role: role, OrganizationID: organizationID}, nil
}

func claimUint(claims jwt.MapClaims, key string) (uint, error) {
	value, ok := claims[key]
	if !ok {
		return 0, fmt.Errorf("claim %q missing", key)
	}
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("claim %q negative", key)
		}
		return uint(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("claim %q negative", key)
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("claim %q has unsupported type", key)
	}
}

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"moobee_backend/internals/configs"
)

// Public paths skipped by auth (health checks etc.)
var skipPaths = map[string]struct{}{
	"/health": {},
	"/":       {},
}

// AuthMiddleware verifies the bearer token and stores the resolved
// identity in Locals: user_id, tenant_id, employee_id, role.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		for claim, local := range map[string]string{
			"user_id":     "user_id",
			"tenant_id":   "tenant_id",
			"employee_id": "employee_id",
			"role":        "role",
		} {
			if v, ok := claims[claim].(string); ok && v != "" {
				c.Locals(local, v)
			}
		}

		if c.Locals("tenant_id") == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - tenant missing from token")
		}

		return c.Next()
	}
}

// RequireRole guards admin-only surfaces. A generic 403 keeps entity
// existence undisclosed, cross-tenant attempts included.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

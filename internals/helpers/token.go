package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// --- small util so claim parsing is not duplicated per accessor ---
func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" empty in token")
		}
		return uuid.Parse(strings.TrimSpace(s))
	}
	if u, ok := v.(uuid.UUID); ok {
		return u, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" format in token")
}

// === Tenant scope (every query filters on this) ===
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "tenant_id")
}

// === Caller identity ===
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "user_id")
}

// === Caller's employee record (set when the account maps to an employee) ===
func GetEmployeeIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "employee_id")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals("role").(string); ok {
		return s
	}
	return ""
}

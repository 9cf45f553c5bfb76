package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Stable error codes surfaced in the error envelope.
const (
	CodeValidation               = "VALIDATION"
	CodeNotFound                 = "NOT_FOUND"
	CodeForbidden                = "FORBIDDEN"
	CodeTemplateInUse            = "TEMPLATE_IN_USE"
	CodeDuplicateCampaign        = "DUPLICATE_CAMPAIGN"
	CodeCampaignAlreadyCancelled = "CAMPAIGN_ALREADY_CANCELLED"
	CodeAlreadyCompleted         = "ALREADY_COMPLETED"
	CodeIncompleteResponse       = "INCOMPLETE_RESPONSE"
	CodeGenerationIncomplete     = "GENERATION_INCOMPLETE"
	CodeScoringFailed            = "SCORING_FAILED"
	CodeInternal                 = "INTERNAL"
)

// ✅ Success envelope (default 200)
func Success(c *fiber.Ctx, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, data)
}

// ✅ Success envelope with custom status (e.g. 201 created)
func SuccessWithCode(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ✅ Error envelope
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ✅ Error envelope with a details payload (field errors, ids, etc.)
func ErrorWithDetails(c *fiber.Ctx, status int, code, message string, details interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// ✅ validator.v10 errors → field map
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, CodeValidation, "Invalid input")
	}

	fields := make(map[string]string)
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, CodeValidation, "Validation failed", fields)
}

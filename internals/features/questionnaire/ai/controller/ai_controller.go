// file: internals/features/questionnaire/ai/controller/ai_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiService "moobee_backend/internals/features/questionnaire/ai/service"
	ledgerService "moobee_backend/internals/features/questionnaire/llmusage/service"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
	helper "moobee_backend/internals/helpers"
)

type AIController struct {
	Generator *aiService.Generator
	Validator *validator.Validate
	Family    string
}

func NewAIController(db *gorm.DB, family string) *AIController {
	return &AIController{
		Generator: aiService.NewGenerator(aiService.NewProviderClient(), ledgerService.NewLedger(db)),
		Validator: validator.New(),
		Family:    family,
	}
}

// POST /:family/ai/generate-questions
// {type, count, language, suggestedRoles, description, provider, model, temperature, maxTokens}
func (ctl *AIController) GenerateQuestions(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req aiService.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if templateModel.FamilyOf(req.Kind) != ctl.Family {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "type does not belong to this questionnaire family")
	}

	result, err := ctl.Generator.Generate(c.UserContext(), tenantID, userID, req)
	if err != nil {
		if errors.Is(err, aiService.ErrGenerationIncomplete) {
			return helper.ErrorWithDetails(c, http.StatusUnprocessableEntity, helper.CodeGenerationIncomplete,
				"Provider did not return the requested number of valid questions",
				fiber.Map{"requested": req.Count})
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Question generation failed")
	}

	return helper.Success(c, fiber.Map{
		"questions": result.Questions,
		"aiConfig":  result.AIConfig,
		"usage":     result.Usage,
		"fallback":  result.Fallback,
	})
}

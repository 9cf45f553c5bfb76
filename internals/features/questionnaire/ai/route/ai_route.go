// file: internals/features/questionnaire/ai/route/ai_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moobee_backend/internals/constants"
	aiCtrl "moobee_backend/internals/features/questionnaire/ai/controller"
	"moobee_backend/internals/middlewares"
)

// AIRoutes mounts question generation. The endpoint burns provider
// tokens, so it carries its own tight rate limit on top of role gating.
func AIRoutes(r fiber.Router, db *gorm.DB, family string) {
	ctl := aiCtrl.NewAIController(db, family)

	g := r.Group("/ai",
		middlewares.RequireRole(constants.ManagerAndAbove...),
		middlewares.AIGenerationRateLimiter(),
	)
	g.Post("/generate-questions", ctl.GenerateQuestions)
}

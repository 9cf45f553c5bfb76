// file: internals/features/questionnaire/llmusage/route/llm_usage_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moobee_backend/internals/constants"
	usageCtrl "moobee_backend/internals/features/questionnaire/llmusage/controller"
	"moobee_backend/internals/middlewares"
)

// LLMUsageRoutes mounts the token ledger for cost review.
func LLMUsageRoutes(r fiber.Router, db *gorm.DB) {
	ctl := usageCtrl.NewLLMUsageController(db)

	g := r.Group("/admin", middlewares.RequireRole(constants.AdminAndAbove...))
	g.Get("/llm-usage", ctl.List)
}

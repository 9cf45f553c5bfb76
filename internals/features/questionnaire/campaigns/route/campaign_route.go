// file: internals/features/questionnaire/campaigns/route/campaign_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moobee_backend/internals/constants"
	campaignCtrl "moobee_backend/internals/features/questionnaire/campaigns/controller"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
	"moobee_backend/internals/middlewares"
)

// CampaignRoutes mounts the campaign planner. Everything here is a
// manager operation; employees only see campaigns through their own
// assignments.
func CampaignRoutes(r fiber.Router, db *gorm.DB, family string, dispatcher notifService.Dispatcher) {
	ctl := campaignCtrl.NewCampaignController(db, family, dispatcher)

	g := r.Group("/campaigns", middlewares.RequireRole(constants.ManagerAndAbove...))
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Post("/check-conflicts", ctl.CheckConflicts)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/stats", ctl.Stats)
	g.Post("/:id/cancel", ctl.Cancel)
}

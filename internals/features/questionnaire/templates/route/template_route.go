// file: internals/features/questionnaire/templates/route/template_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moobee_backend/internals/constants"
	tplCtrl "moobee_backend/internals/features/questionnaire/templates/controller"
	"moobee_backend/internals/middlewares"
)

// TemplateRoutes mounts the template registry under one family group.
// Reads are open to every authenticated member; mutations are reserved
// for managers and above.
func TemplateRoutes(r fiber.Router, db *gorm.DB, family string) {
	ctl := tplCtrl.NewTemplateController(db, family)

	g := r.Group("/templates")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)

	manage := middlewares.RequireRole(constants.ManagerAndAbove...)
	g.Post("/", manage, ctl.Create)
	g.Put("/:id", manage, ctl.Update)
	g.Delete("/:id", manage, ctl.Delete)
	g.Post("/:id/publish", manage, ctl.Publish)
	g.Post("/:id/unpublish", manage, ctl.Unpublish)
	g.Post("/:id/duplicate", manage, ctl.Duplicate)
}

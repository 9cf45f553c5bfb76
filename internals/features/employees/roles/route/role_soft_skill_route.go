// file: internals/features/employees/roles/route/role_soft_skill_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moobee_backend/internals/constants"
	roleCtrl "moobee_backend/internals/features/employees/roles/controller"
	"moobee_backend/internals/middlewares"
)

// RoleSoftSkillRoutes mounts the role soft-skill policy editor.
func RoleSoftSkillRoutes(r fiber.Router, db *gorm.DB) {
	ctl := roleCtrl.NewRoleSoftSkillController(db)

	g := r.Group("/roles", middlewares.RequireRole(constants.ManagerAndAbove...))
	g.Get("/:roleId/soft-skills", ctl.List)
	g.Put("/:roleId/soft-skills", ctl.Put)
}

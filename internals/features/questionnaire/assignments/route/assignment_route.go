// file: internals/features/questionnaire/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentCtrl "moobee_backend/internals/features/questionnaire/assignments/controller"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
)

// AssignmentRoutes mounts the employee-facing surface: open
// assignments, submission and the latest computed result.
func AssignmentRoutes(r fiber.Router, db *gorm.DB, family string, dispatcher notifService.Dispatcher) {
	ctl := assignmentCtrl.NewAssignmentController(db, family, dispatcher)

	r.Get("/my-assignments", ctl.ListMine)
	r.Post("/assignments/:id/submit", ctl.Submit)
	r.Get("/my-latest-result", ctl.MyLatestResult)
}

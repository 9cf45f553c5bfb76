// file: internals/route/routes.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	databases "moobee_backend/internals/databases"
	roleRoute "moobee_backend/internals/features/employees/roles/route"
	aiRoute "moobee_backend/internals/features/questionnaire/ai/route"
	assignmentRoute "moobee_backend/internals/features/questionnaire/assignments/route"
	campaignRoute "moobee_backend/internals/features/questionnaire/campaigns/route"
	usageRoute "moobee_backend/internals/features/questionnaire/llmusage/route"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
	templateRoute "moobee_backend/internals/features/questionnaire/templates/route"
	"moobee_backend/internals/middlewares"
)

var startTime time.Time

// SetupRoutes wires the whole HTTP surface. The questionnaire feature
// set is mounted twice over shared controllers, once per family, so
// /assessments/... and /engagement/... stay symmetric.
func SetupRoutes(app *fiber.App, db *gorm.DB, dispatcher notifService.Dispatcher) {
	startTime = time.Now()

	BaseRoutes(app)

	auth := middlewares.AuthMiddleware()

	for _, mount := range []struct {
		prefix string
		family string
	}{
		{"/assessments", templateModel.FamilyAssessment},
		{"/engagement", templateModel.FamilyEngagement},
	} {
		log.Printf("[INFO] Mounting %s routes...", mount.prefix)
		g := app.Group(mount.prefix, auth)
		templateRoute.TemplateRoutes(g, db, mount.family)
		aiRoute.AIRoutes(g, db, mount.family)
		campaignRoute.CampaignRoutes(g, db, mount.family, dispatcher)
		assignmentRoute.AssignmentRoutes(g, db, mount.family, dispatcher)
	}

	authed := app.Group("", auth)

	log.Println("[INFO] Mounting role policy routes...")
	roleRoute.RoleSoftSkillRoutes(authed, db)

	log.Println("[INFO] Mounting LLM usage routes...")
	usageRoute.LLMUsageRoutes(authed, db)
}

// BaseRoutes exposes the unauthenticated liveness surface.
func BaseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := databases.DB.DB()
		dbStatus := "connected"
		serverStatus := "ok"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "database connection error"
			serverStatus = "down"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}

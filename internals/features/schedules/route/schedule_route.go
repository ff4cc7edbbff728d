// file: internals/features/schedules/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "scheduleku_backend/internals/features/schedules/controller"
	authMiddleware "scheduleku_backend/internals/middlewares/auth"
)

func ScheduleRoutes(app *fiber.App, db *gorm.DB) {
	scheduleController := controller.NewScheduleController(db)

	schedules := app.Group("/api/schedules", authMiddleware.AuthMiddleware(db))

	// static paths first so they never match :id
	schedules.Get("/statistics", scheduleController.Statistics)
	schedules.Get("/protected", scheduleController.Protected)

	schedules.Get("/", scheduleController.List)
	schedules.Post("/", scheduleController.Create)

	schedules.Get("/:id", scheduleController.GetByID)
	schedules.Put("/:id", scheduleController.Update)
	schedules.Patch("/:id", scheduleController.Update)
	schedules.Delete("/:id", scheduleController.Delete)
}

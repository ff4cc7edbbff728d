package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleRoute "scheduleku_backend/internals/features/schedules/route"
)

func ScheduleRoutes(app *fiber.App, db *gorm.DB) {

	scheduleRoute.ScheduleRoutes(app, db)

}

package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "scheduleku_backend/internals/features/users/user/route"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {

	userRoute.UserRoutes(app, db)

}

// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "scheduleku_backend/internals/features/users/user/controller"
	authMiddleware "scheduleku_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	profileController := controller.NewUserProfileController(db)

	profile := app.Group("/api/auth/profile", authMiddleware.AuthMiddleware(db))

	profile.Get("/", profileController.GetProfile)
	profile.Put("/", profileController.UpdateProfile)
	profile.Patch("/", profileController.PatchProfile)
}

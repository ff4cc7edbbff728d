package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"scheduleku_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware stack for the app.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

package authRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "stockwatch/controllers/auth"
	authValidator "stockwatch/validators/auth"
)

// SetupAuthRoutes sets up user signup and login routes
func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userGroup := app.Group("/api/users")

	userGroup.Post("/signup", authValidator.Signup(), authController.Signup(db))
	userGroup.Post("/login", authValidator.Login(), authController.Login(db))
}

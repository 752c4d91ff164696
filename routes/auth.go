package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
)

// SetupAuthRoutes configures all authentication related routes.
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController, protected fiber.Handler) {
	group := app.Group("/auth")

	// Public routes
	group.Post("/login", auth.Login)
	group.Post("/register", auth.Register)
	group.Post("/refresh", auth.Refresh)

	// Protected routes
	group.Get("/me", protected, auth.Me)
	group.Post("/profile", protected, auth.SaveProfile)
	group.Post("/logout", protected, auth.Logout)
}

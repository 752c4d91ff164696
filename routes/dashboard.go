package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
)

// SetupDashboardRoutes configures the role-filtered overview endpoint.
func SetupDashboardRoutes(app *fiber.App, dashboard *controllers.DashboardController, protected fiber.Handler) {
	app.Get("/dashboard", protected, dashboard.Overview)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupAppointmentRoutes configures the HR scheduling surface.
func SetupAppointmentRoutes(app *fiber.App, appointments *controllers.AppointmentController, protected fiber.Handler) {
	hrOnly := middleware.RequireRole(models.RoleHR)

	group := app.Group("/appointments", protected, hrOnly)
	group.Get("/", appointments.GetAll)
	group.Get("/:id", appointments.Get)
	group.Post("/", appointments.Create)
	group.Patch("/:id", appointments.Update)
	group.Patch("/:id/status", appointments.ChangeStatus)
	group.Delete("/:id", appointments.Delete)
}

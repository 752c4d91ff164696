package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers/dentist"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupDentistRoutes configures the dentist-facing flow.
func SetupDentistRoutes(app *fiber.App, ct *dentist.Controller, protected fiber.Handler) {
	group := app.Group("/dentist", protected, middleware.RequireRole(models.RoleDentist))

	group.Get("/appointments/upcoming", ct.Upcoming)
	group.Get("/appointments/history", ct.History)
	group.Patch("/appointments/:id/approve", ct.Approve)
	group.Patch("/appointments/:id/reject", ct.Reject)
	group.Patch("/appointments/:id/complete", ct.Complete)
	group.Get("/payments", ct.Payments)
	group.Get("/earnings", ct.Earnings)
}

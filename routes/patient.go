package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers/patient"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupPatientRoutes configures the patient portal.
func SetupPatientRoutes(app *fiber.App, ct *patient.Controller, protected fiber.Handler) {
	group := app.Group("/patient", protected, middleware.RequireRole(models.RolePatient))

	group.Get("/appointments", ct.Appointments)
	group.Delete("/appointments/:id", ct.Cancel)
	group.Get("/payments", ct.Payments)
	group.Get("/payments/balance", ct.Balance)
	group.Get("/profile", ct.Profile)
	group.Patch("/profile", ct.UpdateProfile)
	group.Post("/profile/picture", ct.UpdatePicture)
}

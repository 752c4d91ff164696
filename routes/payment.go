package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupPaymentRoutes configures the HR payment ledger.
func SetupPaymentRoutes(app *fiber.App, payments *controllers.PaymentController, protected fiber.Handler) {
	hrOnly := middleware.RequireRole(models.RoleHR)

	group := app.Group("/payments", protected, hrOnly)
	group.Get("/", payments.GetAll)
	group.Get("/export", payments.Export)
	group.Get("/patient/:patientId", payments.GetByPatient)
	group.Get("/patient/:patientId/balance", payments.GetPatientBalance)
	group.Post("/", payments.Create)
	group.Patch("/:id", payments.Update)
	group.Delete("/:id", payments.Delete)
}

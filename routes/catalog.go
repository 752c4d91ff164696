package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupCatalogRoutes configures patient, dentist and treatment management.
// Listings are readable by any authenticated role; mutations are HR-only.
func SetupCatalogRoutes(
	app *fiber.App,
	patients *controllers.PatientController,
	dentists *controllers.DentistController,
	treatments *controllers.TreatmentController,
	protected fiber.Handler,
) {
	hrOnly := middleware.RequireRole(models.RoleHR)

	patientGroup := app.Group("/patients", protected)
	patientGroup.Get("/", hrOnly, patients.GetAll)
	patientGroup.Get("/:id", hrOnly, patients.Get)
	patientGroup.Post("/", hrOnly, patients.Create)
	patientGroup.Patch("/:id", hrOnly, patients.Update)
	patientGroup.Delete("/:id", hrOnly, patients.Delete)

	dentistGroup := app.Group("/dentists", protected)
	dentistGroup.Get("/", dentists.GetAll)
	dentistGroup.Get("/:id", dentists.Get)
	dentistGroup.Post("/", hrOnly, dentists.Create)
	dentistGroup.Patch("/:id", hrOnly, dentists.Update)
	dentistGroup.Delete("/:id", hrOnly, dentists.Delete)

	treatmentGroup := app.Group("/treatments", protected)
	treatmentGroup.Get("/", treatments.GetAll)
	treatmentGroup.Get("/:id", treatments.Get)
	treatmentGroup.Post("/", hrOnly, treatments.Create)
	treatmentGroup.Patch("/:id", hrOnly, treatments.Update)
	treatmentGroup.Delete("/:id", hrOnly, treatments.Delete)
}

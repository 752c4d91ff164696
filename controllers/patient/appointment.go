// Package patient implements the patient-facing portal: own appointments,
// payment history and profile upkeep.
package patient

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

// pictureUploader pushes profile images to the media store.
type pictureUploader interface {
	Upload(ctx context.Context, file interface{}, publicID, folder string) (string, error)
}

type Controller struct {
	DB       *gorm.DB
	InFlight *utils.InFlightSet
	Uploader pictureUploader
}

// currentPatient resolves the patient row behind the session email.
func (ct *Controller) currentPatient(c *fiber.Ctx) (*models.Patient, error) {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("email not found in session")
	}
	var patient models.Patient
	if err := ct.DB.Where("LOWER(email) = LOWER(?)", email).First(&patient).Error; err != nil {
		return nil, fmt.Errorf("no patient record for %s: %w", email, err)
	}
	return &patient, nil
}

// Appointments lists the patient's own appointments with dentist display
// fields.
func (ct *Controller) Appointments(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointments []models.Appointment
	if err := ct.DB.Preload("Dentist").Preload("Treatment").
		Where("patient_id = ?", patient.ID).
		Order("date desc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(appointments)
}

// Cancel removes the patient's own appointment row permanently. There is no
// soft-cancel in this flow: the record is deleted, matching the HR delete
// behavior.
func (ct *Controller) Cancel(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	id := c.Params("id")
	key := "appointment:" + id
	if !ct.InFlight.TryAcquire(key) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Appointment is already being processed",
		})
	}
	defer ct.InFlight.Release(key)

	var appointment models.Appointment
	if err := ct.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.PatientID != patient.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Appointment belongs to another patient",
		})
	}

	if err := ct.DB.Unscoped().Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

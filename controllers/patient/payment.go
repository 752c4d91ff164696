package patient

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/models"
)

// Payments lists the patient's payment history. Degrades to an empty list on
// backend failure.
func (ct *Controller) Payments(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var payments []models.Payment
	if err := ct.DB.Where("patient_id = ?", patient.ID).
		Order("date desc").Find(&payments).Error; err != nil {
		log.Printf("payments: degrading read for patient %d: %v", patient.ID, err)
		payments = []models.Payment{}
	}
	return c.JSON(payments)
}

// Balance returns the patient's paid/outstanding aggregate.
func (ct *Controller) Balance(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var payments []models.Payment
	if err := ct.DB.Select("amount", "status").
		Where("patient_id = ?", patient.ID).Find(&payments).Error; err != nil {
		log.Printf("payments: degrading balance read for patient %d: %v", patient.ID, err)
		payments = nil
	}
	return c.JSON(models.ComputePatientBalance(payments))
}

package dentist

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/models"
)

// Payments lists the dentist's payment rows with patient display fields.
// Reads degrade to an empty list on backend failure so the earnings page
// still renders.
func (ct *Controller) Payments(c *fiber.Ctx) error {
	dentist, err := ct.currentDentist(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var payments []models.Payment
	if err := ct.DB.Preload("Patient").
		Where("dentist_id = ?", dentist.ID).
		Order("date desc").Find(&payments).Error; err != nil {
		log.Printf("earnings: degrading payments read for dentist %d: %v", dentist.ID, err)
		payments = []models.Payment{}
	}
	return c.JSON(payments)
}

// Earnings returns the dentist's ledger aggregate.
func (ct *Controller) Earnings(c *fiber.Ctx) error {
	dentist, err := ct.currentDentist(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var payments []models.Payment
	if err := ct.DB.Select("amount", "status").
		Where("dentist_id = ?", dentist.ID).Find(&payments).Error; err != nil {
		log.Printf("earnings: degrading aggregate read for dentist %d: %v", dentist.ID, err)
		payments = nil
	}
	return c.JSON(models.ComputeDentistEarnings(payments))
}

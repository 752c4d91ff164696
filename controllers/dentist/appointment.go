// Package dentist implements the dentist-facing appointment flow: review
// pending requests, approve or reject them, and mark visits completed.
package dentist

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

type Controller struct {
	DB       *gorm.DB
	InFlight *utils.InFlightSet
}

// currentDentist resolves the dentist row behind the session email.
func (ct *Controller) currentDentist(c *fiber.Ctx) (*models.Dentist, error) {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("email not found in session")
	}
	var dentist models.Dentist
	if err := ct.DB.Where("LOWER(email) = LOWER(?)", email).First(&dentist).Error; err != nil {
		return nil, fmt.Errorf("no dentist record for %s: %w", email, err)
	}
	return &dentist, nil
}

// Upcoming lists the dentist's pending and confirmed appointments.
func (ct *Controller) Upcoming(c *fiber.Ctx) error {
	dentist, err := ct.currentDentist(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointments []models.Appointment
	if err := ct.DB.Preload("Patient").Preload("Treatment").
		Where("dentist_id = ?", dentist.ID).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("date asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// History lists the dentist's settled appointments.
func (ct *Controller) History(c *fiber.Ctx) error {
	dentist, err := ct.currentDentist(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointments []models.Appointment
	if err := ct.DB.Preload("Patient").Preload("Treatment").
		Where("dentist_id = ?", dentist.ID).
		Where("status IN ?", []models.AppointmentStatus{
			models.StatusCompleted, models.StatusCancelled, models.StatusRejected,
		}).
		Order("date desc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// Approve moves a pending appointment to confirmed. Approval never completes
// the visit; Complete is a separate explicit action. An unassigned appointment
// is claimed by the approving dentist.
func (ct *Controller) Approve(c *fiber.Ctx) error {
	return ct.withAppointment(c, func(dentist *models.Dentist, appointment *models.Appointment) error {
		if appointment.DentistID == nil {
			appointment.DentistID = &dentist.ID
		}
		return appointment.UpdateStatus(ct.DB, models.StatusConfirmed)
	})
}

// Reject declines a pending appointment and records the reason in the notes.
func (ct *Controller) Reject(c *fiber.Ctx) error {
	type rejectInput struct {
		Reason string `json:"reason"`
	}
	input := new(rejectInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	return ct.withAppointment(c, func(_ *models.Dentist, appointment *models.Appointment) error {
		appointment.Notes = input.Reason
		return appointment.UpdateStatus(ct.DB, models.StatusRejected)
	})
}

// Complete marks a confirmed appointment completed and then records the
// payment for the visit. An unassigned appointment is claimed by the
// completing dentist so the payment and the appointment name the same
// dentist. The status change is the durable effect; payment creation is
// best-effort and a failure there is logged, never surfaced and never rolled
// back.
func (ct *Controller) Complete(c *fiber.Ctx) error {
	return ct.withAppointment(c, func(dentist *models.Dentist, appointment *models.Appointment) error {
		if appointment.DentistID == nil {
			appointment.DentistID = &dentist.ID
		}
		if err := appointment.UpdateStatus(ct.DB, models.StatusCompleted); err != nil {
			return err
		}
		ct.recordCompletionPayment(appointment, dentist.ID)
		return nil
	})
}

// withAppointment loads the addressed appointment, checks it belongs to the
// calling dentist and runs mutate under an in-flight guard so rapid repeat
// clicks cannot race each other.
func (ct *Controller) withAppointment(c *fiber.Ctx, mutate func(*models.Dentist, *models.Appointment) error) error {
	dentist, err := ct.currentDentist(c)
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
	if appointment.DentistID != nil && *appointment.DentistID != dentist.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Appointment is assigned to another dentist",
		})
	}

	if err := mutate(dentist, &appointment); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidTransition) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(appointment)
}

// recordCompletionPayment inserts the at-most-once payment for a completed
// appointment: cash, fully paid, dated today.
func (ct *Controller) recordCompletionPayment(appointment *models.Appointment, dentistID uint) {
	payment := models.Payment{
		PatientID:     appointment.PatientID,
		DentistID:     &dentistID,
		AppointmentID: &appointment.ID,
		Amount:        ct.resolveAmount(appointment),
		Method:        "cash",
		Status:        models.PaymentPaid,
		Description:   "Payment for " + appointment.Service,
		Date:          time.Now(),
	}
	if err := ct.DB.Create(&payment).Error; err != nil {
		log.Printf("failed to record payment for appointment %d: %v", appointment.ID, err)
	}
}

// resolveAmount picks the charge for a completed appointment: the linked
// treatment's price, then a treatment matched by the appointment's service
// name, then the literal amount on the appointment, then zero.
func (ct *Controller) resolveAmount(appointment *models.Appointment) float64 {
	if appointment.TreatmentID != nil {
		var treatment models.Treatment
		if err := ct.DB.First(&treatment, *appointment.TreatmentID).Error; err == nil {
			return treatment.Price
		}
	}
	if appointment.Service != "" {
		var treatment models.Treatment
		if err := ct.DB.Where("name = ?", appointment.Service).First(&treatment).Error; err == nil {
			return treatment.Price
		}
	}
	if appointment.Amount > 0 {
		return appointment.Amount
	}
	return 0
}

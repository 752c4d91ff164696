package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

// AppointmentController covers the HR scheduling surface: list, create,
// delete, and generic status transitions.
type AppointmentController struct {
	DB *gorm.DB
}

func (a *AppointmentController) GetAll(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := a.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		Order("date desc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

func (a *AppointmentController) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := a.DB.Preload("Patient").Preload("Dentist").Preload("Treatment").
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// Create schedules an appointment. New appointments always start out pending;
// the dentist assignment may be left empty until someone picks it up.
func (a *AppointmentController) Create(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if appointment.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	appointment.Status = models.StatusPending

	if err := a.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	if err := a.DB.Preload("Patient").Preload("Dentist").
		First(&appointment, appointment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load created appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (a *AppointmentController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.Appointment
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	// Status changes go through ChangeStatus so the transition rules apply.
	updates.Status = ""

	if err := a.DB.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}
	var appointment models.Appointment
	if err := a.DB.Preload("Patient").Preload("Dentist").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// ChangeStatus applies a generic transition (HR's confirm/reject shortcut).
// Edges outside the lifecycle graph are rejected.
func (a *AppointmentController) ChangeStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type statusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}
	input := new(statusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := a.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if err := appointment.UpdateStatus(a.DB, input.Status); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid status transition",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment status",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// Delete removes the appointment row permanently. HR uses this as "cancel".
func (a *AppointmentController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := a.DB.Unscoped().Where("id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

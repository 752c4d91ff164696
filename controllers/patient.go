package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

type PatientController struct {
	DB *gorm.DB
}

func (p *PatientController) GetAll(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := p.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	return c.JSON(patients)
}

func (p *PatientController) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := p.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// Create inserts a patient row. Names are unique case-insensitively, enforced
// by a pre-insert lookup rather than a database constraint.
func (p *PatientController) Create(c *fiber.Ctx) error {
	var patient models.Patient
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if patient.Name == "" || patient.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}

	var count int64
	if err := p.DB.Model(&models.Patient{}).
		Where("LOWER(name) = LOWER(?)", patient.Name).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check patient name",
			Error:   err.Error(),
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Patient with name '" + patient.Name + "' already exists. Please use a different name.",
		})
	}

	if err := p.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

func (p *PatientController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.Patient
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := p.DB.Model(&models.Patient{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}
	var patient models.Patient
	if err := p.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

func (p *PatientController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := p.DB.Where("id = ?", id).Delete(&models.Patient{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

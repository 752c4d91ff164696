package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

type TreatmentController struct {
	DB *gorm.DB
}

func (t *TreatmentController) GetAll(c *fiber.Ctx) error {
	var treatments []models.Treatment
	if err := t.DB.Order("category asc").Find(&treatments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch treatments",
			Error:   err.Error(),
		})
	}
	return c.JSON(treatments)
}

func (t *TreatmentController) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var treatment models.Treatment
	if err := t.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(treatment)
}

func (t *TreatmentController) Create(c *fiber.Ctx) error {
	var treatment models.Treatment
	if err := c.BodyParser(&treatment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if treatment.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if treatment.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Price cannot be negative",
		})
	}
	if err := t.DB.Create(&treatment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create treatment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(treatment)
}

func (t *TreatmentController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.Treatment
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := t.DB.Model(&models.Treatment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update treatment",
			Error:   err.Error(),
		})
	}
	var treatment models.Treatment
	if err := t.DB.First(&treatment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Treatment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(treatment)
}

func (t *TreatmentController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := t.DB.Where("id = ?", id).Delete(&models.Treatment{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete treatment",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

type DentistController struct {
	DB *gorm.DB
}

func (d *DentistController) GetAll(c *fiber.Ctx) error {
	var dentists []models.Dentist
	if err := d.DB.Order("name asc").Find(&dentists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch dentists",
			Error:   err.Error(),
		})
	}
	return c.JSON(dentists)
}

func (d *DentistController) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var dentist models.Dentist
	if err := d.DB.First(&dentist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Dentist not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(dentist)
}

func (d *DentistController) Create(c *fiber.Ctx) error {
	var dentist models.Dentist
	if err := c.BodyParser(&dentist); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if dentist.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if err := d.DB.Create(&dentist).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create dentist",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dentist)
}

func (d *DentistController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.Dentist
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := d.DB.Model(&models.Dentist{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update dentist",
			Error:   err.Error(),
		})
	}
	var dentist models.Dentist
	if err := d.DB.First(&dentist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Dentist not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(dentist)
}

func (d *DentistController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := d.DB.Where("id = ?", id).Delete(&models.Dentist{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete dentist",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

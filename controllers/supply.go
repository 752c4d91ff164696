package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

type SupplyRequestController struct {
	DB *gorm.DB
}

func (s *SupplyRequestController) GetAll(c *fiber.Ctx) error {
	var requests []models.SupplyRequest
	if err := s.DB.Preload("Inventory").Preload("Staff").
		Order("requested_date desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch supply requests",
			Error:   err.Error(),
		})
	}
	return c.JSON(requests)
}

func (s *SupplyRequestController) GetPending(c *fiber.Ctx) error {
	var requests []models.SupplyRequest
	if err := s.DB.Preload("Inventory").Preload("Staff").
		Where("status = ?", models.SupplyPending).Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pending supply requests",
			Error:   err.Error(),
		})
	}
	return c.JSON(requests)
}

func (s *SupplyRequestController) Create(c *fiber.Ctx) error {
	var request models.SupplyRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if request.InventoryID == 0 || request.StaffID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create supply request",
			Error:   err.Error(),
		})
	}
	if err := s.DB.Preload("Inventory").Preload("Staff").
		First(&request, request.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load created supply request",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (s *SupplyRequestController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.SupplyRequest
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := s.DB.Model(&models.SupplyRequest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update supply request",
			Error:   err.Error(),
		})
	}
	var request models.SupplyRequest
	if err := s.DB.Preload("Inventory").Preload("Staff").First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Supply request not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(request)
}

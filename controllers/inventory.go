package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/identity"
	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

// tokenVerifier re-verifies raw bearer tokens against the identity provider.
type tokenVerifier interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
}

type InventoryController struct {
	DB       *gorm.DB
	Identity tokenVerifier
	// MissingServerKey is set when no elevated identity credential was
	// configured in production. The privileged create endpoint refuses to
	// operate in that state.
	MissingServerKey bool
}

func (i *InventoryController) GetAll(c *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := i.DB.Order("status desc").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch inventory",
			Error:   err.Error(),
		})
	}
	return c.JSON(items)
}

func (i *InventoryController) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var item models.InventoryItem
	if err := i.DB.First(&item, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Inventory item not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(item)
}

// GetLowStock lists items whose status is low or critical.
func (i *InventoryController) GetLowStock(c *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := i.DB.Where("status IN ?", []models.StockStatus{models.StockLow, models.StockCritical}).
		Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch low stock items",
			Error:   err.Error(),
		})
	}
	return c.JSON(items)
}

// createInventoryRequest is the explicit boundary schema for the privileged
// create endpoint. Optional numeric fields are pointers so an absent value can
// be distinguished from an explicit zero.
type createInventoryRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    *int   `json:"quantity"`
	MinQuantity *int   `json:"minQuantity"`
	Status      string `json:"status"`
}

// Create is the privileged inventory-creation endpoint. It does not use the
// app's own session middleware: the caller forwards their identity-provider
// access token, which is re-verified upstream, and the staff table decides
// whether the identity may add inventory.
func (i *InventoryController) Create(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" || token == authHeader {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing Authorization token",
		})
	}

	if i.MissingServerKey {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Missing IDENTITY_SERVICE_ROLE. Set the identity service-role key in the server environment.",
		})
	}

	user, err := i.Identity.GetUser(c.Context(), token)
	if err != nil || user == nil || user.ID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	var staff models.Staff
	result := i.DB.Where("user_id = ?", user.ID).Limit(1).Find(&staff)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": result.Error.Error(),
		})
	}
	if staff.ID == 0 || (staff.Role != "" && staff.Role != "hr" && staff.Role != "staff") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: not a staff member",
		})
	}

	input := new(createInventoryRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required field: name",
		})
	}

	item := models.InventoryItem{
		Name:     input.Name,
		Category: input.Category,
		Status:   models.StockStatus(input.Status),
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if item.Status == "" {
		item.Status = models.StockOK
	}

	if err := i.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(item)
}

func (i *InventoryController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates models.InventoryItem
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := i.DB.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update inventory item",
			Error:   err.Error(),
		})
	}
	var item models.InventoryItem
	if err := i.DB.First(&item, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Inventory item not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(item)
}

func (i *InventoryController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := i.DB.Where("id = ?", id).Delete(&models.InventoryItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete inventory item",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

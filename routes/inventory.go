package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/controllers"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
)

// SetupInventoryRoutes configures inventory and supply-request management.
// The create endpoint deliberately sits outside the app session middleware:
// it authenticates by re-verifying the caller's identity-provider token and
// checking the staff table.
func SetupInventoryRoutes(
	app *fiber.App,
	inventory *controllers.InventoryController,
	supply *controllers.SupplyRequestController,
	protected fiber.Handler,
) {
	hrOnly := middleware.RequireRole(models.RoleHR)

	group := app.Group("/inventory")
	group.Post("/", inventory.Create)
	group.Get("/", protected, hrOnly, inventory.GetAll)
	group.Get("/low-stock", protected, hrOnly, inventory.GetLowStock)
	group.Get("/:id", protected, hrOnly, inventory.Get)
	group.Patch("/:id", protected, hrOnly, inventory.Update)
	group.Delete("/:id", protected, hrOnly, inventory.Delete)

	supplyGroup := app.Group("/supply-requests", protected, hrOnly)
	supplyGroup.Get("/", supply.GetAll)
	supplyGroup.Get("/pending", supply.GetPending)
	supplyGroup.Post("/", supply.Create)
	supplyGroup.Patch("/:id", supply.Update)
}

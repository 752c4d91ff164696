package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
)

type DashboardController struct {
	DB *gorm.DB
}

// Overview returns role-filtered clinic statistics. Payment aggregates degrade
// to zero on backend failure so the page still renders.
func (d *DashboardController) Overview(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User role not found in context",
		})
	}
	email, _ := c.Locals("email").(string)

	var statistics struct {
		TotalAppointments int64     `json:"total_appointments"`
		PendingCount      int64     `json:"pending_count"`
		ConfirmedCount    int64     `json:"confirmed_count"`
		CompletedCount    int64     `json:"completed_count"`
		TotalPatients     int64     `json:"total_patients"`
		TotalRevenue      float64   `json:"total_revenue"`
		LowStockCount     int64     `json:"low_stock_count"`
		LastUpdated       time.Time `json:"last_updated"`
	}

	// Scope appointment and payment queries to the caller's own rows unless
	// they are HR.
	var dentistID, patientID uint
	switch role {
	case models.RoleDentist:
		var dentist models.Dentist
		if err := d.DB.Where("LOWER(email) = LOWER(?)", email).First(&dentist).Error; err == nil {
			dentistID = dentist.ID
		}
	case models.RolePatient:
		var patient models.Patient
		if err := d.DB.Where("LOWER(email) = LOWER(?)", email).First(&patient).Error; err == nil {
			patientID = patient.ID
		}
	}

	appointments := func() *gorm.DB {
		q := d.DB.Model(&models.Appointment{})
		if dentistID != 0 {
			q = q.Where("dentist_id = ?", dentistID)
		}
		if patientID != 0 {
			q = q.Where("patient_id = ?", patientID)
		}
		return q
	}

	appointments().Count(&statistics.TotalAppointments)
	appointments().Where("status = ?", models.StatusPending).Count(&statistics.PendingCount)
	appointments().Where("status = ?", models.StatusConfirmed).Count(&statistics.ConfirmedCount)
	appointments().Where("status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)

	if role == models.RoleHR {
		d.DB.Model(&models.Patient{}).Count(&statistics.TotalPatients)
		d.DB.Model(&models.InventoryItem{}).
			Where("status IN ?", []models.StockStatus{models.StockLow, models.StockCritical}).
			Count(&statistics.LowStockCount)
	}

	revenueQuery := d.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentPaid)
	if dentistID != 0 {
		revenueQuery = revenueQuery.Where("dentist_id = ?", dentistID)
	}
	if patientID != 0 {
		revenueQuery = revenueQuery.Where("patient_id = ?", patientID)
	}
	var revenue struct{ TotalRevenue float64 }
	if err := revenueQuery.Select("COALESCE(SUM(amount), 0) as total_revenue").
		Scan(&revenue).Error; err != nil {
		log.Printf("dashboard: degrading revenue read: %v", err)
	}
	statistics.TotalRevenue = revenue.TotalRevenue
	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}

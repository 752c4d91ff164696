package db

import (
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
)

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Dentist{},
		&models.Treatment{},
		&models.Appointment{},
		&models.Payment{},
		&models.InventoryItem{},
		&models.Staff{},
		&models.SupplyRequest{},
	)
}

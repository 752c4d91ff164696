package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name       string     `json:"name" gorm:"uniqueIndex"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	DOB        *time.Time `json:"dob"`
	Gender     string     `json:"gender"`
	Address    string     `json:"address"`
	UserID     string     `json:"user_id"` // identity-provider subject, empty for walk-ins
	PictureURL string     `json:"picture_url"`
}

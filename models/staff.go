package models

import "gorm.io/gorm"

// Staff is the authorization source of truth for the privileged inventory
// endpoint. UserID holds the identity-provider subject of the staff member.
type Staff struct {
	gorm.Model
	UserID string `json:"user_id" gorm:"uniqueIndex"`
	Name   string `json:"name"`
	Role   string `json:"role"` // "hr" or "staff"
}

func (Staff) TableName() string { return "staff" }

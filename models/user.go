package models

import (
	"time"
)

const (
	RolePatient = "patient"
	RoleDentist = "dentist"
	RoleHR      = "hr"
)

// User is a credentials-table row. Sessions are JWTs minted at login; a User
// row exists only for accounts registered directly with the clinic (identity
// provider and demo accounts never get one).
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"unique"`
	Password       string    `json:"-"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SessionUser is the session-only identity carried in JWT claims and returned
// by auth endpoints. It is reconstructed from a credentials row, the identity
// provider, or the demo table on every login.
type SessionUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

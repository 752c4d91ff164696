package models

import "gorm.io/gorm"

type Dentist struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

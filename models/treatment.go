package models

import "gorm.io/gorm"

type Treatment struct {
	gorm.Model
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type SupplyRequestStatus string

const (
	SupplyPending  SupplyRequestStatus = "pending"
	SupplyApproved SupplyRequestStatus = "approved"
	SupplyRejected SupplyRequestStatus = "rejected"
)

type SupplyRequest struct {
	gorm.Model
	InventoryID   uint                `json:"inventory_id"`
	Inventory     InventoryItem       `json:"inventory,omitempty" gorm:"foreignKey:InventoryID"`
	StaffID       uint                `json:"staff_id"`
	Staff         Staff               `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
	Quantity      int                 `json:"quantity"`
	Status        SupplyRequestStatus `json:"status"`
	RequestedDate time.Time           `json:"requested_date"`
}

func (s *SupplyRequest) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = SupplyPending
	}
	if s.RequestedDate.IsZero() {
		s.RequestedDate = time.Now()
	}
	return nil
}

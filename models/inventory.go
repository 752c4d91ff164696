package models

import "gorm.io/gorm"

type StockStatus string

const (
	StockOK       StockStatus = "ok"
	StockLow      StockStatus = "low"
	StockCritical StockStatus = "critical"
)

type InventoryItem struct {
	gorm.Model
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Quantity    int         `json:"quantity"`
	MinQuantity int         `json:"min_quantity"`
	Status      StockStatus `json:"status"`
}

func (InventoryItem) TableName() string { return "inventory" }

// StockStatusFor derives an item's status from its quantity: empty is
// critical, at or below the minimum is low, anything above is ok.
func StockStatusFor(quantity, minQuantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockCritical
	case quantity <= minQuantity:
		return StockLow
	default:
		return StockOK
	}
}

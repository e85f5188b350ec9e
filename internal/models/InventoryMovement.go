package models

import (
	"time"

	"gorm.io/gorm"
)

// Movement types
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

type InventoryMovement struct {
	gorm.Model
	WarehouseID uint      `json:"warehouse_id" gorm:"index"`
	ProductID   uint      `json:"product_id" gorm:"index"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"` // "IN" or "OUT"
	Reference   string    `json:"reference"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// internal/models/product.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string   `json:"name" binding:"required"`
	SKU         string   `json:"sku" gorm:"uniqueIndex;not null"`
	Barcode     string   `json:"barcode"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id" gorm:"index"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	UnitPrice    float64 `json:"unit_price"`
	ReorderLevel int     `json:"reorder_level"`
	// VolumeM3 drives the warehouse used-capacity bookkeeping.
	VolumeM3     float64 `json:"volume_m3"`
	Weight       float64 `json:"weight"`
	Dimensions   string  `json:"dimensions"`
	Fragile      bool    `json:"fragile"`
	Refrigerated bool    `json:"refrigerated"`
	Status       string  `json:"status" gorm:"default:ACTIVE"`

	LastRestockDate *time.Time `json:"last_restock_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
}

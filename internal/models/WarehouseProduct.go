package models

import "gorm.io/gorm"

// WarehouseProduct is the stock row for a product in a warehouse.
// One row per (warehouse, product); quantity changes go through atomic
// ON CONFLICT upserts, never read-then-write.
type WarehouseProduct struct {
	gorm.Model
	WarehouseID   uint    `json:"warehouse_id" gorm:"uniqueIndex:idx_warehouse_products_pair;not null"`
	ProductID     uint    `json:"product_id" gorm:"uniqueIndex:idx_warehouse_products_pair;not null"`
	Product       Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
}

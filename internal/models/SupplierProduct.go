package models

import "gorm.io/gorm"

// SupplierProduct records which supplier provides which product.
type SupplierProduct struct {
	gorm.Model
	SupplierID uint     `json:"supplier_id" gorm:"uniqueIndex:idx_supplier_products_pair;not null"`
	ProductID  uint     `json:"product_id" gorm:"uniqueIndex:idx_supplier_products_pair;not null"`
	Supplier   Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Product    Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// internal/models/warehouse.go
package models

import (
	"gorm.io/gorm"
)

type Warehouse struct {
	gorm.Model
	Name      string  `json:"name" binding:"required" gorm:"uniqueIndex"`
	AddressID uint    `json:"address_id"`
	Address   Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	// ManagerID references a user in the external users service.
	ManagerID      uint    `json:"manager_id"`
	CapacityM3     float64 `json:"capacity_m3"`
	UsedCapacityM3 float64 `json:"used_capacity_m3"`
	State          string  `json:"state" gorm:"default:ACTIVE"`

	Stock     []WarehouseProduct  `gorm:"foreignKey:WarehouseID" json:"stock,omitempty"`
	Movements []InventoryMovement `gorm:"foreignKey:WarehouseID" json:"movements,omitempty"`
}

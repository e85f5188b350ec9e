// internal/models/order.go
package models

import (
	"gorm.io/gorm"
)

// Order statuses. PENDING means manual assignment is still due;
// ASSIGNED means a courier was auto-selected at creation. No further
// transitions are modeled.
const (
	OrderStatusPending  = "PENDING"
	OrderStatusAssigned = "ASSIGNED"
)

// UnassignedCourierID is the sentinel courier for manually assigned orders.
const UnassignedCourierID uint = 0

type Order struct {
	gorm.Model
	CourierID       uint   `json:"courier_id" gorm:"index"`
	CourierName     string `json:"courier_name"`
	CourierEmail    string `json:"courier_email"`
	DeliveryAddress string `json:"delivery_address"`
	Status          string `json:"status" gorm:"index"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	WarehouseID     uint   `json:"warehouse_id" gorm:"index"`
	CoordinateID    uint   `json:"coordinate_id"`

	Products []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"products,omitempty"`
}

type OrderProduct struct {
	gorm.Model
	OrderID   uint `json:"order_id" gorm:"uniqueIndex:idx_order_products_pair;not null"`
	ProductID uint `json:"product_id" gorm:"uniqueIndex:idx_order_products_pair;not null"`
	Amount    int  `json:"amount"`
}

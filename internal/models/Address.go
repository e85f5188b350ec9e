package models

import (
	"gorm.io/gorm"
)

// Address locates a warehouse inside a city. It has no life of its own:
// it is created with its warehouse and removed when the warehouse goes.
type Address struct {
	gorm.Model
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code"`
	CityID     uint   `json:"city_id" gorm:"index"`
	City       City   `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

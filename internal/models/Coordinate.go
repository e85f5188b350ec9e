package models

import (
	"gorm.io/gorm"
)

// Coordinate is a geocoded point tagged to either a courier or an order.
// The (latitude, longitude) pair is unique at the database level so
// concurrent creates collapse onto one row instead of racing.
type Coordinate struct {
	gorm.Model
	Latitude   float64 `json:"latitude" gorm:"uniqueIndex:idx_coordinates_lat_lng;not null"`
	Longitude  float64 `json:"longitude" gorm:"uniqueIndex:idx_coordinates_lat_lng;not null"`
	CityID     uint    `json:"city_id" gorm:"index"`
	Street     string  `json:"street"`
	PostalCode string  `json:"postal_code"`

	// Associations
	Users []CoordinateUser `gorm:"foreignKey:CoordinateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"users,omitempty"`
}

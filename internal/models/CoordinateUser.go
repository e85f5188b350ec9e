package models

import (
	"gorm.io/gorm"
)

// CoordinateUser links a courier (user id from the users service) to a
// reported coordinate. At most one link per (user, coordinate) pair,
// enforced by a composite unique index rather than a pre-insert check.
type CoordinateUser struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex:idx_coordinate_users_pair;index;not null"`
	CoordinateID uint       `json:"coordinate_id" gorm:"uniqueIndex:idx_coordinate_users_pair;not null"`
	Coordinate   Coordinate `gorm:"foreignKey:CoordinateID" json:"coordinate,omitempty"`
}

package models

import (
	"gorm.io/gorm"
)

// City belongs to a Department. The same city name may appear in two
// departments, so uniqueness spans the pair.
type City struct {
	gorm.Model
	Name         string     `json:"name" binding:"required" gorm:"uniqueIndex:idx_cities_name_department"`
	DepartmentID uint       `json:"department_id" gorm:"uniqueIndex:idx_cities_name_department"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

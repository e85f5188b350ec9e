// internal/models/department.go
package models

import (
	"gorm.io/gorm"
)

type Department struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"uniqueIndex"`

	Cities []City `gorm:"foreignKey:DepartmentID" json:"cities,omitempty"`
}

package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `json:"name" binding:"required" gorm:"uniqueIndex"`
	Description string `json:"description"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

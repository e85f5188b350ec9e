package models

import "gorm.io/gorm"

type Supplier struct {
	gorm.Model
	Name  string `json:"name" binding:"required" gorm:"uniqueIndex"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

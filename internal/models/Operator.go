package models

import "gorm.io/gorm"

// Operator is a dashboard user allowed to mutate inventory and orders.
type Operator struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"` // "admin", "operator"
}

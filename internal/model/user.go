package model

import (
	"time"
)

type UserRole string

const (
	// Submitter enters period figures for their department.
	Submitter UserRole = "submitter"
	// Director reviews entries submitted within their department.
	Director UserRole = "director"
	// Admin covers admin-and-above authority (planning office, mayoralty).
	Admin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('submitter','director','admin');default:'submitter'" json:"role"`
	DepartmentID uint      `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

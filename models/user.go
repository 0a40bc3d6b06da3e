package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles recognized by the API.
const (
	RoleAdmin  = "admin"
	RoleLawyer = "lawyer"
	RoleClient = "client"
)

// User represents an account in the system (admin, lawyer or client)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Auth0ID      string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Role         string         `gorm:"not null;default:'client'" json:"role"` // "admin", "lawyer" or "client"
	ContactNo    *string        `json:"contact_no,omitempty"`
	PracticeArea *string        `json:"practice_area,omitempty"` // set for lawyers only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLawyer, RoleClient:
		return true
	}
	return false
}

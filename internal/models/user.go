package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Tokens carrying anything else are
// rejected at the authorization boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

// ParseRole normalizes a raw role claim to the canonical lowercase enum.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSeller:
		return RoleSeller, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User represents an account that owns products. The validate tags document
// the field constraints; requests are validated against the payload shapes in
// internal/validation, not this struct.
type User struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                 string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email                string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password             string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role                 Role       `json:"role" gorm:"type:varchar(16)"`
	ResetPasswordToken   *string    `json:"-" gorm:"type:varchar(64)"`
	ResetPasswordExpires *time.Time `json:"-"`
	gorm.Model           `json:"-"`
}

// PublicUser is the shape returned from auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public strips credential fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

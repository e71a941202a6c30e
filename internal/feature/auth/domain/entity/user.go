// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles a user can hold.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	Password string `gorm:"size:255;not null"`

	// Role is either RoleMember or RoleAdmin.
	Role string `gorm:"size:16;not null;default:member"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}

package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents account role in the system (matches user_role enum)
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// User represents a guest account (matches users table)
type User struct {
	ID            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Role          Role      `db:"role"`
	EmailVerified bool      `db:"email_verified"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	return role == string(RoleGuest)
}

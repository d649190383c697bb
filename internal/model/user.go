package model

import "time"

// Role determines what a user may do: employees submit and read their own
// travel requests, managers review every request and drive status changes.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'employee';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity a request executes as, extracted from
// session claims and passed down to services for permission checks.
type Actor struct {
	ID    uint
	Email string
	Role  Role
}

// IsManager reports whether the actor holds the manager role.
func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}

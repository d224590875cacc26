package domain

import "time"

// Role represents the access tier assigned to an account.
type Role string

const (
	RolePublic      Role = "PUBLIC"
	RoleUser        Role = "USER"
	RoleUserPremium Role = "USER_PREMIUM"
	RoleAdmin       Role = "ADMIN"
)

// User is the domain model for registered accounts. PasswordHash is excluded
// from every JSON projection.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Age          int       `json:"age"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name used in confirmation messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

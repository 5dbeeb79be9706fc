package entity

import (
	"time"
)

// Roles understood by the authorization policy.
const (
	RoleManager = "manager"
	RoleMember  = "member"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash and must never be serialized;
// API responses use the PublicUser projection instead.
type User struct {
	ID        string
	TeamID    *string
	FullName  string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the outward-facing projection of a User.
// Constructed at the API boundary so the password hash has no
// serialization path at all.
type PublicUser struct {
	ID        string    `json:"id"`
	TeamID    *string   `json:"team_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the password-stripped view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		TeamID:    u.TeamID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUsers maps a user list to its public projection, preserving order.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

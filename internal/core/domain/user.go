package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a registered account. PasswordHash never leaves the
// credential boundary: it is excluded from JSON and handlers only ever
// see the projection produced by Identity.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified-caller view resolved from a bearer credential.
// Role is re-read from storage at verification time, never taken from
// token claims, so a role change applies on the next request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Identity returns the caller projection of a user.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

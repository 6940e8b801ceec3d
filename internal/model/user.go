package model

import "time"

type User struct {
	ID           int64     `json:"id,string"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // empty for SSO-only users
	IsActive     bool      `json:"is_active"`
	WorkOSID     *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the user can sign in with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserProfile is a user together with the roles they hold.
type UserProfile struct {
	User
	Roles []Role `json:"roles"`
}

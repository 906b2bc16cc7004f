package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDto is the public projection of a user, used when populating references
type UserDto struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
}

// ProfileDto is what a user sees about themselves. The password hash is never included.
type ProfileDto struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Profile() ProfileDto {
	return ProfileDto{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the caller resolved from a verified token
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CanonicalID normalizes an id for comparison, independent of how a store renders it.
func CanonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SameID compares two ids after canonicalization. Empty ids never match.
func SameID(a, b string) bool {
	ca := CanonicalID(a)
	return ca != "" && ca == CanonicalID(b)
}

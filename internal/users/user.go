package users

import (
	"errors"
	"time"
)

// ErrInvalidID is returned when an upsert carries no user id.
var ErrInvalidID = errors.New("user id required")

// User is an account known to the tracker. The ID comes from the identity
// provider and never changes once stored.
type User struct {
	ID              string    `json:"id" db:"id"`
	Email           *string   `json:"email,omitempty" db:"email"`
	FirstName       *string   `json:"first_name,omitempty" db:"first_name"`
	LastName        *string   `json:"last_name,omitempty" db:"last_name"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	IsAdmin         bool      `json:"is_admin" db:"is_admin"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertUser carries the profile supplied by the identity provider on login.
// Profile fields always overwrite the stored row. IsAdmin and IsActive are
// only written when non-nil, so a login without role claims keeps the roles
// already on record.
type UpsertUser struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	IsAdmin         *bool
	IsActive        *bool
}

// DisplayName joins first and last name, falling back to the email.
func (u *User) DisplayName() string {
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" && u.Email != nil {
		return *u.Email
	}
	return name
}

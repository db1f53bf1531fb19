package projects

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength bounds Project.Name, counted in characters.
const MaxNameLength = 255

var (
	ErrInvalidInput  = errors.New("invalid project input")
	ErrOwnerNotFound = errors.New("project owner not found")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// Project is a tracked project owned by exactly one user.
type Project struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Link        *string   `json:"link,omitempty" db:"link"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInput has no owner field: the owner is always the authenticated caller.
type CreateInput struct {
	Name        string
	Description *string
	Link        *string
	ImageURL    *string
	Status      Status
}

// Normalize trims the name and applies the default status.
func (in CreateInput) Normalize() CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	if in.Status == "" {
		in.Status = StatusActive
	}
	return in
}

func (in CreateInput) Validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

// UpdateInput lists the fields to change; nil leaves a field untouched.
// A non-nil empty string clears an optional text field.
type UpdateInput struct {
	Name        *string
	Description *string
	Link        *string
	ImageURL    *string
	Status      *Status
}

func (in UpdateInput) Validate() error {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return err
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
	}
	return nil
}

// IsEmpty reports whether no field was supplied.
func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.Link == nil &&
		in.ImageURL == nil && in.Status == nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, MaxNameLength)
	}
	return nil
}

// Owner is the public profile of a project's owner as shown to administrators.
type Owner struct {
	ID              string  `json:"id"`
	Email           *string `json:"email,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ProjectWithUser is the admin listing view. User is nil when the owner row
// no longer exists.
type ProjectWithUser struct {
	Project
	User *Owner `json:"user"`
}

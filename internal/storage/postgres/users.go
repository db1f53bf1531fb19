package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, is_admin, is_active, created_at, updated_at`

// GetUser returns nil without error when no user has the given id.
func (s *Store) GetUser(ctx context.Context, id string) (*users.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u users.User
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpsertUser inserts the user or, on id conflict, overwrites the profile
// fields. updated_at never moves backwards, even with clock skew between
// application instances.
func (s *Store) UpsertUser(ctx context.Context, in users.UpsertUser) (*users.User, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, users.ErrInvalidID
	}

	q := `
INSERT INTO users (id, email, first_name, last_name, profile_image_url, is_admin, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, false), COALESCE($7, true), $8, $8)
ON CONFLICT (id) DO UPDATE SET
    email = EXCLUDED.email,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    profile_image_url = EXCLUDED.profile_image_url,
    is_admin = COALESCE($6, users.is_admin),
    is_active = COALESCE($7, users.is_active),
    updated_at = GREATEST(users.updated_at, EXCLUDED.updated_at)
RETURNING ` + userColumns

	var u users.User
	err := s.db.GetContext(ctx, &u, q,
		in.ID,
		in.Email,
		in.FirstName,
		in.LastName,
		in.ProfileImageURL,
		in.IsAdmin,
		in.IsActive,
		s.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}

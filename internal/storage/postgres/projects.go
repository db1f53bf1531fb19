package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
)

const projectColumns = `id, user_id, name, description, link, image_url, status, created_at, updated_at`

// foreign_key_violation
const pqForeignKeyViolation = "23503"

func (s *Store) GetUserProjects(ctx context.Context, userID string) ([]projects.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`

	out := make([]projects.Project, 0, 16)
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	return out, nil
}

// GetProject looks a project up by id regardless of owner. It returns nil
// without error when the project does not exist.
func (s *Store) GetProject(ctx context.Context, id string) (*projects.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var p projects.Project
	if err := s.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// CreateProject stores a new project owned by userID.
func (s *Store) CreateProject(ctx context.Context, in projects.CreateInput, userID string) (*projects.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: owner required", projects.ErrInvalidInput)
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	q := `
INSERT INTO projects (id, user_id, name, description, link, image_url, status, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $8)
RETURNING ` + projectColumns

	var p projects.Project
	err := s.db.GetContext(ctx, &p, q,
		uuid.NewString(),
		userID,
		in.Name,
		in.Description,
		in.Link,
		in.ImageURL,
		string(in.Status),
		s.timestamp(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return nil, projects.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

// UpdateProject applies the supplied fields to the project only when userID
// owns it. A missing project and one owned by someone else both return nil
// without error.
func (s *Store) UpdateProject(ctx context.Context, id, userID string, in projects.UpdateInput) (*projects.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	args := []any{id, userID}
	sets := make([]string, 0, 6)
	set := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, strings.ReplaceAll(expr, "?", "$"+strconv.Itoa(len(args))))
	}

	if in.Name != nil {
		set("name = ?", strings.TrimSpace(*in.Name))
	}
	if in.Description != nil {
		set("description = NULLIF(?, '')", *in.Description)
	}
	if in.Link != nil {
		set("link = NULLIF(?, '')", *in.Link)
	}
	if in.ImageURL != nil {
		set("image_url = NULLIF(?, '')", *in.ImageURL)
	}
	if in.Status != nil {
		set("status = ?", string(*in.Status))
	}
	set("updated_at = ?", s.timestamp())

	q := `
UPDATE projects
SET ` + strings.Join(sets, ", ") + `
WHERE id = $1 AND user_id = $2
RETURNING ` + projectColumns

	var p projects.Project
	if err := s.db.GetContext(ctx, &p, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &p, nil
}

// DeleteProject removes the project only when userID owns it and reports
// whether a row was removed.
func (s *Store) DeleteProject(ctx context.Context, id, userID string) (bool, error) {
	const q = `DELETE FROM projects WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return rowsAffected > 0, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

func (s *Store) GetAllUsers(ctx context.Context) ([]users.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`

	out := make([]users.User, 0, 32)
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

type projectOwnerRow struct {
	projects.Project
	OwnerID              *string `db:"owner_id"`
	OwnerEmail           *string `db:"owner_email"`
	OwnerFirstName       *string `db:"owner_first_name"`
	OwnerLastName        *string `db:"owner_last_name"`
	OwnerProfileImageURL *string `db:"owner_profile_image_url"`
}

// GetAllProjects lists every project with its owner's profile. Projects whose
// owner row is gone are kept with a nil User.
func (s *Store) GetAllProjects(ctx context.Context) ([]projects.ProjectWithUser, error) {
	const q = `
SELECT p.id, p.user_id, p.name, p.description, p.link, p.image_url, p.status, p.created_at, p.updated_at,
       u.id AS owner_id,
       u.email AS owner_email,
       u.first_name AS owner_first_name,
       u.last_name AS owner_last_name,
       u.profile_image_url AS owner_profile_image_url
FROM projects p
LEFT JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC, p.id DESC`

	var rows []projectOwnerRow
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list all projects: %w", err)
	}

	out := make([]projects.ProjectWithUser, 0, len(rows))
	for _, r := range rows {
		item := projects.ProjectWithUser{Project: r.Project}
		if r.OwnerID != nil {
			item.User = &projects.Owner{
				ID:              *r.OwnerID,
				Email:           r.OwnerEmail,
				FirstName:       r.OwnerFirstName,
				LastName:        r.OwnerLastName,
				ProfileImageURL: r.OwnerProfileImageURL,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// GetUserStats computes all four counters in one statement so they come from
// the same snapshot. monthly_projects counts rows created at or after the
// start of the current calendar month in the store's location.
func (s *Store) GetUserStats(ctx context.Context) (*storage.UserStats, error) {
	const q = `
SELECT
    (SELECT count(*) FROM users) AS total_users,
    (SELECT count(*) FROM users WHERE is_active) AS active_users,
    (SELECT count(*) FROM projects) AS total_projects,
    (SELECT count(*) FROM projects WHERE created_at >= $1) AS monthly_projects`

	monthStart := storage.MonthStart(s.now().In(s.loc))

	var st storage.UserStats
	if err := s.db.GetContext(ctx, &st, q, monthStart); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &st, nil
}

// Package storage defines the data-access contract for users and projects.
//
// Single-row lookups report a missing row as a nil result with a nil error.
// Ownership-scoped mutations report a row that exists but belongs to someone
// else exactly like a missing row, so callers cannot tell the two apart.
package storage

import (
	"context"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

// UserStats are the administrator dashboard counters.
type UserStats struct {
	TotalUsers      int64 `json:"total_users" db:"total_users"`
	ActiveUsers     int64 `json:"active_users" db:"active_users"`
	TotalProjects   int64 `json:"total_projects" db:"total_projects"`
	MonthlyProjects int64 `json:"monthly_projects" db:"monthly_projects"`
}

type Storage interface {
	GetUser(ctx context.Context, id string) (*users.User, error)
	UpsertUser(ctx context.Context, u users.UpsertUser) (*users.User, error)

	GetUserProjects(ctx context.Context, userID string) ([]projects.Project, error)
	GetProject(ctx context.Context, id string) (*projects.Project, error)
	CreateProject(ctx context.Context, in projects.CreateInput, userID string) (*projects.Project, error)
	UpdateProject(ctx context.Context, id, userID string, in projects.UpdateInput) (*projects.Project, error)
	DeleteProject(ctx context.Context, id, userID string) (bool, error)

	// Admin operations. Callers must have checked administrator privilege.
	GetAllUsers(ctx context.Context) ([]users.User, error)
	GetAllProjects(ctx context.Context) ([]projects.ProjectWithUser, error)
	GetUserStats(ctx context.Context) (*UserStats, error)
}

// Package memory is an in-process Storage used for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

var _ storage.Storage = (*Store)(nil)

type Store struct {
	mu       sync.RWMutex
	users    map[string]users.User
	projects map[string]projects.Project
	now      func() time.Time
	loc      *time.Location
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		users:    make(map[string]users.User),
		projects: make(map[string]projects.Project),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) GetUser(ctx context.Context, id string) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u = cloneUser(u)
	return &u, nil
}

func (s *Store) UpsertUser(ctx context.Context, in users.UpsertUser) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ID) == "" {
		return nil, users.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	u, exists := s.users[in.ID]
	if !exists {
		u = users.User{ID: in.ID, IsActive: true, CreatedAt: now, UpdatedAt: now}
	} else if now.After(u.UpdatedAt) {
		u.UpdatedAt = now
	}
	u.Email = copyStr(in.Email)
	u.FirstName = copyStr(in.FirstName)
	u.LastName = copyStr(in.LastName)
	u.ProfileImageURL = copyStr(in.ProfileImageURL)
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	s.users[in.ID] = u
	u = cloneUser(u)
	return &u, nil
}

func (s *Store) GetUserProjects(ctx context.Context, userID string) ([]projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]projects.Project, 0)
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, cloneProject(p))
		}
	}
	sortProjects(out, func(i int) projects.Project { return out[i] })
	return out, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, in projects.CreateInput, userID string) (*projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: owner required", projects.ErrInvalidInput)
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, projects.ErrOwnerNotFound
	}

	now := s.now().UTC()
	p := projects.Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        in.Name,
		Description: nullIfEmpty(in.Description),
		Link:        nullIfEmpty(in.Link),
		ImageURL:    nullIfEmpty(in.ImageURL),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.projects[p.ID] = p
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id, userID string, in projects.UpdateInput) (*projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = nullIfEmpty(in.Description)
	}
	if in.Link != nil {
		p.Link = nullIfEmpty(in.Link)
	}
	if in.ImageURL != nil {
		p.ImageURL = nullIfEmpty(in.ImageURL)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = s.now().UTC()
	s.projects[id] = p
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}

func (s *Store) GetAllUsers(ctx context.Context) ([]users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]users.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetAllProjects(ctx context.Context) ([]projects.ProjectWithUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]projects.ProjectWithUser, 0, len(s.projects))
	for _, p := range s.projects {
		item := projects.ProjectWithUser{Project: cloneProject(p)}
		if u, ok := s.users[p.UserID]; ok {
			item.User = &projects.Owner{
				ID:              u.ID,
				Email:           copyStr(u.Email),
				FirstName:       copyStr(u.FirstName),
				LastName:        copyStr(u.LastName),
				ProfileImageURL: copyStr(u.ProfileImageURL),
			}
		}
		out = append(out, item)
	}
	sortProjects(out, func(i int) projects.Project { return out[i].Project })
	return out, nil
}

func (s *Store) GetUserStats(ctx context.Context) (*storage.UserStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	monthStart := storage.MonthStart(s.now().In(s.loc))

	var st storage.UserStats
	st.TotalUsers = int64(len(s.users))
	for _, u := range s.users {
		if u.IsActive {
			st.ActiveUsers++
		}
	}
	st.TotalProjects = int64(len(s.projects))
	for _, p := range s.projects {
		if !p.CreatedAt.Before(monthStart) {
			st.MonthlyProjects++
		}
	}
	return &st, nil
}

// DeleteUser drops a user row without touching its projects. It exists so
// tests can reproduce an orphaned project.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// PutProject stores p as is, bypassing validation and the owner check.
func (s *Store) PutProject(p projects.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = cloneProject(p)
}

func sortProjects[T any](items []T, at func(int) projects.Project) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := at(i), at(j)
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// cloneUser and cloneProject detach the optional fields from the stored
// entry so callers cannot mutate the map through a returned pointer.
func cloneUser(u users.User) users.User {
	u.Email = copyStr(u.Email)
	u.FirstName = copyStr(u.FirstName)
	u.LastName = copyStr(u.LastName)
	u.ProfileImageURL = copyStr(u.ProfileImageURL)
	return u
}

func cloneProject(p projects.Project) projects.Project {
	p.Description = copyStr(p.Description)
	p.Link = copyStr(p.Link)
	p.ImageURL = copyStr(p.ImageURL)
	return p
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func nullIfEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

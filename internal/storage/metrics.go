package storage

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

// Instrumented wraps a Storage and records the duration and outcome of every call.
type Instrumented struct {
	next     Storage
	duration *prometheus.HistogramVec
}

// NewInstrumented registers the storage histogram on reg.
func NewInstrumented(next Storage, reg prometheus.Registerer) *Instrumented {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Duration of storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)
	reg.MustRegister(duration)
	return &Instrumented{next: next, duration: duration}
}

// track returns a func to defer with a pointer to the named error result.
func (s *Instrumented) track(op string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		outcome := "ok"
		if *errp != nil {
			outcome = "error"
		}
		s.duration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	}
}

func (s *Instrumented) GetUser(ctx context.Context, id string) (_ *users.User, err error) {
	defer s.track("get_user")(&err)
	return s.next.GetUser(ctx, id)
}

func (s *Instrumented) UpsertUser(ctx context.Context, in users.UpsertUser) (_ *users.User, err error) {
	defer s.track("upsert_user")(&err)
	return s.next.UpsertUser(ctx, in)
}

func (s *Instrumented) GetUserProjects(ctx context.Context, userID string) (_ []projects.Project, err error) {
	defer s.track("get_user_projects")(&err)
	return s.next.GetUserProjects(ctx, userID)
}

func (s *Instrumented) GetProject(ctx context.Context, id string) (_ *projects.Project, err error) {
	defer s.track("get_project")(&err)
	return s.next.GetProject(ctx, id)
}

func (s *Instrumented) CreateProject(ctx context.Context, in projects.CreateInput, userID string) (_ *projects.Project, err error) {
	defer s.track("create_project")(&err)
	return s.next.CreateProject(ctx, in, userID)
}

func (s *Instrumented) UpdateProject(ctx context.Context, id, userID string, in projects.UpdateInput) (_ *projects.Project, err error) {
	defer s.track("update_project")(&err)
	return s.next.UpdateProject(ctx, id, userID, in)
}

func (s *Instrumented) DeleteProject(ctx context.Context, id, userID string) (_ bool, err error) {
	defer s.track("delete_project")(&err)
	return s.next.DeleteProject(ctx, id, userID)
}

func (s *Instrumented) GetAllUsers(ctx context.Context) (_ []users.User, err error) {
	defer s.track("get_all_users")(&err)
	return s.next.GetAllUsers(ctx)
}

func (s *Instrumented) GetAllProjects(ctx context.Context) (_ []projects.ProjectWithUser, err error) {
	defer s.track("get_all_projects")(&err)
	return s.next.GetAllProjects(ctx)
}

func (s *Instrumented) GetUserStats(ctx context.Context) (_ *UserStats, err error) {
	defer s.track("get_user_stats")(&err)
	return s.next.GetUserStats(ctx)
}

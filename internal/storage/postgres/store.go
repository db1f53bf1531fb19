package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// Store implements storage.Storage on PostgreSQL. Every operation is a single
// statement, so concurrency control is left to the database.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
	loc *time.Location
}

type Option func(*Store)

// WithClock overrides the time source used for created_at/updated_at and for
// the monthly counter window.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the time zone whose calendar month bounds monthly counters.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewStore(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

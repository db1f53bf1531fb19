package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func setupStore(t *testing.T, opts ...Option) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewStore(sqlx.NewDb(db, "postgres"), opts...), mock
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

var (
	userCols    = []string{"id", "email", "first_name", "last_name", "profile_image_url", "is_admin", "is_active", "created_at", "updated_at"}
	projectCols = []string{"id", "user_id", "name", "description", "link", "image_url", "status", "created_at", "updated_at"}
)

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
)

func TestStore_GetUserProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first", func(t *testing.T) {
		store, mock := setupStore(t)
		older := fixedNow.Add(-time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1\nORDER BY created_at DESC, id DESC")).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p2", "u1", "Second", nil, nil, nil, "completed", fixedNow, fixedNow).
				AddRow("p1", "u1", "First", "desc", "https://example.com", nil, "active", older, older))

		items, err := store.GetUserProjects(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "p2", items[0].ID)
		assert.Equal(t, projects.StatusCompleted, items[0].Status)
		assert.Equal(t, "p1", items[1].ID)
		assert.Equal(t, "desc", *items[1].Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty list when user owns nothing", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(`FROM projects`).
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows(projectCols))

		items, err := store.GetUserProjects(ctx, "u2")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestStore_GetProject(t *testing.T) {
	ctx := context.Background()

	t.Run("found regardless of owner", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE id = $1")).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p1", "someone-else", "Theirs", nil, nil, nil, "on-hold", fixedNow, fixedNow))

		p, err := store.GetProject(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "someone-else", p.UserID)
		assert.Equal(t, projects.StatusOnHold, p.Status)
	})

	t.Run("absent", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(`FROM projects WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := store.GetProject(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestStore_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("binds owner from the caller and defaults status", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs(sqlmock.AnyArg(), "u1", "Roadmap", nil, "https://example.com", nil, "active", fixedNow).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("generated", "u1", "Roadmap", nil, "https://example.com", nil, "active", fixedNow, fixedNow))

		p, err := store.CreateProject(ctx, projects.CreateInput{
			Name: "  Roadmap ",
			Link: strPtr("https://example.com"),
		}, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", p.UserID)
		assert.Equal(t, projects.StatusActive, p.Status)
		assert.Equal(t, fixedNow, p.CreatedAt)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty name before the store", func(t *testing.T) {
		store, mock := setupStore(t)

		_, err := store.CreateProject(ctx, projects.CreateInput{Name: ""}, "u1")
		assert.ErrorIs(t, err, projects.ErrInvalidInput)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		store, _ := setupStore(t)

		_, err := store.CreateProject(ctx, projects.CreateInput{Name: "x"}, "")
		assert.ErrorIs(t, err, projects.ErrInvalidInput)
	})

	t.Run("maps foreign key violation to unknown owner", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "23503"})

		_, err := store.CreateProject(ctx, projects.CreateInput{Name: "x"}, "ghost")
		assert.ErrorIs(t, err, projects.ErrOwnerNotFound)
	})
}

func TestStore_UpdateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only supplied fields, scoped to owner", func(t *testing.T) {
		store, mock := setupStore(t)
		status := projects.StatusCompleted
		created := fixedNow.Add(-time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SET name = $3, description = NULLIF($4, ''), status = $5, updated_at = $6\nWHERE id = $1 AND user_id = $2")).
			WithArgs("p1", "u1", "Renamed", "", "completed", fixedNow).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p1", "u1", "Renamed", nil, nil, nil, "completed", created, fixedNow))

		p, err := store.UpdateProject(ctx, "p1", "u1", projects.UpdateInput{
			Name:        strPtr(" Renamed "),
			Description: strPtr(""),
			Status:      &status,
		})
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Renamed", p.Name)
		assert.Nil(t, p.Description)
		assert.Equal(t, fixedNow, p.UpdatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update only refreshes updated_at", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("SET updated_at = $3\nWHERE id = $1 AND user_id = $2")).
			WithArgs("p1", "u1", fixedNow).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p1", "u1", "Same", nil, nil, nil, "active", fixedNow, fixedNow))

		p, err := store.UpdateProject(ctx, "p1", "u1", projects.UpdateInput{})
		require.NoError(t, err)
		require.NotNil(t, p)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not owned looks like not found", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(`UPDATE projects`).
			WithArgs("p1", "intruder", "Hijacked", fixedNow).
			WillReturnError(sql.ErrNoRows)

		p, err := store.UpdateProject(ctx, "p1", "intruder", projects.UpdateInput{Name: strPtr("Hijacked")})
		require.NoError(t, err)
		assert.Nil(t, p)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		store, mock := setupStore(t)
		bad := projects.Status("archived")

		_, err := store.UpdateProject(ctx, "p1", "u1", projects.UpdateInput{Status: &bad})
		assert.ErrorIs(t, err, projects.ErrInvalidInput)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_DeleteProject(t *testing.T) {
	ctx := context.Background()

	t.Run("own project", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1 AND user_id = $2")).
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.DeleteProject(ctx, "p1", "u1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing or not owned", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs("p1", "intruder").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.DeleteProject(ctx, "p1", "intruder")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectExec(`DELETE FROM projects`).
			WillReturnError(errors.New("timeout"))

		ok, err := store.DeleteProject(ctx, "p1", "u1")
		require.Error(t, err)
		assert.False(t, ok)
	})
}

//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// setupDB opens ANOTAAI_TEST_POSTGRES_URL, applies migrations and truncates
// both tables.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("ANOTAAI_TEST_POSTGRES_URL")
	if dbURL == "" {
		t.Skip("ANOTAAI_TEST_POSTGRES_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := Open(ctx, dbURL, 10*time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, MigrateUp, nil))

	_, err = db.ExecContext(ctx, `TRUNCATE tasks, usuarios`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTaskStore_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	tasks := NewTaskStore(db, nil)
	owner := domain.NewID()
	due := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := tasks.Create(ctx, &domain.Task{
		Title:   "Buy milk",
		Status:  domain.TaskStatusPending,
		DueDate: due,
		OwnerID: owner,
	})
	require.NoError(t, err)
	assert.True(t, domain.IsValidID(created.ID))
	assert.Nil(t, created.CompletedAt)

	byDue, err := tasks.FindByDueDate(ctx, due)
	require.NoError(t, err)
	assert.Len(t, byDue, 1)

	done := time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC)
	status := domain.TaskStatusCompleted
	updated, err := tasks.Update(ctx, created.ID, domain.TaskPatch{Status: &status, CompletedAt: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, done.Equal(*updated.CompletedAt))

	cleared, err := tasks.Update(ctx, created.ID, domain.TaskPatch{ClearCompletedAt: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.CompletedAt)

	var f store.Filter
	f.Contains(store.TaskFieldTitle, "MILK")
	f.Present(store.TaskFieldCompletedAt, false)
	page, err := tasks.List(ctx, f, store.PageRequest{Page: 1, Limit: 10, SortField: store.TaskFieldCreatedAt, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalDocs)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, created.ID, page.Docs[0].ID)

	n, err := tasks.CountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = tasks.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = tasks.FindByTitle(ctx, "Buy milk")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUserStore_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	users := NewUserStore(db, nil)

	created, err := users.Create(ctx, &domain.User{
		Name: "Maria", Handle: "maria", Email: "maria@example.com",
		SecretHash: "x", SecurityAnswerHash: "y", Status: domain.UserStatusActive,
	})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{
		Name: "Other", Handle: "maria", Email: "other@example.com",
		SecretHash: "x", SecurityAnswerHash: "y", Status: domain.UserStatusActive,
	})
	var de *store.DuplicateError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "apelido", de.Field)

	banned := domain.UserStatusBanned
	updated, err := users.Update(ctx, created.ID, domain.UserPatch{Status: &banned})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusBanned, updated.Status)

	_, err = users.GetByID(ctx, domain.NewID())
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/oauth/internal/user/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func TestPostgreSQLUserRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "alice",
		Password: "hashed_password",
		IsActive: true,
	}

	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID, user.Username, user.Password, user.IsActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID, user.Username, user.Password, user.IsActive).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepositoryGetByUsername(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		rows := sqlmock.NewRows([]string{"id", "username", "password", "is_active", "created_at"}).
			AddRow(userID, "alice", "hashed_password", true, time.Now())
		mock.ExpectQuery(`SELECT id, username, password, is_active, created_at`).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.True(t, user.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(`SELECT id, username, password, is_active, created_at`).
			WithArgs("bob").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

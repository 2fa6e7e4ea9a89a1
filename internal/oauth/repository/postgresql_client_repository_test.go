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

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

func sampleClient() *oauthDomain.Client {
	return &oauthDomain.Client{
		ID:          uuid.Must(uuid.NewV7()),
		ClientID:    "0123456789abcdef0123456789abcdef",
		Secret:      "hashed_secret",
		Name:        "blog backend",
		RedirectURI: "https://example.com/callback",
		Scopes:      []string{"read", "write"},
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPostgreSQLClientRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		client := sampleClient()

		mock.ExpectExec(`INSERT INTO clients`).
			WithArgs(
				client.ID, client.ClientID, client.Secret, client.Name, client.RedirectURI,
				[]byte(`["read","write"]`), client.IsActive, client.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("client id collision", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLClientRepository(db)

		mock.ExpectExec(`INSERT INTO clients`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, sampleClient())
		assert.ErrorIs(t, err, oauthDomain.ErrClientIDExists)
	})
}

func TestPostgreSQLClientRepositoryGetByClientID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		client := sampleClient()

		rows := sqlmock.NewRows([]string{
			"id", "client_id", "secret", "name", "redirect_uri", "scopes", "is_active", "created_at",
		}).AddRow(
			client.ID, client.ClientID, client.Secret, client.Name, client.RedirectURI,
			[]byte(`["read","write"]`), client.IsActive, client.CreatedAt,
		)
		mock.ExpectQuery(`SELECT (.+) FROM clients WHERE client_id = \$1`).
			WithArgs(client.ClientID).
			WillReturnRows(rows)

		got, err := repo.GetByClientID(ctx, client.ClientID)
		require.NoError(t, err)

		assert.Equal(t, client.ID, got.ID)
		assert.Equal(t, []string{"read", "write"}, got.Scopes)
		assert.True(t, got.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLClientRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM clients WHERE client_id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByClientID(ctx, "missing")
		assert.ErrorIs(t, err, oauthDomain.ErrClientNotFound)
	})
}

func TestPostgreSQLScopeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create duplicate identifier", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLScopeRepository(db)

		mock.ExpectExec(`INSERT INTO scopes`).
			WillReturnError(&pq.Error{Code: "23505"})

		scope := &oauthDomain.Scope{ID: uuid.Must(uuid.NewV7()), Identifier: "read"}
		err := repo.Create(ctx, scope)
		assert.ErrorIs(t, err, oauthDomain.ErrScopeAlreadyExists)
	})

	t.Run("get by identifier", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLScopeRepository(db)
		scopeID := uuid.Must(uuid.NewV7())

		rows := sqlmock.NewRows([]string{"id", "identifier", "name", "description", "created_at"}).
			AddRow(scopeID, "read", "Read access", "Read-only access to resources", time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM scopes WHERE identifier = \$1`).
			WithArgs("read").
			WillReturnRows(rows)

		scope, err := repo.GetByIdentifier(ctx, "read")
		require.NoError(t, err)
		assert.Equal(t, scopeID, scope.ID)
		assert.Equal(t, "read", scope.Identifier)
	})

	t.Run("list", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLScopeRepository(db)

		rows := sqlmock.NewRows([]string{"id", "identifier", "name", "description", "created_at"}).
			AddRow(uuid.Must(uuid.NewV7()), "read", "Read access", "", time.Now()).
			AddRow(uuid.Must(uuid.NewV7()), "write", "Write access", "", time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM scopes ORDER BY identifier`).
			WillReturnRows(rows)

		scopes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, scopes, 2)
		assert.Equal(t, "read", scopes[0].Identifier)
		assert.Equal(t, "write", scopes[1].Identifier)
	})
}

// Package repository implements data persistence for OAuth entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses CHAR(36).
// Scope lists are stored as JSON in both backends.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/oauth/internal/database"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token. A value collision maps to ErrTokenValueExists
// so callers can regenerate and retry.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *oauthDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	scopesJSON, err := json.Marshal(token.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token scopes")
	}

	query := `INSERT INTO tokens (id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.Kind,
		token.Value,
		token.ParentTokenID,
		token.ClientID,
		token.UserID,
		scopesJSON,
		token.Status,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return oauthDomain.ErrTokenValueExists
		}
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByValue retrieves a token by kind and value.
func (p *PostgreSQLTokenRepository) GetByValue(
	ctx context.Context,
	kind oauthDomain.TokenKind,
	value string,
) (*oauthDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at
			  FROM tokens WHERE kind = $1 AND value = $2`

	return scanPostgreSQLToken(querier.QueryRowContext(ctx, query, kind, value))
}

// Get retrieves a token by ID.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at
			  FROM tokens WHERE id = $1`

	return scanPostgreSQLToken(querier.QueryRowContext(ctx, query, id))
}

// Revoke marks a token as revoked. Revoking an already revoked token is a
// no-op; the row is never deleted.
func (p *PostgreSQLTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET status = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// Consume transitions an active token to revoked. Unlike Revoke it fails with
// ErrTokenNotActive when no active row was transitioned, so a single-use
// credential is spent by exactly one of any concurrent requests.
func (p *PostgreSQLTokenRepository) Consume(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET status = $1 WHERE id = $2 AND status = $3`

	result, err := querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, id, oauthDomain.StatusActive)
	if err != nil {
		return apperrors.Wrap(err, "failed to consume token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to count consumed tokens")
	}
	if affected == 0 {
		return oauthDomain.ErrTokenNotActive
	}
	return nil
}

// RevokeByParentID revokes every token whose parent is the given token.
func (p *PostgreSQLTokenRepository) RevokeByParentID(ctx context.Context, parentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET status = $1 WHERE parent_token_id = $2`

	_, err := querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, parentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke child tokens")
	}
	return nil
}

// DeleteExpired removes tokens that expired before the cutoff and returns the
// number of rows deleted. Housekeeping only; revocation never deletes.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tokens WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted tokens")
	}
	return deleted, nil
}

func scanPostgreSQLToken(row *sql.Row) (*oauthDomain.Token, error) {
	var token oauthDomain.Token
	var scopesJSON []byte

	err := row.Scan(
		&token.ID,
		&token.Kind,
		&token.Value,
		&token.ParentTokenID,
		&token.ClientID,
		&token.UserID,
		&scopesJSON,
		&token.Status,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oauthDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	if err := json.Unmarshal(scopesJSON, &token.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token scopes")
	}

	return &token, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

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

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token using BINARY(16) for UUIDs. A value collision
// maps to ErrTokenValueExists so callers can regenerate and retry.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *oauthDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	scopesJSON, err := json.Marshal(token.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token scopes")
	}

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	clientID, err := token.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	parentID, err := marshalUUIDPtr(token.ParentTokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal parent token id")
	}

	userID, err := marshalUUIDPtr(token.UserID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO tokens (id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.Kind,
		token.Value,
		parentID,
		clientID,
		userID,
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
func (m *MySQLTokenRepository) GetByValue(
	ctx context.Context,
	kind oauthDomain.TokenKind,
	value string,
) (*oauthDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at
			  FROM tokens WHERE kind = ? AND value = ?`

	return scanMySQLToken(querier.QueryRowContext(ctx, query, kind, value))
}

// Get retrieves a token by ID.
func (m *MySQLTokenRepository) Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `SELECT id, kind, value, parent_token_id, client_id, user_id, scopes, status, expires_at, created_at
			  FROM tokens WHERE id = ?`

	return scanMySQLToken(querier.QueryRowContext(ctx, query, idBytes))
}

// Revoke marks a token as revoked. Revoking an already revoked token is a
// no-op; the row is never deleted.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `UPDATE tokens SET status = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// Consume transitions an active token to revoked. Unlike Revoke it fails with
// ErrTokenNotActive when no active row was transitioned, so a single-use
// credential is spent by exactly one of any concurrent requests.
func (m *MySQLTokenRepository) Consume(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `UPDATE tokens SET status = ? WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, idBytes, oauthDomain.StatusActive)
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
func (m *MySQLTokenRepository) RevokeByParentID(ctx context.Context, parentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := parentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal parent token id")
	}

	query := `UPDATE tokens SET status = ? WHERE parent_token_id = ?`

	_, err = querier.ExecContext(ctx, query, oauthDomain.StatusRevoked, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke child tokens")
	}
	return nil
}

// DeleteExpired removes tokens that expired before the cutoff and returns the
// number of rows deleted.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE expires_at < ?`

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

func scanMySQLToken(row *sql.Row) (*oauthDomain.Token, error) {
	var token oauthDomain.Token
	var idBytes, parentIDBytes, clientIDBytes, userIDBytes []byte
	var scopesJSON []byte

	err := row.Scan(
		&idBytes,
		&token.Kind,
		&token.Value,
		&parentIDBytes,
		&clientIDBytes,
		&userIDBytes,
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

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}
	if err := token.ClientID.UnmarshalBinary(clientIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	token.ParentTokenID, err = unmarshalUUIDPtr(parentIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal parent token id")
	}
	token.UserID, err = unmarshalUUIDPtr(userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	if err := json.Unmarshal(scopesJSON, &token.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token scopes")
	}

	return &token, nil
}

// marshalUUIDPtr converts an optional UUID into its BINARY(16) representation,
// keeping nil as SQL NULL.
func marshalUUIDPtr(id *uuid.UUID) ([]byte, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}

// unmarshalUUIDPtr converts a nullable BINARY(16) column back into an
// optional UUID.
func unmarshalUUIDPtr(b []byte) (*uuid.UUID, error) {
	if len(b) == 0 {
		return nil, nil
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/oauth/internal/database"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// MySQLClientRepository implements Client persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client using BINARY(16) for UUIDs. A public client ID
// collision maps to ErrClientIDExists so callers can regenerate and retry.
func (m *MySQLClientRepository) Create(ctx context.Context, client *oauthDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	scopesJSON, err := json.Marshal(client.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client scopes")
	}

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO clients (id, client_id, secret, name, redirect_uri, scopes, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.ClientID,
		client.Secret,
		client.Name,
		client.RedirectURI,
		scopesJSON,
		client.IsActive,
		client.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return oauthDomain.ErrClientIDExists
		}
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Get retrieves a client by internal ID.
func (m *MySQLClientRepository) Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT id, client_id, secret, name, redirect_uri, scopes, is_active, created_at
			  FROM clients WHERE id = ?`

	return scanMySQLClient(querier.QueryRowContext(ctx, query, idBytes))
}

// GetByClientID retrieves a client by its public identifier.
func (m *MySQLClientRepository) GetByClientID(
	ctx context.Context,
	clientID string,
) (*oauthDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, client_id, secret, name, redirect_uri, scopes, is_active, created_at
			  FROM clients WHERE client_id = ?`

	return scanMySQLClient(querier.QueryRowContext(ctx, query, clientID))
}

func scanMySQLClient(row *sql.Row) (*oauthDomain.Client, error) {
	var client oauthDomain.Client
	var idBytes []byte
	var scopesJSON []byte

	err := row.Scan(
		&idBytes,
		&client.ClientID,
		&client.Secret,
		&client.Name,
		&client.RedirectURI,
		&scopesJSON,
		&client.IsActive,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oauthDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if err := client.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	if err := json.Unmarshal(scopesJSON, &client.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client scopes")
	}

	return &client, nil
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

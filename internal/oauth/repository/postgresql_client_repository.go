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

// PostgreSQLClientRepository implements Client persistence for PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client. A public client ID collision maps to
// ErrClientIDExists so callers can regenerate and retry.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *oauthDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	scopesJSON, err := json.Marshal(client.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client scopes")
	}

	query := `INSERT INTO clients (id, client_id, secret, name, redirect_uri, scopes, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		client.ID,
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
func (p *PostgreSQLClientRepository) Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, secret, name, redirect_uri, scopes, is_active, created_at
			  FROM clients WHERE id = $1`

	return scanPostgreSQLClient(querier.QueryRowContext(ctx, query, id))
}

// GetByClientID retrieves a client by its public identifier.
func (p *PostgreSQLClientRepository) GetByClientID(
	ctx context.Context,
	clientID string,
) (*oauthDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, secret, name, redirect_uri, scopes, is_active, created_at
			  FROM clients WHERE client_id = $1`

	return scanPostgreSQLClient(querier.QueryRowContext(ctx, query, clientID))
}

func scanPostgreSQLClient(row *sql.Row) (*oauthDomain.Client, error) {
	var client oauthDomain.Client
	var scopesJSON []byte

	err := row.Scan(
		&client.ID,
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

	if err := json.Unmarshal(scopesJSON, &client.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client scopes")
	}

	return &client, nil
}

// NewPostgreSQLClientRepository creates a new PostgreSQL Client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

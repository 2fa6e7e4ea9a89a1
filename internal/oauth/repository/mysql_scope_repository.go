package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/oauth/internal/database"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// MySQLScopeRepository implements Scope persistence for MySQL.
type MySQLScopeRepository struct {
	db *sql.DB
}

// Create inserts a new scope.
func (m *MySQLScopeRepository) Create(ctx context.Context, scope *oauthDomain.Scope) error {
	querier := database.GetTx(ctx, m.db)

	id, err := scope.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal scope id")
	}

	query := `INSERT INTO scopes (id, identifier, name, description, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		scope.Identifier,
		scope.Name,
		scope.Description,
		scope.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return oauthDomain.ErrScopeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create scope")
	}
	return nil
}

// GetByIdentifier retrieves a scope by its machine identifier.
func (m *MySQLScopeRepository) GetByIdentifier(
	ctx context.Context,
	identifier string,
) (*oauthDomain.Scope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, identifier, name, description, created_at
			  FROM scopes WHERE identifier = ?`

	var scope oauthDomain.Scope
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, identifier).Scan(
		&idBytes,
		&scope.Identifier,
		&scope.Name,
		&scope.Description,
		&scope.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oauthDomain.ErrScopeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get scope")
	}

	if err := scope.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal scope id")
	}

	return &scope, nil
}

// List retrieves all registered scopes ordered by identifier.
func (m *MySQLScopeRepository) List(ctx context.Context) ([]*oauthDomain.Scope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, identifier, name, description, created_at
			  FROM scopes ORDER BY identifier`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list scopes")
	}
	defer func() { _ = rows.Close() }()

	var scopes []*oauthDomain.Scope
	for rows.Next() {
		var scope oauthDomain.Scope
		var idBytes []byte

		err := rows.Scan(&idBytes, &scope.Identifier, &scope.Name, &scope.Description, &scope.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan scope")
		}
		if err := scope.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal scope id")
		}
		scopes = append(scopes, &scope)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate scopes")
	}

	return scopes, nil
}

// NewMySQLScopeRepository creates a new MySQL Scope repository.
func NewMySQLScopeRepository(db *sql.DB) *MySQLScopeRepository {
	return &MySQLScopeRepository{db: db}
}

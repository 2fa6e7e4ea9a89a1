package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/oauth/internal/database"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// PostgreSQLScopeRepository implements Scope persistence for PostgreSQL.
type PostgreSQLScopeRepository struct {
	db *sql.DB
}

// Create inserts a new scope.
func (p *PostgreSQLScopeRepository) Create(ctx context.Context, scope *oauthDomain.Scope) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO scopes (id, identifier, name, description, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		scope.ID,
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
func (p *PostgreSQLScopeRepository) GetByIdentifier(
	ctx context.Context,
	identifier string,
) (*oauthDomain.Scope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, identifier, name, description, created_at
			  FROM scopes WHERE identifier = $1`

	var scope oauthDomain.Scope

	err := querier.QueryRowContext(ctx, query, identifier).Scan(
		&scope.ID,
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

	return &scope, nil
}

// List retrieves all registered scopes ordered by identifier.
func (p *PostgreSQLScopeRepository) List(ctx context.Context) ([]*oauthDomain.Scope, error) {
	querier := database.GetTx(ctx, p.db)

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
		err := rows.Scan(&scope.ID, &scope.Identifier, &scope.Name, &scope.Description, &scope.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan scope")
		}
		scopes = append(scopes, &scope)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate scopes")
	}

	return scopes, nil
}

// NewPostgreSQLScopeRepository creates a new PostgreSQL Scope repository.
func NewPostgreSQLScopeRepository(db *sql.DB) *PostgreSQLScopeRepository {
	return &PostgreSQLScopeRepository{db: db}
}

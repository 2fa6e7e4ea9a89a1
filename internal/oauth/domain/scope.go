package domain

import (
	"time"

	"github.com/google/uuid"
)

// Scope is a named permission unit. Tokens carry sets of scope identifiers and
// protected operations declare the identifiers they require.
type Scope struct {
	ID          uuid.UUID
	Identifier  string // Unique key used in tokens and route requirements
	Name        string
	Description string
	CreatedAt   time.Time
}

// CreateScopeInput contains the parameters for registering a new scope.
type CreateScopeInput struct {
	Identifier  string
	Name        string
	Description string
}

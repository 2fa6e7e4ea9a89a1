package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Client represents an API client able to request tokens. Clients are
// confidential by design: every flow requires the client secret.
type Client struct {
	ID uuid.UUID // Storage identifier (UUIDv7)

	// ClientID is the public identifier presented in grant requests. Generated
	// by drawing random values until one is unique.
	ClientID string

	Secret string //nolint:gosec // hashed client secret (not plaintext)

	// Name is a human-readable client name.
	Name string

	// RedirectURI is the registered redirect target for the authorization-code flow.
	RedirectURI string

	// Scopes lists the scope identifiers this client is permitted to request.
	Scopes []string

	// IsActive controls whether the client can participate in any grant flow.
	IsActive bool

	CreatedAt time.Time
}

// MissingScopes returns the requested scope identifiers the client is not
// permitted to use. An empty result means the whole request is covered.
func (c *Client) MissingScopes(requested []string) []string {
	var missing []string
	for _, scope := range requested {
		if !slices.Contains(c.Scopes, scope) {
			missing = append(missing, scope)
		}
	}
	return missing
}

// CreateClientInput contains the parameters for provisioning a new client.
// The public client ID and the secret are generated, never caller-supplied.
type CreateClientInput struct {
	Name        string
	RedirectURI string
	Scopes      []string
	IsActive    bool
}

// CreateClientOutput contains the result of provisioning a new client.
// SECURITY: PlainSecret is returned exactly once and is not recoverable later.
type CreateClientOutput struct {
	ID          uuid.UUID
	ClientID    string
	PlainSecret string
}

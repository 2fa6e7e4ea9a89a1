package domain

// Authentication is the result of validating a bearer credential: the stored
// access token plus the resolved username when the token is user-bound.
type Authentication struct {
	Token *Token

	// Username of the bound resource owner, empty for client-credentials tokens.
	Username string
}

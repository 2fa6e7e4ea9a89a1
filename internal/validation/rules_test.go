package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/oauth/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	tests := []struct {
		name      string
		password  string
		shouldErr bool
		errMsg    string
	}{
		{
			name:      "valid password",
			password:  "SecurePass123!",
			shouldErr: false,
		},
		{
			name:      "too short",
			password:  "Short1!",
			shouldErr: true,
			errMsg:    "password must be at least 8 characters",
		},
		{
			name:      "missing uppercase",
			password:  "securepass123!",
			shouldErr: true,
			errMsg:    "uppercase letter",
		},
		{
			name:      "missing lowercase",
			password:  "SECUREPASS123!",
			shouldErr: true,
			errMsg:    "lowercase letter",
		},
		{
			name:      "missing number",
			password:  "SecurePass!",
			shouldErr: true,
			errMsg:    "number",
		},
		{
			name:      "missing special char",
			password:  "SecurePass123",
			shouldErr: true,
			errMsg:    "special character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScopeIdentifier(t *testing.T) {
	valid := []string{"read", "blog_write", "orders:refund", "users.list", "a-b", "root"}
	for _, s := range valid {
		assert.NoError(t, ScopeIdentifier.Validate(s), s)
	}

	invalid := []string{"Read", "with space", "_leading", "-leading", "café"}
	for _, s := range invalid {
		assert.Error(t, ScopeIdentifier.Validate(s), s)
	}
}

func TestUsername(t *testing.T) {
	valid := []string{"alice", "Alice42", "a.b-c_d", "alice@example.com"}
	for _, s := range valid {
		assert.NoError(t, Username.Validate(s), s)
	}

	invalid := []string{"_alice", "with space", "álice"}
	for _, s := range invalid {
		assert.Error(t, Username.Validate(s), s)
	}
}

func TestAbsoluteURL(t *testing.T) {
	valid := []string{"https://example.com/callback", "http://localhost:8080/cb"}
	for _, s := range valid {
		assert.NoError(t, AbsoluteURL.Validate(s), s)
	}

	invalid := []string{"example.com/callback", "ftp://example.com", "/relative", "https://"}
	for _, s := range invalid {
		assert.Error(t, AbsoluteURL.Validate(s), s)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

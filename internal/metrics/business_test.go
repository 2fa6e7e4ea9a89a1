package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("oauth")
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	business, err := NewBusinessMetrics(provider.MeterProvider(), "oauth")
	require.NoError(t, err)

	ctx := context.Background()

	assert.NotPanics(t, func() {
		business.RecordOperation(ctx, "grant", "client_credentials", "success")
		business.RecordOperation(ctx, "token", "token_validate", "error")
		business.RecordDuration(ctx, "grant", "client_credentials", 25*time.Millisecond, "success")
	})
}

func TestNoOpBusinessMetrics(t *testing.T) {
	business := NewNoOpBusinessMetrics()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		business.RecordOperation(ctx, "grant", "authorization_code", "success")
		business.RecordDuration(ctx, "grant", "authorization_code", time.Millisecond, "success")
	})
}

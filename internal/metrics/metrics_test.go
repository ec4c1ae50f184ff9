package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// Disabled clients drop everything without touching AWS
	client.RecordAPIRequest("/api/v1/progressions", 200, time.Millisecond)
	client.RecordComposition("minor", 3, 1, 0, time.Millisecond)
	client.RecordRender(true, 512)
}

func TestClient_NilIsNoop(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	assert.NotPanics(t, func() {
		client.RecordAPIRequest("/health", 200, time.Millisecond)
		client.RecordComposition("major", 3, 0, 0, time.Millisecond)
		client.RecordRender(false, 0)
	})
}

func TestSentryMetrics_WithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordAPIRequest(ctx, "/api/v1/progressions", 500, time.Second)
		m.RecordComposition(ctx, "comp-1", "major", 3, 0, 1, time.Second)
		m.RecordRender(ctx, "comp-1", 1024, nil)
		m.RecordRender(ctx, "comp-1", 0, errors.New("boom"))
	})
}

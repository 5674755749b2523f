package neurallog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilderDefaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestConfigBuilderChaining(t *testing.T) {
	handlerCalled := false

	cfg := NewConfigBuilder().
		WithServerURL("https://logs.example.com").
		WithNamespace("production").
		WithAPIKey("key-123").
		WithAsync(true).
		WithBatchSize(50).
		WithBatchInterval(2 * time.Second).
		WithRetry(5, 500*time.Millisecond).
		WithTimeout(10 * time.Second).
		WithMaxConnections(25).
		WithHeader("X-Tenant", "acme").
		WithHeaders(map[string]string{"X-Env": "prod"}).
		WithDebug(true).
		WithFailureHandler(func(BatchFailure) { handlerCalled = true }).
		Build()

	assert.Equal(t, "https://logs.example.com", cfg.ServerURL)
	assert.Equal(t, "production", cfg.Namespace)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.True(t, cfg.AsyncEnabled)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.BatchInterval)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 25, cfg.MaxConnections)
	assert.Equal(t, "acme", cfg.Headers["X-Tenant"])
	assert.Equal(t, "prod", cfg.Headers["X-Env"])
	assert.True(t, cfg.DebugEnabled)

	require.NotNil(t, cfg.FailureHandler)
	cfg.FailureHandler(BatchFailure{})
	assert.True(t, handlerCalled)
}

func TestConfigBuilderSynchronousDefaults(t *testing.T) {
	cfg := NewConfigBuilder().WithSynchronousDefaults().Build()

	assert.False(t, cfg.AsyncEnabled)
}

func TestConfigBuilderBuildReturnsCopy(t *testing.T) {
	builder := NewConfigBuilder()

	first := builder.Build()
	second := builder.WithNamespace("changed").Build()

	assert.Equal(t, "default", first.Namespace)
	assert.Equal(t, "changed", second.Namespace)
}

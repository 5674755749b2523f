package neurallog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3030", cfg.ServerURL)
	assert.Equal(t, "default", cfg.Namespace)
	assert.True(t, cfg.AsyncEnabled)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.BatchInterval)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.MaxConnections)
	assert.False(t, cfg.DebugEnabled)
}

func TestValidateNormalizesZeroValues(t *testing.T) {
	cfg := Config{ServerURL: "http://collector:3030"}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.BatchInterval)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.MaxConnections)
}

func TestValidateRejectsEmptyServerURL(t *testing.T) {
	cfg := Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server URL")
}

func TestValidateRejectsMalformedServerURL(t *testing.T) {
	cfg := Config{ServerURL: "not a url"}

	require.Error(t, cfg.Validate())
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Config{
		ServerURL:     "http://collector:3030",
		BatchSize:     -1,
		MaxRetries:    -1,
		BatchInterval: -time.Second,
		RetryBackoff:  -time.Second,
	}

	err := cfg.Validate()
	require.Error(t, err)

	message := err.Error()
	assert.Contains(t, message, "batch size")
	assert.Contains(t, message, "max retries")
	assert.Contains(t, message, "batch interval")
	assert.Contains(t, message, "retry backoff")
}

func TestValidateNilConfig(t *testing.T) {
	var cfg *Config

	require.ErrorIs(t, cfg.Validate(), ErrNilConfig)
}

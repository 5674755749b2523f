package neurallog

import (
	"time"
)

// ConfigBuilder provides a fluent API for constructing SDK configurations.
// It allows for more readable and chainable configuration setup.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder with sensible defaults.
// This is the entry point for the fluent configuration API.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// WithServerURL sets the collector base URL.
// Example: builder.WithServerURL("https://logs.example.com").
func (b *ConfigBuilder) WithServerURL(serverURL string) *ConfigBuilder {
	b.config.ServerURL = serverURL

	return b
}

// WithNamespace sets the collector namespace.
func (b *ConfigBuilder) WithNamespace(namespace string) *ConfigBuilder {
	b.config.Namespace = namespace

	return b
}

// WithAPIKey sets the API key sent with every request.
func (b *ConfigBuilder) WithAPIKey(apiKey string) *ConfigBuilder {
	b.config.APIKey = apiKey

	return b
}

// WithAsync enables or disables the batching and background delivery engine.
func (b *ConfigBuilder) WithAsync(enabled bool) *ConfigBuilder {
	b.config.AsyncEnabled = enabled

	return b
}

// WithBatchSize sets the number of pending records that triggers a
// size-based flush.
// Example: builder.WithBatchSize(50).
func (b *ConfigBuilder) WithBatchSize(size int) *ConfigBuilder {
	b.config.BatchSize = size

	return b
}

// WithBatchInterval sets the cadence of time-based flushes.
// Example: builder.WithBatchInterval(2 * time.Second).
func (b *ConfigBuilder) WithBatchInterval(interval time.Duration) *ConfigBuilder {
	b.config.BatchInterval = interval

	return b
}

// WithRetry configures the retry policy for failed deliveries.
// Example: builder.WithRetry(5, 500*time.Millisecond).
func (b *ConfigBuilder) WithRetry(maxRetries int, backoff time.Duration) *ConfigBuilder {
	b.config.MaxRetries = maxRetries
	b.config.RetryBackoff = backoff

	return b
}

// WithTimeout bounds each transport request.
func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	b.config.Timeout = timeout

	return b
}

// WithMaxConnections caps the connection pool toward the collector.
func (b *ConfigBuilder) WithMaxConnections(maxConnections int) *ConfigBuilder {
	b.config.MaxConnections = maxConnections

	return b
}

// WithHeader attaches an additional header to every request.
// Example: builder.WithHeader("X-Tenant", "acme").
func (b *ConfigBuilder) WithHeader(key, value string) *ConfigBuilder {
	if b.config.Headers == nil {
		b.config.Headers = make(map[string]string)
	}

	b.config.Headers[key] = value

	return b
}

// WithHeaders attaches multiple additional headers to every request.
func (b *ConfigBuilder) WithHeaders(headers map[string]string) *ConfigBuilder {
	for key, value := range headers {
		b.WithHeader(key, value)
	}

	return b
}

// WithDebug enables self-diagnostic output on stderr.
func (b *ConfigBuilder) WithDebug(enabled bool) *ConfigBuilder {
	b.config.DebugEnabled = enabled

	return b
}

// WithFailureHandler sets the handler invoked when a batch is dropped.
func (b *ConfigBuilder) WithFailureHandler(handler FailureHandler) *ConfigBuilder {
	b.config.FailureHandler = handler

	return b
}

// WithSynchronousDefaults configures the SDK for synchronous, one-request-
// per-record delivery. Useful in tests and short-lived processes.
func (b *ConfigBuilder) WithSynchronousDefaults() *ConfigBuilder {
	return b.WithAsync(false)
}

// Build creates a Config object from the builder.
func (b *ConfigBuilder) Build() *Config {
	config := b.config

	return &config
}

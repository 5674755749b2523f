package neurallog

import (
	"net/url"
	"time"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultServerURL is the default collector endpoint.
	DefaultServerURL = "http://localhost:3030"
	// DefaultNamespace is the namespace used when none is configured. It is
	// omitted from request paths.
	DefaultNamespace = "default"
	// DefaultBatchSize is the default number of records per batch.
	DefaultBatchSize = 100
	// DefaultBatchInterval is the default cadence of time-based flushes.
	DefaultBatchInterval = 5 * time.Second
	// DefaultMaxRetries is the default number of retries after the initial
	// delivery attempt.
	DefaultMaxRetries = 3
	// DefaultRetryBackoff is the default base backoff between retries.
	DefaultRetryBackoff = time.Second
	// DefaultTimeout is the default per-request transport timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxConnections is the default connection pool size.
	DefaultMaxConnections = 10
)

// Config holds configuration for the SDK.
type Config struct {
	// ServerURL is the base URL of the collector.
	ServerURL string
	// Namespace scopes log streams on the collector. The default namespace
	// is omitted from request paths.
	Namespace string
	// APIKey authenticates requests via the X-API-Key header when set.
	APIKey string
	// AsyncEnabled enables the batching and background delivery engine.
	// When false every record is sent synchronously and individually.
	AsyncEnabled bool
	// BatchSize is the number of pending records that triggers a size-based
	// flush. Values <= 1 disable batching.
	BatchSize int
	// BatchInterval is the cadence of time-based flushes per logger.
	BatchInterval time.Duration
	// MaxRetries is the number of retries after the initial delivery attempt.
	MaxRetries int
	// RetryBackoff is the base backoff between retries; the delay doubles
	// with each attempt.
	RetryBackoff time.Duration
	// DebugEnabled turns on self-diagnostic output on stderr.
	DebugEnabled bool
	// Timeout bounds each transport request.
	Timeout time.Duration
	// MaxConnections caps the idle connection pool toward the collector.
	MaxConnections int
	// Headers are additional headers attached to every request.
	Headers map[string]string
	// FailureHandler receives terminal batch failures. When nil, failures
	// are written to the diagnostic output.
	FailureHandler FailureHandler
}

// DefaultConfig returns the default SDK configuration.
func DefaultConfig() Config {
	return Config{
		ServerURL:      DefaultServerURL,
		Namespace:      DefaultNamespace,
		AsyncEnabled:   true,
		BatchSize:      DefaultBatchSize,
		BatchInterval:  DefaultBatchInterval,
		MaxRetries:     DefaultMaxRetries,
		RetryBackoff:   DefaultRetryBackoff,
		Timeout:        DefaultTimeout,
		MaxConnections: DefaultMaxConnections,
		Headers:        make(map[string]string),
	}
}

// Validate checks the configuration and normalizes missing values to their
// defaults. It reports every invalid setting at once.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	errorGroup := ewrap.NewErrorGroup()

	if c.ServerURL == "" {
		errorGroup.Add(ewrap.New("server URL cannot be empty"))
	} else if _, err := url.ParseRequestURI(c.ServerURL); err != nil {
		errorGroup.Add(ewrap.Wrapf(err, "invalid server URL %s", c.ServerURL))
	}

	if c.BatchSize < 0 {
		errorGroup.Add(ewrap.New("batch size cannot be negative"))
	}

	if c.MaxRetries < 0 {
		errorGroup.Add(ewrap.New("max retries cannot be negative"))
	}

	if c.BatchInterval < 0 {
		errorGroup.Add(ewrap.New("batch interval cannot be negative"))
	}

	if c.RetryBackoff < 0 {
		errorGroup.Add(ewrap.New("retry backoff cannot be negative"))
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}

	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}

	if c.BatchInterval == 0 {
		c.BatchInterval = DefaultBatchInterval
	}

	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.MaxConnections <= 0 {
		c.MaxConnections = DefaultMaxConnections
	}

	return nil
}

package configloader

import (
	"time"

	"github.com/neurallog/neurallog-go"
)

// rawConfig mirrors the external configuration schema. Durations are
// expressed in milliseconds to match the collector's conventions. Pointer
// fields distinguish "absent" from zero values.
type rawConfig struct {
	ServerURL       string            `mapstructure:"server_url"        yaml:"server_url"`
	Namespace       string            `mapstructure:"namespace"         yaml:"namespace"`
	APIKey          string            `mapstructure:"api_key"           yaml:"api_key"`
	AsyncEnabled    *bool             `mapstructure:"async_enabled"     yaml:"async_enabled"`
	BatchSize       *int              `mapstructure:"batch_size"        yaml:"batch_size"`
	BatchIntervalMS *int              `mapstructure:"batch_interval_ms" yaml:"batch_interval_ms"`
	MaxRetries      *int              `mapstructure:"max_retries"       yaml:"max_retries"`
	RetryBackoffMS  *int              `mapstructure:"retry_backoff_ms"  yaml:"retry_backoff_ms"`
	DebugEnabled    *bool             `mapstructure:"debug_enabled"     yaml:"debug_enabled"`
	TimeoutMS       *int              `mapstructure:"timeout_ms"        yaml:"timeout_ms"`
	MaxConnections  *int              `mapstructure:"max_connections"   yaml:"max_connections"`
	Headers         map[string]string `mapstructure:"headers"           yaml:"headers"`
}

func applyRaw(raw rawConfig) (*neurallog.Config, error) {
	cfg := neurallog.DefaultConfig()

	if raw.ServerURL != "" {
		cfg.ServerURL = raw.ServerURL
	}

	if raw.Namespace != "" {
		cfg.Namespace = raw.Namespace
	}

	if raw.APIKey != "" {
		cfg.APIKey = raw.APIKey
	}

	if raw.AsyncEnabled != nil {
		cfg.AsyncEnabled = *raw.AsyncEnabled
	}

	if raw.BatchSize != nil {
		cfg.BatchSize = *raw.BatchSize
	}

	if raw.BatchIntervalMS != nil {
		cfg.BatchInterval = time.Duration(*raw.BatchIntervalMS) * time.Millisecond
	}

	if raw.MaxRetries != nil {
		cfg.MaxRetries = *raw.MaxRetries
	}

	if raw.RetryBackoffMS != nil {
		cfg.RetryBackoff = time.Duration(*raw.RetryBackoffMS) * time.Millisecond
	}

	if raw.DebugEnabled != nil {
		cfg.DebugEnabled = *raw.DebugEnabled
	}

	if raw.TimeoutMS != nil {
		cfg.Timeout = time.Duration(*raw.TimeoutMS) * time.Millisecond
	}

	if raw.MaxConnections != nil {
		cfg.MaxConnections = *raw.MaxConnections
	}

	if len(raw.Headers) > 0 {
		cfg.Headers = make(map[string]string, len(raw.Headers))
		for key, value := range raw.Headers {
			cfg.Headers[key] = value
		}
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func allKeys() []string {
	return []string{
		"server_url",
		"namespace",
		"api_key",
		"async_enabled",
		"batch_size",
		"batch_interval_ms",
		"max_retries",
		"retry_backoff_ms",
		"debug_enabled",
		"timeout_ms",
		"max_connections",
		"headers",
	}
}

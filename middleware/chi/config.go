package chi

import "github.com/neurallog/neurallog-go"

// Config defines the configuration options for the Chi middleware.
type Config struct {
	Logger           neurallog.Logger
	IncludeHeaders   []string
	ContextExtractor func(r any) map[string]neurallog.Value
	CaptureRequestID bool
	LatencyFieldName string
	StatusFieldName  string
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = neurallog.NewNoop()
	}

	if c.ContextExtractor == nil {
		c.ContextExtractor = DefaultContextExtractor
	}

	if c.LatencyFieldName == "" {
		c.LatencyFieldName = "latency_ms"
	}

	if c.StatusFieldName == "" {
		c.StatusFieldName = "status"
	}

	return c
}

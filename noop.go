package neurallog

import (
	"context"
)

// NoopLogger is a logger that does nothing. It is used where a Logger is
// required but delivery is not wanted, such as disabled integrations and
// tests.
type NoopLogger struct{}

// NewNoop creates a new NoopLogger.
func NewNoop() Logger {
	return &NoopLogger{}
}

// Ensure NoopLogger implements Logger interface.
var _ Logger = (*NoopLogger)(nil)

// Basic logging methods.

// Debug logs a message at the Debug level.
func (*NoopLogger) Debug(_ string) {}

// Info logs a message at the Info level.
func (*NoopLogger) Info(_ string) {}

// Warn logs a message at the Warn level.
func (*NoopLogger) Warn(_ string) {}

// Error logs a message at the Error level.
func (*NoopLogger) Error(_ string) {}

// Fatal logs a message at the Fatal level.
func (*NoopLogger) Fatal(_ string) {}

// Formatted logging methods.

// Debugf logs a formatted message at the Debug level.
func (*NoopLogger) Debugf(_ string, _ ...any) {}

// Infof logs a formatted message at the Info level.
func (*NoopLogger) Infof(_ string, _ ...any) {}

// Warnf logs a formatted message at the Warn level.
func (*NoopLogger) Warnf(_ string, _ ...any) {}

// Errorf logs a formatted message at the Error level.
func (*NoopLogger) Errorf(_ string, _ ...any) {}

// Fatalf logs a formatted message at the Fatal level.
func (*NoopLogger) Fatalf(_ string, _ ...any) {}

// Log records a message at an arbitrary level.
func (*NoopLogger) Log(_ Level, _ string) {}

// WithData returns the logger unchanged.
func (l *NoopLogger) WithData(_ map[string]Value) Logger { return l }

// WithField returns the logger unchanged.
func (l *NoopLogger) WithField(_ string, _ Value) Logger { return l }

// WithError returns the logger unchanged.
func (l *NoopLogger) WithError(_ error) Logger { return l }

// SetContext discards the context map.
func (*NoopLogger) SetContext(_ map[string]Value) {}

// Flush returns immediately; there is never anything pending.
func (*NoopLogger) Flush(_ context.Context) error { return nil }

// Name returns the empty string.
func (*NoopLogger) Name() string { return "" }

// Metrics returns zeroed counters.
func (*NoopLogger) Metrics() DeliveryMetrics { return DeliveryMetrics{} }

// Package neurallog defines the client SDK for shipping structured log
// records to a NeuralLog collector.
//
// This package provides the public surface of the SDK:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured attributes with a typed value model
// - Per-logger and global context maps merged into every record
// - Asynchronous batching with size and time based flush triggers
// - Retry with exponential backoff and an explicit drop policy
// - Graceful draining on flush and shutdown
//
// The core Logger interface defined in this package serves as the foundation
// for all logging operations. Concrete implementations are provided by the
// client package, which owns the batching and delivery engine.
//
// This separation of interface from implementation keeps application code
// decoupled from delivery concerns: a log call never blocks on network I/O
// and never observes a delivery failure.
//
// Basic usage:
//
//	sdk, err := client.New(neurallog.NewConfigBuilder().
//		WithServerURL("https://logs.example.com").
//		WithAPIKey(key).
//		Build())
//	if err != nil {
//		panic(err)
//	}
//	defer sdk.Shutdown(ctx)
//
//	log, err := sdk.GetLogger("orders")
//	if err != nil {
//		panic(err)
//	}
//
//	log.Info("order placed")
//	log.WithData(map[string]neurallog.Value{
//		"order_id": neurallog.String("ord-123"),
//	}).Debug("payment authorized")
//
// Always call Shutdown before process exit to drain in-flight batches.
package neurallog

import (
	"context"
)

// Logger is a named handle that applications log through. Log calls never
// block on delivery and never return delivery errors.
type Logger interface {
	// Log methods for different levels
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)

	// Formatted log methods
	FormattedLogger

	Methods
}

// Methods defines the auxiliary operations of a logger.
type Methods interface {
	// Log records a message at an arbitrary level.
	Log(level Level, msg string)
	// WithData returns a logger that attaches the given call-site data to
	// every record it produces.
	WithData(data map[string]Value) Logger
	// WithField returns a logger that attaches a single call-site attribute.
	WithField(key string, value Value) Logger
	// WithError returns a logger that attaches an error to every record it
	// produces.
	WithError(err error) Logger
	// SetContext replaces the per-logger context map.
	SetContext(ctx map[string]Value)
	// Flush synchronously captures the pending records and waits for their
	// delivery to reach a terminal state.
	Flush(ctx context.Context) error
	// Name returns the logger name.
	Name() string
	// Metrics returns a snapshot of the logger's delivery counters.
	Metrics() DeliveryMetrics
}

// FormattedLogger defines the interface for logging formatted messages.
type FormattedLogger interface {
	// Debugf logs a message at the Debug level
	Debugf(format string, args ...any)
	// Infof logs a message at the Info level
	Infof(format string, args ...any)
	// Warnf logs a message at the Warn level
	Warnf(format string, args ...any)
	// Errorf logs a message at the Error level
	Errorf(format string, args ...any)
	// Fatalf logs a message at the Fatal level
	Fatalf(format string, args ...any)
}

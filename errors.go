package neurallog

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the neurallog package.
var (
	// ErrEmptyLoggerName is returned when a logger is requested with an
	// empty name.
	ErrEmptyLoggerName = ewrap.New("logger name cannot be empty")

	// ErrEmptyMessage is returned when a log call carries no message.
	ErrEmptyMessage = ewrap.New("log message cannot be empty")

	// ErrNilConfig is returned when a nil configuration is supplied.
	ErrNilConfig = ewrap.New("config cannot be nil")

	// ErrClientClosed is returned when an operation is attempted on a client
	// that has been shut down.
	ErrClientClosed = ewrap.New("client is closed")

	// ErrShutdownTimeout is returned when shutdown abandons in-flight
	// deliveries after its deadline expires.
	ErrShutdownTimeout = ewrap.New("shutdown timed out waiting for in-flight batches")

	// ErrFlushTimeout is returned when a synchronous flush times out.
	ErrFlushTimeout = ewrap.New("flush timed out")
)

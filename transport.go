package neurallog

import (
	"context"
	"errors"
)

// Batch is an ordered group of records delivered together in one request.
// Record order within a batch is preserved end to end.
type Batch struct {
	// LoggerName is the logger the batch belongs to.
	LoggerName string
	// Records are the batched records in insertion order.
	Records []Record
}

// Transport performs the actual delivery of records to the collector.
// Implementations classify failures through TransportError so the dispatcher
// can decide between retrying and dropping.
type Transport interface {
	// Send delivers a non-empty ordered batch in a single request.
	Send(ctx context.Context, batch *Batch) error
	// SendRecord delivers a single record outside the batching engine. It is
	// used when asynchronous delivery is disabled.
	SendRecord(ctx context.Context, loggerName string, record Record) error
}

// FailureKind classifies a transport failure.
type FailureKind uint8

const (
	// FailureTransient marks a retriable failure (network blip, 5xx, timeout).
	FailureTransient FailureKind = iota
	// FailurePermanent marks a non-retriable failure (malformed request,
	// auth rejection).
	FailurePermanent
)

// String returns the string representation of the failure kind.
func (k FailureKind) String() string {
	if k == FailurePermanent {
		return "permanent"
	}

	return "transient"
}

// TransportError is a classified delivery failure returned by Transport
// implementations.
type TransportError struct {
	// Kind determines whether the failure is retriable.
	Kind FailureKind
	// Status is the HTTP status code, when the failure maps to one.
	Status int
	// Reason describes the failure.
	Reason string

	cause error
}

// NewTransientError creates a retriable transport error wrapping the cause.
func NewTransientError(reason string, cause error) *TransportError {
	return &TransportError{Kind: FailureTransient, Reason: reason, cause: cause}
}

// NewPermanentError creates a non-retriable transport error wrapping the cause.
func NewPermanentError(reason string, cause error) *TransportError {
	return &TransportError{Kind: FailurePermanent, Reason: reason, cause: cause}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := e.Kind.String() + " transport failure: " + e.Reason
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}

	return msg
}

// Unwrap returns the wrapped cause.
func (e *TransportError) Unwrap() error {
	return e.cause
}

// IsTransient reports whether a delivery error should be retried. Errors that
// carry no classification are treated as transient, matching the behavior for
// plain network failures.
func IsTransient(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Kind == FailureTransient
	}

	return true
}

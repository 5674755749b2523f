// Package constants provides fixed values shared across the SDK: header
// names, endpoint fragments, and internal timeouts. Keeping them in one
// place ensures the transport and the delivery engine stay consistent.
package constants

import "time"

const (
	// APIKeyHeader carries the collector API key.
	APIKeyHeader = "X-API-Key"
	// ContentTypeHeader is the standard content type header name.
	ContentTypeHeader = "Content-Type"
	// AcceptHeader is the standard accept header name.
	AcceptHeader = "Accept"
	// ContentTypeJSON is the media type of every request and response body.
	ContentTypeJSON = "application/json"

	// LogsPathSegment is the path segment that prefixes a log stream name.
	LogsPathSegment = "logs"
	// BatchPathSegment is the path suffix of the batch ingestion endpoint.
	BatchPathSegment = "batch"

	// TraceHeader carries a distributed trace identifier on inbound requests.
	TraceHeader = "X-Trace-Id"
	// RequestHeader carries a request identifier on inbound requests.
	RequestHeader = "X-Request-Id"

	// DefaultDrainTimeout bounds shutdown waits when the caller's context
	// carries no deadline.
	DefaultDrainTimeout = 30 * time.Second

	// DiagPrefix prefixes every self-diagnostic line on stderr.
	DiagPrefix = "neurallog: "

	// NonProductionEnvironment is the environment name for non-production environments.
	NonProductionEnvironment = "development"
)

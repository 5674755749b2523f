// Package grpcmw provides gRPC server interceptors that record one entry
// per RPC through an SDK logger. The real interceptors require the "grpc"
// build tag; without it a stub keeps the package compiling for consumers
// that do not ship gRPC support.
package grpcmw

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	traceKey   string
	requestKey string
}

// WithTraceKey customizes the metadata key used to populate the trace identifier.
func WithTraceKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.traceKey = name
	}
}

// WithRequestKey customizes the metadata key used to populate the request identifier.
func WithRequestKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.requestKey = name
	}
}

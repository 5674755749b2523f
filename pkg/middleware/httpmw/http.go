// Package httpmw provides net/http middleware that records one structured
// entry per request through an SDK logger. Trace and request identifiers are
// read from headers or generated when absent, so entries correlate across
// services without any tracing dependency.
package httpmw

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/constants"
)

const randomIDLength = 16

// Option configures the behaviour of the Logging middleware.
type Option func(*options)

type options struct {
	traceHeader    string
	requestHeader  string
	idGenerator    func() string
	generateIfMiss bool
	errorStatus    int
}

// WithTraceHeader configures the header used to populate the trace id.
func WithTraceHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.traceHeader = name
		}
	}
}

// WithRequestHeader configures the header used to populate the request id.
func WithRequestHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.requestHeader = name
		}
	}
}

// WithIDGenerator provides a custom generator used when headers are missing.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.idGenerator = fn
		}
	}
}

// WithGenerateMissingIDs instructs the middleware to create ids when headers
// are absent.
func WithGenerateMissingIDs(enable bool) Option {
	return func(o *options) {
		o.generateIfMiss = enable
	}
}

// WithErrorStatus sets the response status at and above which entries are
// recorded at error level instead of info.
func WithErrorStatus(status int) Option {
	return func(o *options) {
		if status > 0 {
			o.errorStatus = status
		}
	}
}

// Logging records one entry per completed request: method, path, status,
// duration, and correlation ids. Entries follow the logger's own delivery
// mode, so request handling never waits on the collector.
func Logging(logger neurallog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := options{
		traceHeader:    constants.TraceHeader,
		requestHeader:  constants.RequestHeader,
		idGenerator:    randomID,
		generateIfMiss: true,
		errorStatus:    http.StatusInternalServerError,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			data := map[string]neurallog.Value{
				"method":      neurallog.String(r.Method),
				"path":        neurallog.String(r.URL.Path),
				"status":      neurallog.Int(int64(recorder.status)),
				"duration_ms": neurallog.Float(float64(time.Since(start)) / float64(time.Millisecond)),
				"bytes":       neurallog.Int(recorder.written),
			}

			if traceID := requestIdentifier(r, cfg.traceHeader, &cfg); traceID != "" {
				data["trace_id"] = neurallog.String(traceID)
			}

			if requestID := requestIdentifier(r, cfg.requestHeader, &cfg); requestID != "" {
				data["request_id"] = neurallog.String(requestID)
			}

			scoped := logger.WithData(data)
			if recorder.status >= cfg.errorStatus {
				scoped.Error("request completed")

				return
			}

			scoped.Info("request completed")
		})
	}
}

func requestIdentifier(r *http.Request, header string, cfg *options) string {
	if value := r.Header.Get(header); value != "" {
		return value
	}

	if cfg.generateIfMiss {
		return cfg.idGenerator()
	}

	return ""
}

// statusRecorder captures the response status and body size. A handler that
// never calls WriteHeader is reported as 200.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.written += int64(n)

	return n, err
}

func randomID() string {
	bytes := make([]byte, randomIDLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)
}

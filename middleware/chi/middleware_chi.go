//go:build chi_integration

package chi

import (
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/neurallog/neurallog-go"
)

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}

// Middleware returns a chi middleware that ships one record per request.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &responseWriter{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			latency := time.Since(start)
			status := recorder.Status()

			data := map[string]neurallog.Value{
				"method":             neurallog.String(r.Method),
				"path":               neurallog.String(r.URL.Path),
				"host":               neurallog.String(r.Host),
				"remote_addr":        neurallog.String(remoteAddr(r)),
				cfg.StatusFieldName:  neurallog.Int(int64(status)),
				cfg.LatencyFieldName: neurallog.Float(float64(latency) / float64(time.Millisecond)),
			}

			if cfg.CaptureRequestID {
				if id := r.Header.Get("X-Request-Id"); id != "" {
					data["request_id"] = neurallog.String(id)
				}
			}

			for _, header := range cfg.IncludeHeaders {
				if value := r.Header.Get(header); value != "" {
					data["header_"+strings.ToLower(header)] = neurallog.String(value)
				}
			}

			if extractor := cfg.ContextExtractor; extractor != nil {
				for key, value := range extractor(r) {
					data[key] = value
				}
			}

			logger := cfg.Logger.WithData(data)

			if status >= http.StatusInternalServerError {
				logger.Error("chi request returned server error")

				return
			}

			logger.Info("chi request completed")
		})
	}
}

// DefaultContextExtractor extracts common attributes from a chi *http.Request.
func DefaultContextExtractor(ctx any) map[string]neurallog.Value {
	r, ok := ctx.(*http.Request)
	if !ok || r == nil {
		return nil
	}

	data := make(map[string]neurallog.Value, 3)

	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			data["route"] = neurallog.String(pattern)
		}

		for i, key := range routeCtx.URLParams.Keys {
			data["param_"+key] = neurallog.String(routeCtx.URLParams.Values[i])
		}
	}

	if query := r.URL.RawQuery; query != "" {
		data["query"] = neurallog.String(query)
	}

	return data
}

func remoteAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")

		return strings.TrimSpace(parts[0])
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	return r.RemoteAddr
}

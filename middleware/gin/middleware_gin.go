//go:build gin_integration

package gin

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neurallog/neurallog-go"
)

// Middleware returns a gin middleware that ships one record per request.
func Middleware(cfg Config) gin.HandlerFunc {
	cfg = cfg.withDefaults()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		data := map[string]neurallog.Value{
			"method":             neurallog.String(c.Request.Method),
			"path":               neurallog.String(c.FullPath()),
			"host":               neurallog.String(c.Request.Host),
			"client_ip":          neurallog.String(clientIP(c)),
			cfg.StatusFieldName:  neurallog.Int(int64(status)),
			cfg.LatencyFieldName: neurallog.Float(float64(latency) / float64(time.Millisecond)),
		}

		if cfg.CaptureRequestID {
			if id := c.Request.Header.Get("X-Request-Id"); id != "" {
				data["request_id"] = neurallog.String(id)
			}
		}

		for _, header := range cfg.IncludeHeaders {
			if value := c.Request.Header.Get(header); value != "" {
				data["header_"+strings.ToLower(header)] = neurallog.String(value)
			}
		}

		if extractor := cfg.ContextExtractor; extractor != nil {
			for key, value := range extractor(c) {
				data[key] = value
			}
		}

		logger := cfg.Logger.WithData(data)

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.WithError(err).Error("gin request completed with error")
			}

			return
		}

		if status >= http.StatusInternalServerError {
			logger.Error("gin request returned server error")

			return
		}

		logger.Info("gin request completed")
	}
}

// Recovery returns a gin middleware that recovers panics and records them.
func Recovery(cfg Config) gin.HandlerFunc {
	cfg = cfg.withDefaults()

	return func(c *gin.Context) {
		if cfg.EnableRecovery {
			defer func() {
				if rec := recover(); rec != nil {
					data := map[string]neurallog.Value{
						"panic":  neurallog.AnyValue(rec),
						"path":   neurallog.String(c.FullPath()),
						"method": neurallog.String(c.Request.Method),
						"stack":  neurallog.String(string(debug.Stack())),
					}

					cfg.Logger.WithData(data).Error("gin panic recovered")
					c.AbortWithStatus(http.StatusInternalServerError)
				}
			}()
		}

		c.Next()
	}
}

// DefaultContextExtractor extracts common attributes from a *gin.Context.
func DefaultContextExtractor(ctx any) map[string]neurallog.Value {
	c, ok := ctx.(*gin.Context)
	if !ok || c == nil {
		return nil
	}

	data := make(map[string]neurallog.Value, 3)

	if route := c.FullPath(); route != "" {
		data["route"] = neurallog.String(route)
	}

	if query := c.Request.URL.RawQuery; query != "" {
		data["query"] = neurallog.String(query)
	}

	for _, param := range c.Params {
		data["param_"+param.Key] = neurallog.String(param.Value)
	}

	return data
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return c.Request.RemoteAddr
}

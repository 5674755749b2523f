//go:build fiber_integration

package fiber

import (
	"time"

	fiber "github.com/gofiber/fiber/v3"

	"github.com/neurallog/neurallog-go"
)

// Handler is an alias for the Fiber middleware handler function type.
type Handler = fiber.Handler

// Middleware returns a fiber middleware that ships one record per request.
func Middleware(cfg Config) fiber.Handler {
	cfg = cfg.withDefaults()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()

		data := map[string]neurallog.Value{
			"method":             neurallog.String(c.Method()),
			"path":               neurallog.String(string(c.Request().URI().Path())),
			"ip":                 neurallog.String(c.IP()),
			cfg.StatusFieldName:  neurallog.Int(int64(status)),
			cfg.LatencyFieldName: neurallog.Float(float64(latency) / float64(time.Millisecond)),
		}

		if cfg.CaptureRequestID {
			if id := c.Get("X-Request-Id"); id != "" {
				data["request_id"] = neurallog.String(id)
			}
		}

		for _, header := range cfg.IncludeHeaders {
			if value := c.Get(header); value != "" {
				data["header_"+header] = neurallog.String(value)
			}
		}

		if extractor := cfg.ContextExtractor; extractor != nil {
			for key, value := range extractor(c) {
				data[key] = value
			}
		}

		logger := cfg.Logger.WithData(data)

		if err != nil {
			logger.WithError(err).Error("fiber request completed with error")

			return err
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("fiber request returned server error")

			return nil
		}

		logger.Info("fiber request completed")

		return nil
	}
}

// DefaultContextExtractor extracts common attributes from a *fiber.Ctx.
func DefaultContextExtractor(ctx any) map[string]neurallog.Value {
	c, ok := ctx.(*fiber.Ctx)
	if !ok || c == nil {
		return nil
	}

	data := make(map[string]neurallog.Value, 2)

	if route := c.Route(); route != nil {
		data["route"] = neurallog.String(route.Path)
	}

	if query := string(c.Request().URI().QueryString()); query != "" {
		data["query"] = neurallog.String(query)
	}

	return data
}

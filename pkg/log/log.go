// Package log provides application-level convenience constructors for
// services that want a ready-to-use client without assembling configuration
// by hand.
//
// It layers environment-based settings on top of the SDK defaults:
//
// - In non-production environments: debug diagnostics and synchronous
// delivery, so every record is visible immediately during development
// - In production environments: asynchronous batching with the standard
// flush and retry policy
// - Service name and environment stamped on every record through the
// global context
//
// Configuration is read from NEURALLOG_* environment variables, so
// deployments can override the collector URL, API key, and batching knobs
// without code changes.
//
// Usage:
//
//	sdk, logger, err := log.NewWithDefaults("production", "user-service")
//	if err != nil {
//		panic(err)
//	}
//	defer sdk.Shutdown(context.Background())
//
//	logger.Info("service started")
package log

import (
	"github.com/hyp3rd/ewrap"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/constants"
	"github.com/neurallog/neurallog-go/pkg/client"
	"github.com/neurallog/neurallog-go/pkg/configloader"
)

// NewWithDefaults creates a client and a logger named after the service,
// configured for the given environment. Environment variables with the
// default prefix override the collector settings.
func NewWithDefaults(environment, service string) (*client.Client, neurallog.Logger, error) {
	if service == "" {
		return nil, nil, neurallog.ErrEmptyLoggerName
	}

	cfg, err := configloader.FromEnv("")
	if err != nil {
		return nil, nil, ewrap.Wrap(err, "failed to load configuration")
	}

	if environment == constants.NonProductionEnvironment {
		cfg.DebugEnabled = true
		cfg.AsyncEnabled = false
	}

	sdk, err := client.New(cfg)
	if err != nil {
		return nil, nil, ewrap.Wrap(err, "failed to create client")
	}

	sdk.SetGlobalContext(map[string]neurallog.Value{
		"service":     neurallog.String(service),
		"environment": neurallog.String(environment),
	})

	logger, err := sdk.GetLogger(service)
	if err != nil {
		return nil, nil, ewrap.Wrap(err, "failed to create logger")
	}

	return sdk, logger, nil
}

// Package client provides the concrete SDK entry point: an explicit handle
// owning the logger registry, the shared transport, and the coordinated
// flush and shutdown of every logger's delivery engine.
//
// A Client replaces the process-wide singleton registry found in other
// NeuralLog SDKs: applications create one in their composition root and pass
// it (or the loggers obtained from it) to the code that needs logging.
package client

import (
	"context"
	"sync"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sync/errgroup"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/constants"
	"github.com/neurallog/neurallog-go/internal/diag"
	"github.com/neurallog/neurallog-go/internal/httpapi"
)

// Option configures optional client behavior.
type Option func(*options)

type options struct {
	transport neurallog.Transport
	diagLog   *diag.Logger
}

// WithTransport replaces the HTTP transport, typically with a test double or
// an alternative delivery mechanism.
func WithTransport(transport neurallog.Transport) Option {
	return func(o *options) {
		if transport != nil {
			o.transport = transport
		}
	}
}

// Client owns the logger registry and the shared delivery infrastructure.
type Client struct {
	mu      sync.Mutex
	config  *neurallog.Config
	loggers map[string]*logger
	closed  bool

	ctxMu     sync.RWMutex
	globalCtx map[string]neurallog.Value

	transport neurallog.Transport
	diag      *diag.Logger
	hooks     *neurallog.HookRegistry
}

// New validates the configuration and creates a client. Configuration errors
// are returned synchronously; nothing else in the SDK returns errors to log
// call sites.
func New(config *neurallog.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, neurallog.ErrNilConfig
	}

	cfg := *config

	err := cfg.Validate()
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid configuration")
	}

	settings := options{}
	for _, opt := range opts {
		opt(&settings)
	}

	diagLog := settings.diagLog
	if diagLog == nil {
		diagLog = diag.New(constants.DiagPrefix, cfg.DebugEnabled)
	}

	transport := settings.transport
	if transport == nil {
		transport, err = httpapi.NewClient(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		config:    &cfg,
		loggers:   make(map[string]*logger),
		transport: transport,
		diag:      diagLog,
		hooks:     neurallog.NewHookRegistry(),
	}, nil
}

// Hooks returns the client's hook registry. Hooks run after a record is
// built and before it enters the delivery engine, and may mutate the record.
func (c *Client) Hooks() *neurallog.HookRegistry {
	return c.hooks
}

// Reconfigure validates and swaps the active configuration. Loggers created
// afterwards use the new settings; existing loggers and in-flight batches
// complete under the parameters they were created with.
func (c *Client) Reconfigure(config *neurallog.Config) error {
	if config == nil {
		return neurallog.ErrNilConfig
	}

	cfg := *config

	err := cfg.Validate()
	if err != nil {
		return ewrap.Wrap(err, "invalid configuration")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return neurallog.ErrClientClosed
	}

	c.config = &cfg

	return nil
}

// GetLogger returns the logger registered under name, creating it on first
// use. At most one buffer/scheduler/dispatcher trio exists per name.
func (c *Client) GetLogger(name string) (neurallog.Logger, error) {
	if name == "" {
		return nil, neurallog.ErrEmptyLoggerName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, neurallog.ErrClientClosed
	}

	if existing, ok := c.loggers[name]; ok {
		return existing, nil
	}

	created := newLogger(c, name, c.config)
	c.loggers[name] = created

	return created, nil
}

// SetGlobalContext replaces the context attached to records from every
// logger. The map is copied; per-logger context and call-site data override
// it on key collision.
func (c *Client) SetGlobalContext(ctx map[string]neurallog.Value) {
	c.ctxMu.Lock()
	defer c.ctxMu.Unlock()

	c.globalCtx = neurallog.CloneContext(ctx)
}

// globalContext returns the current global context map. Callers must not
// mutate the result.
func (c *Client) globalContext() map[string]neurallog.Value {
	c.ctxMu.RLock()
	defer c.ctxMu.RUnlock()

	return c.globalCtx
}

// FlushAll captures and hands off the pending records of every registered
// logger. It returns once every hand-off has been issued; deliveries remain
// in flight.
func (c *Client) FlushAll(_ context.Context) error {
	var group errgroup.Group

	for _, registered := range c.snapshotLoggers() {
		group.Go(func() error {
			registered.flushAsync()

			return nil
		})
	}

	return group.Wait()
}

// FlushAllSync flushes every registered logger and waits until each captured
// batch reaches a terminal delivery state or the context expires.
func (c *Client) FlushAllSync(ctx context.Context) error {
	var group errgroup.Group

	for _, registered := range c.snapshotLoggers() {
		group.Go(func() error {
			return registered.Flush(ctx)
		})
	}

	return group.Wait()
}

// Shutdown stops all schedulers, flushes all buffers, and waits for every
// in-flight dispatch attempt (including pending retries) to reach a terminal
// state. When the context carries no deadline a default drain timeout is
// applied so process exit stays bounded; attempts still pending after the
// deadline are abandoned and reported as dropped.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return neurallog.ErrClientClosed
	}

	c.closed = true
	loggers := make([]*logger, 0, len(c.loggers))

	for _, registered := range c.loggers {
		loggers = append(loggers, registered)
	}

	c.mu.Unlock()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, constants.DefaultDrainTimeout)

		defer cancel()
	}

	// No new timer ticks may fire once shutdown begins.
	for _, registered := range loggers {
		registered.stopScheduler()
	}

	for _, registered := range loggers {
		registered.flushAsync()
	}

	var group errgroup.Group

	for _, registered := range loggers {
		group.Go(func() error {
			return registered.drain(ctx)
		})
	}

	err := group.Wait()
	if err != nil {
		return ewrap.Wrap(neurallog.ErrShutdownTimeout, err.Error())
	}

	return nil
}

// Metrics returns the delivery counters summed over every registered logger.
// Feed the result to a neurallog.MetricsExporter to expose it over HTTP.
func (c *Client) Metrics() neurallog.DeliveryMetrics {
	var total neurallog.DeliveryMetrics

	for _, registered := range c.snapshotLoggers() {
		metrics := registered.Metrics()

		total.Enqueued += metrics.Enqueued
		total.Batches += metrics.Batches
		total.Delivered += metrics.Delivered
		total.Retried += metrics.Retried
		total.Failed += metrics.Failed
		total.DroppedRecords += metrics.DroppedRecords
	}

	return total
}

func (c *Client) snapshotLoggers() []*logger {
	c.mu.Lock()
	defer c.mu.Unlock()

	loggers := make([]*logger, 0, len(c.loggers))
	for _, registered := range c.loggers {
		loggers = append(loggers, registered)
	}

	return loggers
}

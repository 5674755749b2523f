package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/batch"
)

// loggerCore holds the state shared between a logger and the derived
// handles returned by WithData/WithField/WithError: the delivery engine and
// the mutable per-logger context map.
type loggerCore struct {
	name   string
	client *Client
	config *neurallog.Config

	ctxMu     sync.RWMutex
	loggerCtx map[string]neurallog.Value

	buffer     *batch.Buffer
	scheduler  *batch.Scheduler
	dispatcher *batch.Dispatcher
	batching   bool
}

// logger implements neurallog.Logger. Derived handles share the core and
// carry their own call-site data and error.
type logger struct {
	core     *loggerCore
	callData map[string]neurallog.Value
	callErr  error
}

// newLogger wires a logger's delivery engine from a configuration snapshot.
// Batching requires async delivery and a batch size above one; otherwise
// records are sent synchronously and individually.
func newLogger(c *Client, name string, config *neurallog.Config) *logger {
	core := &loggerCore{
		name:     name,
		client:   c,
		config:   config,
		batching: config.AsyncEnabled && config.BatchSize > 1,
	}

	if core.batching {
		core.dispatcher = batch.NewDispatcher(batch.DispatcherConfig{
			LoggerName:     name,
			Transport:      c.transport,
			MaxRetries:     config.MaxRetries,
			RetryBackoff:   config.RetryBackoff,
			FailureHandler: config.FailureHandler,
			Diag:           c.diag,
		})
		core.buffer = batch.NewBuffer(config.BatchSize, core.dispatcher.Dispatch)

		if config.BatchInterval > 0 {
			core.scheduler = batch.NewScheduler(config.BatchInterval, core.buffer.Flush)
			core.scheduler.Start()
		}
	}

	return &logger{core: core}
}

// Debug logs a message at debug level.
func (l *logger) Debug(msg string) {
	l.Log(neurallog.DebugLevel, msg)
}

// Info logs a message at info level.
func (l *logger) Info(msg string) {
	l.Log(neurallog.InfoLevel, msg)
}

// Warn logs a message at warn level.
func (l *logger) Warn(msg string) {
	l.Log(neurallog.WarnLevel, msg)
}

// Error logs a message at error level.
func (l *logger) Error(msg string) {
	l.Log(neurallog.ErrorLevel, msg)
}

// Fatal logs a message at fatal level. The SDK never terminates the host
// process; fatal is a severity, not an action.
func (l *logger) Fatal(msg string) {
	l.Log(neurallog.FatalLevel, msg)
}

// Debugf logs a formatted message at debug level.
func (l *logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at info level.
func (l *logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func (l *logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func (l *logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs a formatted message at fatal level.
func (l *logger) Fatalf(format string, args ...any) {
	l.Fatal(fmt.Sprintf(format, args...))
}

// Log builds a record from the merged context and enqueues or sends it.
// Nothing on this path blocks on network I/O or returns delivery errors.
func (l *logger) Log(level neurallog.Level, msg string) {
	if msg == "" {
		l.core.client.diag.Warnf("discarding record with empty message for %s", l.core.name)

		return
	}

	if !level.IsValid() {
		level = neurallog.InfoLevel
	}

	merged := neurallog.MergeContext(l.core.client.globalContext(), l.core.contextSnapshot(), l.callData)
	record := neurallog.NewRecord(l.core.name, level, msg, merged, l.callErr)

	for _, err := range l.core.client.hooks.FireHooks(&record) {
		l.core.client.diag.Warnf("hook failed for %s: %v", l.core.name, err)
	}

	if l.core.batching {
		l.core.buffer.Append(record)

		return
	}

	l.sendSync(record)
}

// WithData returns a logger that attaches the given call-site data to every
// record it produces. The derived logger shares the delivery engine.
func (l *logger) WithData(data map[string]neurallog.Value) neurallog.Logger {
	if len(data) == 0 {
		return l
	}

	return &logger{
		core:     l.core,
		callData: neurallog.MergeContext(l.callData, data, nil),
		callErr:  l.callErr,
	}
}

// WithField returns a logger that attaches a single call-site attribute.
func (l *logger) WithField(key string, value neurallog.Value) neurallog.Logger {
	return l.WithData(map[string]neurallog.Value{key: value})
}

// WithError returns a logger that attaches an error to every record it
// produces.
func (l *logger) WithError(err error) neurallog.Logger {
	if err == nil {
		return l
	}

	return &logger{
		core:     l.core,
		callData: l.callData,
		callErr:  err,
	}
}

// SetContext replaces the per-logger context map. The map is copied.
func (l *logger) SetContext(ctx map[string]neurallog.Value) {
	l.core.ctxMu.Lock()
	defer l.core.ctxMu.Unlock()

	l.core.loggerCtx = neurallog.CloneContext(ctx)
}

// Flush synchronously captures the pending records and waits until their
// delivery reaches a terminal state or the context expires. Flushing an
// empty buffer performs no transport invocation.
func (l *logger) Flush(ctx context.Context) error {
	if !l.core.batching {
		return nil
	}

	return l.core.dispatcher.DispatchSync(ctx, l.core.buffer.TakeAll())
}

// Name returns the logger name.
func (l *logger) Name() string {
	return l.core.name
}

// Metrics returns a snapshot of the logger's delivery counters.
func (l *logger) Metrics() neurallog.DeliveryMetrics {
	if l.core.dispatcher == nil {
		return neurallog.DeliveryMetrics{}
	}

	return l.core.dispatcher.Metrics()
}

func (l *loggerCore) contextSnapshot() map[string]neurallog.Value {
	l.ctxMu.RLock()
	defer l.ctxMu.RUnlock()

	return l.loggerCtx
}

// sendSync delivers one record synchronously with the same retry policy the
// dispatcher applies to batches. Synchronous mode trades caller latency for
// immediate delivery; failures still go to the observability path only.
func (l *logger) sendSync(record neurallog.Record) {
	core := l.core
	attempt := 0

	for {
		err := core.client.transport.SendRecord(context.Background(), core.name, record)
		if err == nil {
			return
		}

		if !neurallog.IsTransient(err) || attempt >= core.config.MaxRetries {
			l.reportSyncFailure(attempt+1, err)

			return
		}

		time.Sleep(core.config.RetryBackoff * time.Duration(1<<attempt))

		attempt++
	}
}

func (l *logger) reportSyncFailure(attempts int, reason error) {
	core := l.core

	if handler := core.config.FailureHandler; handler != nil {
		handler(neurallog.BatchFailure{
			LoggerName: core.name,
			BatchSize:  1,
			Attempts:   attempts,
			Reason:     reason,
		})

		return
	}

	core.client.diag.Errorf(
		"dropping record for %s after %d attempts: %v",
		core.name, attempts, reason,
	)
}

// flushAsync captures pending records and hands them to the dispatcher
// without waiting for delivery.
func (l *logger) flushAsync() {
	if !l.core.batching {
		return
	}

	l.core.buffer.Flush()
}

// stopScheduler cancels the periodic flush timer deterministically.
func (l *logger) stopScheduler() {
	if l.core.scheduler != nil {
		l.core.scheduler.Stop()
	}
}

// drain waits for every in-flight dispatch attempt to reach a terminal
// state, abandoning the remainder when the context expires.
func (l *logger) drain(ctx context.Context) error {
	if l.core.dispatcher == nil {
		return nil
	}

	return l.core.dispatcher.Wait(ctx)
}

package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/diag"
)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// LoggerName is stamped on every batch the dispatcher delivers.
	LoggerName string
	// Transport performs the actual delivery.
	Transport neurallog.Transport
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// RetryBackoff is the base backoff; the delay doubles per attempt.
	RetryBackoff time.Duration
	// FailureHandler receives terminal batch failures. When nil, failures
	// go to the diagnostic logger only.
	FailureHandler neurallog.FailureHandler
	// Diag receives retry traces and default failure reports.
	Diag *diag.Logger
}

// Dispatcher drives delivery attempts for one logger's batches. Each batch
// runs on its own goroutine: backoff waits suspend only that batch, never
// other buffers or batches. Within a batch record order is exact; across
// batches completion order is not guaranteed.
type Dispatcher struct {
	config DispatcherConfig

	baseCtx     context.Context
	abandon     context.CancelFunc
	abandonOnce sync.Once
	wg          sync.WaitGroup

	enqueued       atomic.Uint64
	batches        atomic.Uint64
	delivered      atomic.Uint64
	retried        atomic.Uint64
	failed         atomic.Uint64
	droppedRecords atomic.Uint64
}

// NewDispatcher creates a dispatcher for one logger.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	baseCtx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		config:  config,
		baseCtx: baseCtx,
		abandon: cancel,
	}
}

// Dispatch takes ownership of a captured batch and delivers it in the
// background. It never blocks the caller and ignores empty batches.
func (d *Dispatcher) Dispatch(records []neurallog.Record) {
	if len(records) == 0 {
		return
	}

	d.enqueued.Add(uint64(len(records)))
	d.batches.Add(1)
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		d.deliver(records)
	}()
}

// DispatchSync delivers a captured batch and blocks until it reaches a
// terminal state or the context expires. The delivery itself keeps running
// to its natural terminal state even when the caller gives up waiting.
func (d *Dispatcher) DispatchSync(ctx context.Context, records []neurallog.Record) error {
	if len(records) == 0 {
		return nil
	}

	d.enqueued.Add(uint64(len(records)))
	d.batches.Add(1)
	d.wg.Add(1)

	done := make(chan error, 1)

	go func() {
		defer d.wg.Done()

		done <- d.deliver(records)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ewrap.Wrap(ctx.Err(), ErrFlushTimeout.Error())
	}
}

// Wait blocks until every in-flight delivery attempt reaches a terminal
// state. When the context expires first, remaining attempts are abandoned:
// their backoff waits and requests are cancelled and the batches are
// reported as dropped.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.Abandon()
		// Abandoned attempts unblock promptly; wait for their drop reports.
		<-done

		return ErrDrainTimeout
	}
}

// Abandon cancels backoff waits and in-flight requests. Affected batches are
// reported as dropped. Abandon is idempotent.
func (d *Dispatcher) Abandon() {
	d.abandonOnce.Do(d.abandon)
}

// Metrics returns a snapshot of the dispatcher's counters.
func (d *Dispatcher) Metrics() neurallog.DeliveryMetrics {
	return neurallog.DeliveryMetrics{
		Enqueued:       d.enqueued.Load(),
		Batches:        d.batches.Load(),
		Delivered:      d.delivered.Load(),
		Retried:        d.retried.Load(),
		Failed:         d.failed.Load(),
		DroppedRecords: d.droppedRecords.Load(),
	}
}

// deliver runs the attempt sequence for one batch: initial try plus up to
// MaxRetries retries with exponential backoff, always with the same
// unmodified batch.
func (d *Dispatcher) deliver(records []neurallog.Record) error {
	batch := &neurallog.Batch{
		LoggerName: d.config.LoggerName,
		Records:    records,
	}

	attempt := 0

	for {
		err := d.config.Transport.Send(d.baseCtx, batch)
		if err == nil {
			d.delivered.Add(1)

			return nil
		}

		if d.baseCtx.Err() != nil {
			d.reportFailure(records, attempt+1, ewrap.Wrap(err, ErrDispatcherAbandoned.Error()))

			return ErrDispatcherAbandoned
		}

		if !neurallog.IsTransient(err) || attempt >= d.config.MaxRetries {
			d.reportFailure(records, attempt+1, err)

			return err
		}

		delay := d.config.RetryBackoff * time.Duration(1<<attempt)

		d.config.Diag.Debugf(
			"retrying batch for %s in %s (attempt %d/%d): %v",
			d.config.LoggerName, delay, attempt+1, d.config.MaxRetries, err,
		)

		timer := time.NewTimer(delay)

		select {
		case <-timer.C:
		case <-d.baseCtx.Done():
			timer.Stop()
			d.reportFailure(records, attempt+1, ewrap.Wrap(err, ErrDispatcherAbandoned.Error()))

			return ErrDispatcherAbandoned
		}

		attempt++

		d.retried.Add(1)
	}
}

// reportFailure records a terminal failure and surfaces it through the
// observability callback, never back into application call sites.
func (d *Dispatcher) reportFailure(records []neurallog.Record, attempts int, reason error) {
	d.failed.Add(1)
	d.droppedRecords.Add(uint64(len(records)))

	failure := neurallog.BatchFailure{
		LoggerName: d.config.LoggerName,
		BatchSize:  len(records),
		Attempts:   attempts,
		Reason:     reason,
	}

	if handler := d.config.FailureHandler; handler != nil {
		handler(failure)

		return
	}

	d.config.Diag.Errorf(
		"dropping batch of %d records for %s after %d attempts: %v",
		failure.BatchSize, failure.LoggerName, failure.Attempts, reason,
	)
}

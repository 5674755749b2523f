package batch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurallog/neurallog-go"
)

// mockTransport implements neurallog.Transport with controllable behavior.
type mockTransport struct {
	mu                    sync.Mutex
	delivered             []*neurallog.Batch
	attempts              int
	failuresBeforeSuccess int
	permanentError        error
	blockUntilCancel      bool
}

func (m *mockTransport) Send(ctx context.Context, batch *neurallog.Batch) error {
	m.mu.Lock()
	m.attempts++
	block := m.blockUntilCancel
	permanentErr := m.permanentError

	failures := m.failuresBeforeSuccess
	if failures > 0 {
		m.failuresBeforeSuccess--
	}

	m.mu.Unlock()

	if block {
		<-ctx.Done()

		return neurallog.NewTransientError("request cancelled", ctx.Err())
	}

	if failures > 0 {
		return neurallog.NewTransientError("collector unavailable", nil)
	}

	if permanentErr != nil {
		return permanentErr
	}

	m.mu.Lock()
	m.delivered = append(m.delivered, batch)
	m.mu.Unlock()

	return nil
}

func (m *mockTransport) SendRecord(ctx context.Context, loggerName string, record neurallog.Record) error {
	return m.Send(ctx, &neurallog.Batch{LoggerName: loggerName, Records: []neurallog.Record{record}})
}

func (m *mockTransport) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.attempts
}

func (m *mockTransport) deliveredBatches() []*neurallog.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*neurallog.Batch, len(m.delivered))
	copy(out, m.delivered)

	return out
}

// failureCollector records terminal failures delivered to the handler.
type failureCollector struct {
	mu       sync.Mutex
	failures []neurallog.BatchFailure
}

func (c *failureCollector) handle(failure neurallog.BatchFailure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = append(c.failures, failure)
}

func (c *failureCollector) collected() []neurallog.BatchFailure {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]neurallog.BatchFailure, len(c.failures))
	copy(out, c.failures)

	return out
}

func testRecords(messages ...string) []neurallog.Record {
	records := make([]neurallog.Record, 0, len(messages))
	for _, msg := range messages {
		records = append(records, testRecord(msg))
	}

	return records
}

func TestDispatcherTransientFailuresThenSuccess(t *testing.T) {
	transport := &mockTransport{failuresBeforeSuccess: 2}
	collector := &failureCollector{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:     "orders",
		Transport:      transport,
		MaxRetries:     3,
		RetryBackoff:   time.Millisecond,
		FailureHandler: collector.handle,
	})

	err := dispatcher.DispatchSync(context.Background(), testRecords("a", "b", "c"))
	require.NoError(t, err)

	require.Equal(t, 3, transport.attemptCount())
	require.Empty(t, collector.collected())

	batches := transport.deliveredBatches()
	require.Len(t, batches, 1)
	require.Equal(t, "orders", batches[0].LoggerName)
	require.Len(t, batches[0].Records, 3)
	assert.Equal(t, "a", batches[0].Records[0].Message)
	assert.Equal(t, "b", batches[0].Records[1].Message)
	assert.Equal(t, "c", batches[0].Records[2].Message)

	metrics := dispatcher.Metrics()
	assert.Equal(t, uint64(3), metrics.Enqueued)
	assert.Equal(t, uint64(1), metrics.Batches)
	assert.Equal(t, uint64(1), metrics.Delivered)
	assert.Equal(t, uint64(2), metrics.Retried)
	assert.Zero(t, metrics.Failed)
	assert.Zero(t, metrics.DroppedRecords)
}

func TestDispatcherRetriesExhausted(t *testing.T) {
	transport := &mockTransport{failuresBeforeSuccess: 10}
	collector := &failureCollector{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:     "orders",
		Transport:      transport,
		MaxRetries:     2,
		RetryBackoff:   time.Millisecond,
		FailureHandler: collector.handle,
	})

	err := dispatcher.DispatchSync(context.Background(), testRecords("a", "b"))
	require.Error(t, err)

	// Initial attempt plus two retries.
	require.Equal(t, 3, transport.attemptCount())

	failures := collector.collected()
	require.Len(t, failures, 1)
	assert.Equal(t, "orders", failures[0].LoggerName)
	assert.Equal(t, 2, failures[0].BatchSize)
	assert.Equal(t, 3, failures[0].Attempts)
	require.Error(t, failures[0].Reason)

	metrics := dispatcher.Metrics()
	assert.Equal(t, uint64(1), metrics.Failed)
	assert.Equal(t, uint64(2), metrics.DroppedRecords)
}

func TestDispatcherPermanentFailureSkipsRetries(t *testing.T) {
	transport := &mockTransport{
		permanentError: neurallog.NewPermanentError("collector returned status 400", ewrap.New("bad payload")),
	}
	collector := &failureCollector{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:     "orders",
		Transport:      transport,
		MaxRetries:     5,
		RetryBackoff:   time.Millisecond,
		FailureHandler: collector.handle,
	})

	err := dispatcher.DispatchSync(context.Background(), testRecords("a"))
	require.Error(t, err)

	require.Equal(t, 1, transport.attemptCount())

	failures := collector.collected()
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Attempts)
}

func TestDispatcherBackgroundDelivery(t *testing.T) {
	transport := &mockTransport{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:   "orders",
		Transport:    transport,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})

	dispatcher.Dispatch(testRecords("a", "b"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, dispatcher.Wait(ctx))
	require.Len(t, transport.deliveredBatches(), 1)
}

func TestDispatcherIgnoresEmptyBatches(t *testing.T) {
	transport := &mockTransport{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName: "orders",
		Transport:  transport,
	})

	dispatcher.Dispatch(nil)
	require.NoError(t, dispatcher.DispatchSync(context.Background(), nil))

	require.Zero(t, transport.attemptCount())
	require.Zero(t, dispatcher.Metrics().Batches)
}

func TestDispatchSyncContextExpiry(t *testing.T) {
	transport := &mockTransport{blockUntilCancel: true}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:   "orders",
		Transport:    transport,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := dispatcher.DispatchSync(ctx, testRecords("a"))
	require.Error(t, err)

	dispatcher.Abandon()
}

func TestDispatcherWaitAbandonsOnDeadline(t *testing.T) {
	transport := &mockTransport{blockUntilCancel: true}
	collector := &failureCollector{}

	dispatcher := NewDispatcher(DispatcherConfig{
		LoggerName:     "orders",
		Transport:      transport,
		MaxRetries:     3,
		RetryBackoff:   time.Second,
		FailureHandler: collector.handle,
	})

	dispatcher.Dispatch(testRecords("a", "b", "c"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := dispatcher.Wait(ctx)
	require.ErrorIs(t, err, ErrDrainTimeout)

	failures := collector.collected()
	require.Len(t, failures, 1)
	assert.Equal(t, 3, failures[0].BatchSize)

	metrics := dispatcher.Metrics()
	assert.Equal(t, uint64(3), metrics.DroppedRecords)
}

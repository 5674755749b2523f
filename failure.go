package neurallog

// BatchFailure describes a batch that reached a terminal failure and was
// dropped. It is delivered to the configured FailureHandler, never raised
// back into application call sites.
type BatchFailure struct {
	// LoggerName is the logger the batch belonged to.
	LoggerName string
	// BatchSize is the number of records dropped with the batch.
	BatchSize int
	// Attempts is the total number of delivery attempts made.
	Attempts int
	// Reason describes the terminal failure.
	Reason error
}

// FailureHandler receives terminal batch failures. Handlers must not block:
// they run on the delivery goroutine of the failed batch.
type FailureHandler func(failure BatchFailure)

// DeliveryMetrics provides insight into the state of the delivery engine.
type DeliveryMetrics struct {
	// Enqueued is the number of records accepted into buffers.
	Enqueued uint64
	// Batches is the number of batches handed to the dispatcher.
	Batches uint64
	// Delivered is the number of batches that reached the collector.
	Delivered uint64
	// Retried is the number of retry attempts performed.
	Retried uint64
	// Failed is the number of batches dropped after a terminal failure.
	Failed uint64
	// DroppedRecords is the number of records lost to dropped batches.
	DroppedRecords uint64
}

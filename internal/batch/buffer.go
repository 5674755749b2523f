// Package batch implements the asynchronous delivery engine of the SDK:
// the per-logger record buffer, the periodic flush scheduler, and the
// dispatcher that drives retries and terminal failure reporting.
package batch

import (
	"sync"

	"github.com/neurallog/neurallog-go"
)

// DispatchFunc receives ownership of a captured batch. Implementations must
// not block: the buffer may invoke it while holding its lock.
type DispatchFunc func(records []neurallog.Record)

// Buffer accumulates pending records for one logger. A single mutex guards
// the pending slice so appends and flush swaps never interleave partially.
type Buffer struct {
	mu       sync.Mutex
	pending  []neurallog.Record
	maxSize  int
	dispatch DispatchFunc
}

// NewBuffer creates a buffer that hands batches of at most maxSize records
// to the given dispatch function.
func NewBuffer(maxSize int, dispatch DispatchFunc) *Buffer {
	return &Buffer{
		maxSize:  maxSize,
		dispatch: dispatch,
	}
}

// Append adds a record to the pending sequence. When the pending length
// reaches the size threshold the entire sequence is captured, cleared, and
// handed to the dispatch function in one critical section, so the buffer
// never exceeds maxSize and cross-batch hand-off order matches capture order.
func (b *Buffer) Append(record neurallog.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		b.pending = make([]neurallog.Record, 0, b.maxSize)
	}

	b.pending = append(b.pending, record)

	if len(b.pending) >= b.maxSize {
		batch := b.pending
		b.pending = nil

		b.dispatch(batch)
	}
}

// TakeAll atomically captures and clears the pending sequence, handing
// ownership to the caller. It returns nil when the buffer is empty, so
// callers never dispatch empty batches.
func (b *Buffer) TakeAll() []neurallog.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}

	batch := b.pending
	b.pending = nil

	return batch
}

// Flush captures the pending sequence and hands it to the dispatch function.
// Flushing an empty buffer is a no-op.
func (b *Buffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return
	}

	batch := b.pending
	b.pending = nil

	b.dispatch(batch)
}

// Len returns the number of pending records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.pending)
}

package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs one periodic flush per logger. Ticks execute sequentially
// on the scheduler's own goroutine, so a tick that is still processing when
// the next is due causes the next to be skipped, never queued.
type Scheduler struct {
	interval time.Duration
	tick     func()

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewScheduler creates a scheduler that invokes tick every interval.
func NewScheduler(interval time.Duration, tick func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the timer goroutine. Starting twice is a no-op.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	go s.run()
}

// Stop cancels the timer and waits for the goroutine to exit, so no tick
// fires after Stop returns. Stop is idempotent and safe to call on a
// scheduler that was never started.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})

	if s.started.Load() {
		<-s.doneCh
	}
}

func (s *Scheduler) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

package batch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerTicks(t *testing.T) {
	var ticks atomic.Int32

	scheduler := NewScheduler(10*time.Millisecond, func() {
		ticks.Add(1)
	})

	scheduler.Start()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()
}

func TestSchedulerStopPreventsFurtherTicks(t *testing.T) {
	var ticks atomic.Int32

	scheduler := NewScheduler(5*time.Millisecond, func() {
		ticks.Add(1)
	})

	scheduler.Start()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 1
	}, time.Second, time.Millisecond)

	scheduler.Stop()
	observed := ticks.Load()

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, observed, ticks.Load())
}

func TestSchedulerStopIdempotent(t *testing.T) {
	scheduler := NewScheduler(time.Millisecond, func() {})

	scheduler.Start()
	scheduler.Stop()
	scheduler.Stop()
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	scheduler := NewScheduler(time.Millisecond, func() {})
	scheduler.Stop()
}

func TestSchedulerStartTwice(t *testing.T) {
	var ticks atomic.Int32

	scheduler := NewScheduler(5*time.Millisecond, func() {
		ticks.Add(1)
	})

	scheduler.Start()
	scheduler.Start()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 1
	}, time.Second, time.Millisecond)

	scheduler.Stop()
}

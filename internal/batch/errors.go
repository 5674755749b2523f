package batch

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the batch package.
var (
	// ErrDispatcherAbandoned is reported for batches whose remaining retry
	// attempts were abandoned because the shutdown deadline expired.
	ErrDispatcherAbandoned = ewrap.New("delivery abandoned at shutdown")

	// ErrFlushTimeout is returned when a synchronous flush times out before
	// its batch reaches a terminal state.
	ErrFlushTimeout = ewrap.New("flush timed out")

	// ErrDrainTimeout is returned when Wait gives up on in-flight batches.
	ErrDrainTimeout = ewrap.New("timed out draining in-flight batches")
)

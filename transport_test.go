package neurallog

import (
	"fmt"
	"testing"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorMessage(t *testing.T) {
	err := NewTransientError("collector unavailable", ewrap.New("dial refused"))

	assert.Equal(t, "transient transport failure: collector unavailable: dial refused", err.Error())
	require.Error(t, err.Unwrap())

	bare := NewPermanentError("bad payload", nil)
	assert.Equal(t, "permanent transport failure: bad payload", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestIsTransientClassification(t *testing.T) {
	assert.True(t, IsTransient(NewTransientError("timeout", nil)))
	assert.False(t, IsTransient(NewPermanentError("rejected", nil)))

	// Unclassified errors are retried.
	assert.True(t, IsTransient(ewrap.New("connection reset")))
}

func TestIsTransientUnwrapsWrappedErrors(t *testing.T) {
	inner := NewPermanentError("rejected", nil)
	wrapped := fmt.Errorf("delivery failed: %w", inner)

	assert.False(t, IsTransient(wrapped))
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "transient", FailureTransient.String())
	assert.Equal(t, "permanent", FailurePermanent.String())
}

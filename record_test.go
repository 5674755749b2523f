package neurallog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewRecordBasics(t *testing.T) {
	before := time.Now().UTC()
	record := NewRecord("orders", InfoLevel, "created", nil, nil)
	after := time.Now().UTC()

	assert.Regexp(t, uuidPattern, record.ID)
	assert.Equal(t, "orders", record.LoggerName)
	assert.Equal(t, InfoLevel, record.Level)
	assert.Equal(t, "created", record.Message)
	assert.NotNil(t, record.Data)
	assert.Nil(t, record.Exception)

	assert.False(t, record.Timestamp.Before(before))
	assert.False(t, record.Timestamp.After(after))
	assert.Equal(t, time.UTC, record.Timestamp.Location())
}

func TestNewRecordUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		record := NewRecord("orders", InfoLevel, "m", nil, nil)
		require.False(t, seen[record.ID])
		seen[record.ID] = true
	}
}

func TestNewRecordExceptionChain(t *testing.T) {
	cause := ewrap.New("connection reset")
	wrapped := fmt.Errorf("query failed: %w", cause)

	record := NewRecord("orders", ErrorLevel, "request failed", nil, wrapped)

	require.NotNil(t, record.Exception)
	assert.Equal(t, wrapped.Error(), record.Exception.Message)
	assert.NotEmpty(t, record.Exception.Type)
	assert.NotEmpty(t, record.Exception.StackTrace)

	require.NotNil(t, record.Exception.Inner)
	assert.Equal(t, "connection reset", record.Exception.Inner.Message)
	assert.Empty(t, record.Exception.Inner.StackTrace)
}

func TestRecordMarshalJSON(t *testing.T) {
	record := NewRecord("orders", WarnLevel, "disk almost full", map[string]Value{
		"free_gb": Float(1.5),
	}, nil)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, record.ID, decoded["id"])
	assert.Equal(t, "warning", decoded["level"])
	assert.Equal(t, "disk almost full", decoded["message"])
	assert.NotContains(t, decoded, "exception")
	assert.NotContains(t, decoded, "loggerName")

	payload, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1.5, payload["free_gb"], 0.0001)

	_, err = time.Parse(time.RFC3339Nano, decoded["timestamp"].(string))
	require.NoError(t, err)
}

func TestRecordMarshalIncludesException(t *testing.T) {
	record := NewRecord("orders", ErrorLevel, "failed", nil, ewrap.New("boom"))

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	exception, ok := decoded["exception"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boom", exception["message"])
	assert.NotEmpty(t, exception["type"])
}

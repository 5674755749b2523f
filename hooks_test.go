package neurallog

import (
	"testing"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookRegistryAddAndGet(t *testing.T) {
	registry := NewHookRegistry()

	hook := NewStandardHook(nil, func(*Record) error { return nil })
	require.NoError(t, registry.AddHook("audit", hook))

	retrieved, exists := registry.GetHook("audit")
	require.True(t, exists)
	assert.Equal(t, Hook(hook), retrieved)

	_, exists = registry.GetHook("missing")
	assert.False(t, exists)
}

func TestHookRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewHookRegistry()

	hook := NewStandardHook(nil, nil)
	require.NoError(t, registry.AddHook("audit", hook))
	require.Error(t, registry.AddHook("audit", hook))
}

func TestHookRegistryRemove(t *testing.T) {
	registry := NewHookRegistry()

	require.NoError(t, registry.AddHook("audit", NewStandardHook(nil, nil)))
	assert.True(t, registry.RemoveHook("audit"))
	assert.False(t, registry.RemoveHook("audit"))
}

func TestHooksFilterByLevel(t *testing.T) {
	registry := NewHookRegistry()

	var errorsSeen, allSeen int

	require.NoError(t, registry.AddHook("errors-only", NewStandardHook(
		[]Level{ErrorLevel, FatalLevel},
		func(*Record) error {
			errorsSeen++

			return nil
		},
	)))

	require.NoError(t, registry.AddHook("all-levels", NewStandardHook(
		nil,
		func(*Record) error {
			allSeen++

			return nil
		},
	)))

	infoRecord := NewRecord("orders", InfoLevel, "m", nil, nil)
	registry.FireHooks(&infoRecord)

	errorRecord := NewRecord("orders", ErrorLevel, "m", nil, nil)
	registry.FireHooks(&errorRecord)

	assert.Equal(t, 1, errorsSeen)
	assert.Equal(t, 2, allSeen)
}

func TestHooksCanMutateRecords(t *testing.T) {
	registry := NewHookRegistry()

	require.NoError(t, registry.AddHook("redact", NewStandardHook(nil, func(record *Record) error {
		if _, ok := record.Data["password"]; ok {
			record.Data["password"] = String("[REDACTED]")
		}

		return nil
	})))

	record := NewRecord("auth", InfoLevel, "login", map[string]Value{
		"password": String("hunter2"),
		"user":     String("alice"),
	}, nil)

	require.Empty(t, registry.FireHooks(&record))

	assert.Equal(t, "[REDACTED]", record.Data["password"].StringValue())
	assert.Equal(t, "alice", record.Data["user"].StringValue())
}

func TestFireHooksCollectsErrors(t *testing.T) {
	registry := NewHookRegistry()

	require.NoError(t, registry.AddHook("failing", NewStandardHook(nil, func(*Record) error {
		return ewrap.New("hook failure")
	})))

	require.NoError(t, registry.AddHook("passing", NewStandardHook(nil, func(*Record) error {
		return nil
	})))

	record := NewRecord("orders", InfoLevel, "m", nil, nil)
	errs := registry.FireHooks(&record)

	require.Len(t, errs, 1)
}

func TestFireHooksNilRegistry(t *testing.T) {
	var registry *HookRegistry

	record := NewRecord("orders", InfoLevel, "m", nil, nil)
	assert.Nil(t, registry.FireHooks(&record))
}

func TestStandardHookNilHandler(t *testing.T) {
	hook := NewStandardHook([]Level{InfoLevel}, nil)

	record := NewRecord("orders", InfoLevel, "m", nil, nil)
	require.NoError(t, hook.OnRecord(&record))
	assert.Equal(t, []Level{InfoLevel}, hook.Levels())
}

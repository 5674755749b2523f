package neurallog

import (
	"slices"
	"sync"

	"github.com/hyp3rd/ewrap"
)

// Hook is an interface that provides a way to hook into record processing
// after a record is built and before it is handed to the delivery engine.
// Hooks may mutate the record, for example to redact sensitive attributes.
type Hook interface {
	// OnRecord is called for every record at one of the hook's levels.
	OnRecord(record *Record) error

	// Levels returns the log levels this hook should be triggered for.
	Levels() []Level
}

// HookRegistry manages a collection of hooks and provides thread-safe access
// to them. Each client owns one registry; there is no process-wide hook
// state.
type HookRegistry struct {
	mu sync.RWMutex

	hooks map[string]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[string]Hook),
	}
}

// AddHook adds a named hook to the registry.
func (r *HookRegistry) AddHook(name string, hook Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hooks[name]; exists {
		return ewrap.New("hook already exists").WithMetadata("name", name)
	}

	r.hooks[name] = hook

	return nil
}

// RemoveHook removes a hook by name.
func (r *HookRegistry) RemoveHook(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hooks[name]; !exists {
		return false
	}

	delete(r.hooks, name)

	return true
}

// GetHook retrieves a hook by name.
func (r *HookRegistry) GetHook(name string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hook, exists := r.hooks[name]

	return hook, exists
}

// GetHooksForLevel returns all hooks that should trigger for a given level.
// A hook with an empty level list triggers for every level.
func (r *HookRegistry) GetHooksForLevel(level Level) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Hook

	for _, hook := range r.hooks {
		levels := hook.Levels()
		if len(levels) == 0 || slices.Contains(levels, level) {
			result = append(result, hook)
		}
	}

	return result
}

// FireHooks triggers all hooks for a given record.
// It returns any errors encountered during hook execution.
func (r *HookRegistry) FireHooks(record *Record) []error {
	if r == nil {
		return nil
	}

	hooks := r.GetHooksForLevel(record.Level)
	if len(hooks) == 0 {
		return nil
	}

	var errors []error

	for _, hook := range hooks {
		err := hook.OnRecord(record)
		if err != nil {
			errors = append(errors, err)
		}
	}

	return errors
}

// StandardHook provides a simpler way to implement the Hook interface.
type StandardHook struct {
	// LevelList contains the levels this hook should trigger for. Empty
	// means all levels.
	LevelList []Level
	// Handler is called when a record is processed.
	Handler func(record *Record) error
}

// NewStandardHook creates a new StandardHook with the given levels and handler.
func NewStandardHook(levels []Level, handler func(record *Record) error) *StandardHook {
	return &StandardHook{
		LevelList: levels,
		Handler:   handler,
	}
}

// OnRecord implements Hook.OnRecord.
func (h *StandardHook) OnRecord(record *Record) error {
	if h.Handler != nil {
		return h.Handler(record)
	}

	return nil
}

// Levels implements Hook.Levels.
func (h *StandardHook) Levels() []Level {
	return h.LevelList
}

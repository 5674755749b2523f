package neurallog

// MergeContext combines the global context, the per-logger context, and the
// call-site data into the final attribute map attached to a record. Later
// sources override earlier ones on key collision: callSite > loggerCtx >
// global. The inputs are never mutated.
func MergeContext(global, loggerCtx, callSite map[string]Value) map[string]Value {
	merged := make(map[string]Value, len(global)+len(loggerCtx)+len(callSite))

	for key, value := range global {
		merged[key] = value
	}

	for key, value := range loggerCtx {
		merged[key] = value
	}

	for key, value := range callSite {
		merged[key] = value
	}

	return merged
}

// CloneContext returns a shallow copy of a context map, guarding callers
// against later mutation of the source.
func CloneContext(ctx map[string]Value) map[string]Value {
	if ctx == nil {
		return nil
	}

	cloned := make(map[string]Value, len(ctx))
	for key, value := range ctx {
		cloned[key] = value
	}

	return cloned
}

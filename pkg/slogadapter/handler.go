// Package slogadapter bridges the standard library's log/slog front end to
// the delivery engine. Applications keep their slog call sites and route the
// records through a handler backed by a registered logger.
package slogadapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/neurallog/neurallog-go"
)

// fatalThreshold is the slog level at and above which records map to the
// fatal severity. slog has no fatal level of its own; levels above error
// are conventionally custom severities.
const fatalThreshold = slog.LevelError + 4

// Handler implements slog.Handler on top of a neurallog logger. Groups are
// flattened into dotted keys; attribute values are converted to the typed
// attribute model.
type Handler struct {
	logger   neurallog.Logger
	minLevel slog.Leveler
	groups   []string
	attrs    map[string]neurallog.Value
}

// NewHandler creates a handler that forwards records at or above minLevel to
// the given logger. A nil minLevel forwards everything from debug up.
func NewHandler(logger neurallog.Logger, minLevel slog.Leveler) *Handler {
	if minLevel == nil {
		minLevel = slog.LevelDebug
	}

	return &Handler{
		logger:   logger,
		minLevel: minLevel,
	}
}

// Enabled reports whether records at the given level are forwarded.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel.Level()
}

// Handle converts the record's attributes and forwards it. Delivery errors
// never surface here; slog call sites stay non-blocking.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	data := make(map[string]neurallog.Value, len(h.attrs)+record.NumAttrs())
	for key, value := range h.attrs {
		data[key] = value
	}

	record.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(data, h.groups, attr)

		return true
	})

	target := h.logger
	if len(data) > 0 {
		target = target.WithData(data)
	}

	target.Log(mapLevel(record.Level), record.Message)

	return nil
}

// WithAttrs returns a handler that stamps the given attributes on every
// forwarded record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := h.clone()
	for _, attr := range attrs {
		clone.appendAttr(clone.attrs, clone.groups, attr)
	}

	return clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys with
// the group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := h.clone()
	clone.groups = append(clone.groups, name)

	return clone
}

func (h *Handler) clone() *Handler {
	attrs := make(map[string]neurallog.Value, len(h.attrs))
	for key, value := range h.attrs {
		attrs[key] = value
	}

	groups := make([]string, len(h.groups))
	copy(groups, h.groups)

	return &Handler{
		logger:   h.logger,
		minLevel: h.minLevel,
		groups:   groups,
		attrs:    attrs,
	}
}

// appendAttr flattens one attribute into dst, expanding groups recursively.
func (h *Handler) appendAttr(dst map[string]neurallog.Value, groups []string, attr slog.Attr) {
	value := attr.Value.Resolve()

	if value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}

		for _, member := range value.Group() {
			h.appendAttr(dst, nested, member)
		}

		return
	}

	if attr.Key == "" {
		return
	}

	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	dst[key] = convertValue(value)
}

func convertValue(value slog.Value) neurallog.Value {
	switch value.Kind() {
	case slog.KindString:
		return neurallog.String(value.String())
	case slog.KindInt64:
		return neurallog.Int(value.Int64())
	case slog.KindUint64:
		return neurallog.Int(int64(value.Uint64()))
	case slog.KindFloat64:
		return neurallog.Float(value.Float64())
	case slog.KindBool:
		return neurallog.Bool(value.Bool())
	case slog.KindDuration:
		return neurallog.String(value.Duration().String())
	case slog.KindTime:
		return neurallog.AnyValue(value.Time())
	default:
		return neurallog.AnyValue(value.Any())
	}
}

func mapLevel(level slog.Level) neurallog.Level {
	switch {
	case level >= fatalThreshold:
		return neurallog.FatalLevel
	case level >= slog.LevelError:
		return neurallog.ErrorLevel
	case level >= slog.LevelWarn:
		return neurallog.WarnLevel
	case level >= slog.LevelInfo:
		return neurallog.InfoLevel
	default:
		return neurallog.DebugLevel
	}
}

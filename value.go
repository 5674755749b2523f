package neurallog

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	// KindNull is the zero Value.
	KindNull ValueKind = iota
	// KindString holds a string.
	KindString
	// KindInt holds a 64-bit signed integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindBool holds a boolean.
	KindBool
	// KindMap holds a nested attribute map.
	KindMap
	// KindList holds an ordered sequence of values.
	KindList
)

// Value is a typed attribute value attached to log records. It replaces
// free-form any-typed maps with an explicit tagged union so the wire encoding
// of every variant is deterministic.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flt  float64
	b    bool
	m    map[string]Value
	l    []Value
}

// String creates a string Value.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Int creates an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, num: v} }

// Float creates a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, flt: v} }

// Bool creates a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Null creates a null Value.
func Null() Value { return Value{} }

// Map creates a nested map Value. The input map is copied.
func Map(v map[string]Value) Value {
	cloned := make(map[string]Value, len(v))
	for key, value := range v {
		cloned[key] = value
	}

	return Value{kind: KindMap, m: cloned}
}

// List creates a sequence Value from the given elements.
func List(values ...Value) Value {
	cloned := make([]Value, len(values))
	copy(cloned, values)

	return Value{kind: KindList, l: cloned}
}

// AnyValue converts an arbitrary Go value into a Value on a best-effort
// basis. Unrecognized types fall back to their fmt representation.
func AnyValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Int(int64(val))
	case uint8:
		return Int(int64(val))
	case uint16:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case time.Time:
		return String(val.Format(time.RFC3339Nano))
	case time.Duration:
		return String(val.String())
	case error:
		return String(val.Error())
	case fmt.Stringer:
		return String(val.String())
	case map[string]Value:
		return Map(val)
	case map[string]any:
		converted := make(map[string]Value, len(val))
		for key, value := range val {
			converted[key] = AnyValue(value)
		}

		return Value{kind: KindMap, m: converted}
	case []Value:
		return List(val...)
	case []any:
		converted := make([]Value, len(val))
		for i, value := range val {
			converted[i] = AnyValue(value)
		}

		return Value{kind: KindList, l: converted}
	default:
		return String(fmt.Sprintf("%+v", val))
	}
}

// Kind returns the variant held by the value.
func (v Value) Kind() ValueKind { return v.kind }

// StringValue returns the string payload. It is only meaningful for KindString.
func (v Value) StringValue() string { return v.str }

// IntValue returns the integer payload. It is only meaningful for KindInt.
func (v Value) IntValue() int64 { return v.num }

// FloatValue returns the float payload. It is only meaningful for KindFloat.
func (v Value) FloatValue() float64 { return v.flt }

// BoolValue returns the boolean payload. It is only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.b }

// MapValue returns a copy of the nested map payload.
func (v Value) MapValue() map[string]Value {
	if v.m == nil {
		return nil
	}

	cloned := make(map[string]Value, len(v.m))
	for key, value := range v.m {
		cloned[key] = value
	}

	return cloned
}

// ListValue returns a copy of the sequence payload.
func (v Value) ListValue() []Value {
	if v.l == nil {
		return nil
	}

	cloned := make([]Value, len(v.l))
	copy(cloned, v.l)

	return cloned
}

// MarshalJSON encodes the value according to its variant. Map keys are
// emitted in sorted order so payloads are reproducible.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	v.encode(&buf)

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) {
	switch v.kind {
	case KindString:
		encodeJSONString(buf, v.str)
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.num, 10))
	case KindFloat:
		buf.WriteString(strconv.FormatFloat(v.flt, 'f', -1, 64))
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for key := range v.m {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		buf.WriteByte('{')

		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			encodeJSONString(buf, key)
			buf.WriteByte(':')
			v.m[key].encode(buf)
		}

		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')

		for i, elem := range v.l {
			if i > 0 {
				buf.WriteByte(',')
			}

			elem.encode(buf)
		}

		buf.WriteByte(']')
	case KindNull:
		buf.WriteString("null")
	default:
		buf.WriteString("null")
	}
}

const asciiControlEnd = 32

// encodeJSONString writes a JSON-escaped string to the buffer using direct
// byte operations. Multi-byte UTF-8 sequences pass through untouched.
func encodeJSONString(buf *bytes.Buffer, target string) {
	buf.WriteByte('"')

	start := 0

	for i := range target {
		character := target[i]
		if needsEscaping(character) {
			if start < i {
				buf.WriteString(target[start:i])
			}

			writeEscapedChar(buf, character)

			start = i + 1
		}
	}

	if start < len(target) {
		buf.WriteString(target[start:])
	}

	buf.WriteByte('"')
}

func needsEscaping(c byte) bool {
	switch c {
	case '"', '\\', '\b', '\f', '\n', '\r', '\t':
		return true
	default:
		return c < asciiControlEnd
	}
}

func writeEscapedChar(buf *bytes.Buffer, character byte) {
	switch character {
	case '"':
		buf.WriteString("\\\"")
	case '\\':
		buf.WriteString("\\\\")
	case '\b':
		buf.WriteString("\\b")
	case '\f':
		buf.WriteString("\\f")
	case '\n':
		buf.WriteString("\\n")
	case '\r':
		buf.WriteString("\\r")
	case '\t':
		buf.WriteString("\\t")
	default:
		fmt.Fprintf(buf, "\\u%04x", character)
	}
}

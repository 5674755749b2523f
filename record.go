package neurallog

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"runtime/debug"
	"time"
)

// Record is an immutable log record produced per log call. Once constructed
// it is owned by the batch buffer that holds it until it is dispatched or
// dropped.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`
	// Timestamp is the UTC wall-clock time the record was created.
	Timestamp time.Time `json:"timestamp"`
	// Level is the severity of the record.
	Level Level `json:"level"`
	// Message is the log message.
	Message string `json:"message"`
	// Data holds the merged structured attributes for the record.
	Data map[string]Value `json:"data"`
	// Exception describes the error attached to the record, if any.
	Exception *ExceptionInfo `json:"exception,omitempty"`
	// LoggerName is the name of the logger that produced the record. It is
	// carried in the request path rather than the body.
	LoggerName string `json:"-"`
}

// ExceptionInfo describes an error attached to a log record, including the
// chain of wrapped causes.
type ExceptionInfo struct {
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	StackTrace string         `json:"stackTrace,omitempty"`
	Inner      *ExceptionInfo `json:"innerException,omitempty"`
}

// NewRecord builds a record with a fresh ID and the current UTC timestamp.
// The data map is used as-is: callers hand over ownership.
func NewRecord(loggerName string, level Level, msg string, data map[string]Value, err error) Record {
	if data == nil {
		data = make(map[string]Value)
	}

	return Record{
		ID:         newRecordID(),
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    msg,
		Data:       data,
		Exception:  newExceptionInfo(err, true),
		LoggerName: loggerName,
	}
}

// newExceptionInfo converts an error chain into the wire representation.
// The stack trace is captured at the outermost error only.
func newExceptionInfo(err error, withStack bool) *ExceptionInfo {
	if err == nil {
		return nil
	}

	info := &ExceptionInfo{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if withStack {
		info.StackTrace = string(debug.Stack())
	}

	if cause := unwrapCause(err); cause != nil {
		info.Inner = newExceptionInfo(cause, false)
	}

	return info
}

func unwrapCause(err error) error {
	type unwrapper interface{ Unwrap() error }

	if wrapped, ok := err.(unwrapper); ok {
		return wrapped.Unwrap()
	}

	return nil
}

const recordIDLength = 16

// newRecordID returns a random RFC 4122 version 4 UUID string.
func newRecordID() string {
	bytes := make([]byte, recordIDLength)

	_, err := rand.Read(bytes)
	if err != nil {
		// Timestamp-derived fallback when the random source is unavailable.
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}

	bytes[6] = (bytes[6] & 0x0f) | 0x40
	bytes[8] = (bytes[8] & 0x3f) | 0x80

	encoded := hex.EncodeToString(bytes)

	return encoded[0:8] + "-" + encoded[8:12] + "-" + encoded[12:16] + "-" + encoded[16:20] + "-" + encoded[20:32]
}

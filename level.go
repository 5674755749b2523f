package neurallog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log record.
type Level uint8

const (
	// DebugLevel represents debugging information.
	DebugLevel Level = iota
	// InfoLevel represents general operational information.
	InfoLevel
	// WarnLevel represents warning messages.
	WarnLevel
	// ErrorLevel represents error messages.
	ErrorLevel
	// FatalLevel represents fatal error messages.
	FatalLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the given Level is a valid log level, and false otherwise.
func (l Level) IsValid() bool {
	return l >= DebugLevel && l <= FatalLevel
}

// wireName returns the level name used in the collector wire format.
func (l Level) wireName() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return "info"
	}
}

// MarshalJSON encodes the level using its wire name.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.wireName() + `"`), nil
}

// UnmarshalJSON decodes a level from its wire name.
func (l *Level) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)

	level, err := ParseLevel(name)
	if err != nil {
		return err
	}

	*l = level

	return nil
}

// ParseLevel parses the given log level string, accepting both the display
// and wire spellings, and returns the corresponding Level or an error if the
// level is invalid.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, ewrap.New("invalid log level: " + level)
	}
}

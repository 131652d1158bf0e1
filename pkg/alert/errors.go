package alert

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every error caused by invalid custom types.
	ErrConfiguration = errors.New("invalid alert configuration")

	// ErrUnknownType is matched when an alert names a type the registry cannot resolve.
	ErrUnknownType = errors.New("unknown alert type")
)

// ConfigError describes a single invalid custom type definition.
type ConfigError struct {
	Type   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("custom alert type %q: %s", e.Type, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// UnknownTypeError reports an alert block whose type could not be resolved.
// Line is 1-based and zero when the position is not known.
type UnknownTypeError struct {
	Type string
	Line int
}

func (e *UnknownTypeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: unknown alert type %q", e.Line, e.Type)
	}
	return fmt.Sprintf("unknown alert type %q", e.Type)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration merging.
var (
	// ErrUnknownKey is reported for an option hexlight does not recognise.
	ErrUnknownKey = errors.New("unknown option")

	// ErrInvalidValue is reported for an option with a malformed value.
	ErrInvalidValue = errors.New("invalid option value")
)

// FieldError describes a problem with a single configuration key.
type FieldError struct {
	// Key is the option name, with an index for list entries (custom_colors[2]).
	Key string

	// Value is the offending raw value.
	Value any

	// Err is ErrUnknownKey or ErrInvalidValue, possibly wrapped.
	Err error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrUnknownKey) {
		return fmt.Sprintf("%s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %v), using default", e.Key, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalid(key string, value any, format string, args ...any) *FieldError {
	return &FieldError{
		Key:   key,
		Value: value,
		Err:   fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...),
	}
}

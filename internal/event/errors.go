package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEvent reports an event with an unknown kind or no document.
	ErrInvalidEvent = errors.New("event: invalid")
	// ErrHandlerPanic wraps the value a handler panicked with.
	ErrHandlerPanic = errors.New("event: handler panic")
)

// HandlerError records which event a failing handler was processing.
type HandlerError struct {
	Event Event
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Event, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

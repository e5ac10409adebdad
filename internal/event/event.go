package event

import "fmt"

// Event is one host notification.
type Event struct {
	Kind Kind
	Doc  string
}

// String returns "kind(doc)".
func (e Event) String() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Doc)
}

// Validate checks that e names a known kind and a document.
func (e Event) Validate() error {
	if e.Kind > DocumentClosed {
		return fmt.Errorf("%w: kind %d", ErrInvalidEvent, e.Kind)
	}
	if e.Doc == "" {
		return fmt.Errorf("%w: empty document id", ErrInvalidEvent)
	}
	return nil
}

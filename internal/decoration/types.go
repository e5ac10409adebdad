// Package decoration turns resolved colors into decorations and reconciles
// them against what a namespace already holds.
package decoration

import (
	"errors"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/config"
)

// ErrStaleHandle is returned when a handle no longer names a decoration.
var ErrStaleHandle = errors.New("stale decoration handle")

// ErrUnknownDocument is returned for a document the namespace has never seen
// or has already dropped.
var ErrUnknownDocument = errors.New("unknown document")

// Style is the rendered look of a decoration. A Default color leaves that
// attribute to the host.
type Style struct {
	Foreground color.Color
	Background color.Color
}

// Virtual is a glyph drawn next to the text without changing it.
type Virtual struct {
	Text     string
	Position config.VirtualPosition

	// Col is the anchor column; the glyph is drawn before it.
	Col int
}

// Decoration is one styled range in a document.
type Decoration struct {
	// Handle is assigned by the namespace on Place.
	Handle string

	Row      int
	StartCol int
	EndCol   int

	Style   Style
	Virtual *Virtual

	// Group names the style so other renderers can reference it.
	Group string

	// Key identifies the match the decoration was made for.
	Key string
}

// Same reports whether d and o would look identical at the same place.
func (d Decoration) Same(o Decoration) bool {
	if d.Key != o.Key || d.Group != o.Group || d.Style != o.Style {
		return false
	}
	if d.Virtual == nil || o.Virtual == nil {
		return d.Virtual == nil && o.Virtual == nil
	}
	return *d.Virtual == *o.Virtual
}

// Namespace is the private scope holding hexlight's decorations.
type Namespace interface {
	// Place stores d for doc and returns its handle.
	Place(doc string, d Decoration) (string, error)

	// Remove deletes one decoration. A missing handle yields ErrStaleHandle.
	Remove(doc, handle string) error

	// List returns the decorations of doc ordered by position.
	List(doc string) ([]Decoration, error)
}

// Dropper is implemented by namespaces that keep per-document state which
// should be released once a document closes.
type Dropper interface {
	Drop(doc string)
}

var _ Dropper = (*Store)(nil)

package event

import "strings"

// Kind is the category of a host notification.
type Kind uint8

const (
	// ContentChanged is sent after the document text changed.
	ContentChanged Kind = iota

	// EditModeExited is sent when the user leaves an editing mode.
	EditModeExited

	// ToolingAttached is sent when an external color highlighter attaches.
	ToolingAttached

	// DocumentEntered is sent when a document becomes the active one.
	DocumentEntered

	// ViewportChanged is sent on scroll or resize.
	ViewportChanged

	// DocumentClosed is sent before a document goes away.
	DocumentClosed
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{ContentChanged, EditModeExited, ToolingAttached, DocumentEntered, ViewportChanged, DocumentClosed}

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case ContentChanged:
		return "content_changed"
	case EditModeExited:
		return "edit_mode_exited"
	case ToolingAttached:
		return "tooling_attached"
	case DocumentEntered:
		return "document_entered"
	case ViewportChanged:
		return "viewport_changed"
	case DocumentClosed:
		return "document_closed"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as returned by String.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// FullRedraw reports whether k invalidates the decorations of the window,
// as opposed to only moving it.
func (k Kind) FullRedraw() bool {
	switch k {
	case ContentChanged, EditModeExited, ToolingAttached, DocumentEntered:
		return true
	default:
		return false
	}
}

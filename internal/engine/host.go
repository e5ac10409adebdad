package engine

import (
	"github.com/dshills/hexlight/internal/log"
)

// RowOffset is how many rows around the viewport are scanned as well, so
// tokens just outside the visible rows are already decorated on scroll.
const RowOffset = 5

// Info describes the kind of a document.
type Info struct {
	Filetype   string
	Buftype    string
	Terminal   bool
	Modifiable bool
}

// Host is what the controller needs from the editor.
type Host interface {
	// Valid reports whether doc names a live document.
	Valid(doc string) bool

	// Info returns the kind of doc.
	Info(doc string) (Info, error)

	// LineCount returns the number of rows in doc.
	LineCount(doc string) (int, error)

	// Lines returns rows [start, end) of doc.
	Lines(doc string, start, end int) ([]string, error)

	// Viewport returns the first and last visible rows of doc.
	Viewport(doc string) (top, bottom int, err error)

	// ToolingAttached reports whether an external color highlighter
	// already decorates doc.
	ToolingAttached(doc string) bool

	// Documents returns every open document.
	Documents() []string
}

// Window is an inclusive row range.
type Window struct {
	Min int
	Max int
}

// Contains reports whether row lies in w.
func (w Window) Contains(row int) bool {
	return row >= w.Min && row <= w.Max
}

// Empty reports whether w holds no rows.
func (w Window) Empty() bool {
	return w.Min > w.Max
}

// hostDocument adapts one host document to scan.Document.
type hostDocument struct {
	host Host
	doc  string
}

func (d hostDocument) LineCount() int {
	n, err := d.host.LineCount(d.doc)
	if err != nil {
		log.ErrorErr(log.CatEngine, "line count", err, "doc", d.doc)
		return 0
	}
	return n
}

func (d hostDocument) Lines(start, end int) ([]string, error) {
	return d.host.Lines(d.doc, start, end)
}

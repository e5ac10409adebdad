package scan

import (
	"fmt"
	"strings"
)

// Text is an immutable in-memory Document.
type Text []string

// FromString splits s into lines. A trailing newline does not add a row.
func FromString(s string) Text {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return Text{""}
	}
	return Text(strings.Split(s, "\n"))
}

// LineCount implements Document.
func (t Text) LineCount() int {
	return len(t)
}

// Lines implements Document.
func (t Text) Lines(start, end int) ([]string, error) {
	if start < 0 || end > len(t) || start > end {
		return nil, fmt.Errorf("rows [%d,%d) outside document of %d lines", start, end, len(t))
	}
	return t[start:end], nil
}

// Package scan finds color tokens in a row window of a document.
package scan

import (
	"cmp"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/pattern"
)

// Document is read access to a document's text.
type Document interface {
	// LineCount returns the number of lines in the document.
	LineCount() int

	// Lines returns rows [start, end) without line terminators.
	Lines(start, end int) ([]string, error)
}

// Match is one located color token.
type Match struct {
	Row      int
	Start    int // in the scanner's column unit
	End      int
	Notation pattern.Notation
	Text     string

	// ByteStart and ByteEnd locate Text within its line.
	ByteStart int
	ByteEnd   int

	// Label names the custom entry that produced the match.
	Label string
}

// Key identifies the span and notation of a match.
func (m Match) Key() string {
	return fmt.Sprintf("%d:%d:%d:%s", m.Row, m.Start, m.End, m.Notation)
}

// Scanner matches patterns line by line. It holds no state between calls.
type Scanner struct {
	unit column.Unit
}

// New returns a scanner that reports columns in unit.
func New(unit column.Unit) *Scanner {
	return &Scanner{unit: unit}
}

// Unit returns the column unit of reported matches.
func (s *Scanner) Unit() column.Unit {
	return s.unit
}

// Window clamps [minRow-offset, maxRow+offset] to a document of n lines.
// It returns an empty range (lo > hi) when nothing is left.
func Window(minRow, maxRow, offset, n int) (lo, hi int) {
	if offset < 0 {
		offset = 0
	}
	lo = max(minRow-offset, 0)
	hi = min(maxRow+offset, n-1)
	return lo, hi
}

// Scan returns the matches of patterns in rows [minRow-rowOffset,
// maxRow+rowOffset] of doc, ordered by row then column.
func (s *Scanner) Scan(patterns []pattern.Pattern, minRow, maxRow int, doc Document, rowOffset int) ([]Match, error) {
	lo, hi := Window(minRow, maxRow, rowOffset, doc.LineCount())
	if lo > hi || len(patterns) == 0 {
		return nil, nil
	}

	lines, err := doc.Lines(lo, hi+1)
	if err != nil {
		return nil, fmt.Errorf("read rows %d-%d: %w", lo, hi, err)
	}

	var out []Match
	for i, line := range lines {
		out = append(out, s.ScanLine(patterns, lo+i, line)...)
	}
	return out, nil
}

// ScanLine returns the matches of patterns in a single line.
// A span claimed by an earlier pattern is not matched again by a later one.
func (s *Scanner) ScanLine(patterns []pattern.Pattern, row int, line string) []Match {
	var claimed [][2]int
	var out []Match

	for _, p := range patterns {
		for _, loc := range p.Expr.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] || overlaps(claimed, loc[0], loc[1]) {
				continue
			}
			if p.Isolated && !isolated(line, loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})
			out = append(out, Match{
				Row:       row,
				Start:     column.FromByte(line, loc[0], s.unit),
				End:       column.FromByte(line, loc[1], s.unit),
				Notation:  p.Notation,
				Text:      line[loc[0]:loc[1]],
				ByteStart: loc[0],
				ByteEnd:   loc[1],
				Label:     p.Label,
			})
		}
	}

	slices.SortFunc(out, func(a, b Match) int {
		return cmp.Compare(a.ByteStart, b.ByteStart)
	})
	return out
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && c[0] < end {
			return true
		}
	}
	return false
}

// isolated reports whether line[start:end] is not glued to an identifier.
func isolated(line string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		if wordRune(r) {
			return false
		}
	}
	if end < len(line) {
		r, _ := utf8.DecodeRuneInString(line[end:])
		if wordRune(r) {
			return false
		}
	}
	return true
}

func wordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Package column converts byte offsets within a line into the column unit a
// host uses for cursor and decoration addressing.
package column

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unit identifies a column addressing unit.
type Unit uint8

const (
	// Byte addresses columns by UTF-8 byte offset.
	Byte Unit = iota

	// UTF16 addresses columns by UTF-16 code unit.
	UTF16

	// Rune addresses columns by Unicode code point.
	Rune

	// Cell addresses columns by terminal display cell.
	Cell
)

// String returns the configuration name of the unit.
func (u Unit) String() string {
	switch u {
	case Byte:
		return "byte"
	case UTF16:
		return "utf-16"
	case Rune:
		return "rune"
	case Cell:
		return "cell"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit name.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(name) {
	case "byte", "bytes", "utf-8", "utf8":
		return Byte, nil
	case "utf-16", "utf16":
		return UTF16, nil
	case "rune", "runes", "utf-32", "utf32", "char":
		return Rune, nil
	case "cell", "cells", "display":
		return Cell, nil
	default:
		return Byte, fmt.Errorf("unknown column unit %q", name)
	}
}

// FromByte converts a byte offset in line to a column in unit u.
// Offsets past the end of line are clamped to the line length.
func FromByte(line string, off int, u Unit) int {
	if off <= 0 {
		return 0
	}
	if off > len(line) {
		off = len(line)
	}
	prefix := line[:off]

	switch u {
	case UTF16:
		n := 0
		for _, r := range prefix {
			if r >= 0x10000 {
				n += 2
			} else {
				n++
			}
		}
		return n
	case Rune:
		return utf8.RuneCountInString(prefix)
	case Cell:
		return uniseg.StringWidth(prefix)
	default:
		return off
	}
}

// Width returns the length of line in unit u.
func Width(line string, u Unit) int {
	return FromByte(line, len(line), u)
}

// ToByte converts a column in unit u back to a byte offset in line.
// Columns inside a multi-unit character map to that character's start.
func ToByte(line string, col int, u Unit) int {
	if col <= 0 {
		return 0
	}
	if u == Byte {
		return min(col, len(line))
	}

	pos := 0
	for i := range line {
		next := pos + FromByte(line[i:], nextRuneLen(line[i:]), u)
		if next > col {
			return i
		}
		pos = next
	}
	return len(line)
}

func nextRuneLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}

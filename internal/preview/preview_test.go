package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/decoration"
)

func newPrinter(opts ...Option) *Printer {
	opts = append([]Option{WithProfile(termenv.TrueColor)}, opts...)
	return New(&bytes.Buffer{}, column.Byte, opts...)
}

func bg(c color.Color) decoration.Style {
	return decoration.Style{Foreground: c.Contrast(), Background: c}
}

func TestLine_StylesSpans(t *testing.T) {
	p := newPrinter()
	line := "a: #ff0000; b: blue;"
	decs := []decoration.Decoration{
		{Row: 0, StartCol: 3, EndCol: 10, Style: bg(color.RGB(255, 0, 0))},
		{Row: 0, StartCol: 15, EndCol: 19, Style: bg(color.RGB(0, 0, 255))},
	}

	out := p.Line(line, decs)
	assert.Equal(t, line, ansi.Strip(out))
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "48;2;255;0;0")
}

func TestLine_IgnoresOverlap(t *testing.T) {
	p := newPrinter()
	decs := []decoration.Decoration{
		{StartCol: 0, EndCol: 4, Style: bg(color.RGB(255, 0, 0))},
		{StartCol: 2, EndCol: 6, Style: bg(color.RGB(0, 255, 0))},
	}
	out := p.Line("abcdefgh", decs)
	assert.Equal(t, "abcdefgh", ansi.Strip(out))
	assert.NotContains(t, out, "48;2;0;255;0")
}

func TestLine_VirtualText(t *testing.T) {
	p := newPrinter()
	cfg := config.Defaults()
	decs := []decoration.Decoration{
		{StartCol: 0, EndCol: 4, Style: decoration.Style{Foreground: color.RGB(255, 0, 0), Background: color.None},
			Virtual: &decoration.Virtual{Text: cfg.VirtualText(), Col: 4}},
	}
	out := p.Line("#f00 x", decs)
	assert.Equal(t, "#f00■  x", ansi.Strip(out))
}

func TestLine_UnitConversion(t *testing.T) {
	p := New(&bytes.Buffer{}, column.Rune, WithProfile(termenv.TrueColor))
	decs := []decoration.Decoration{{StartCol: 2, EndCol: 6, Style: bg(color.RGB(255, 255, 255))}}

	out := p.Line("é #fff", decs)
	assert.Equal(t, "é #fff", ansi.Strip(out))
	assert.True(t, strings.HasPrefix(out, "é "))
}

func TestDocument_LineNumbers(t *testing.T) {
	p := newPrinter(WithLineNumbers())
	out := ansi.Strip(p.Document([]string{"a", "b"}, nil))
	assert.Equal(t, "1 a\n2 b\n", out)
}

func TestReport(t *testing.T) {
	p := newPrinter()
	out := ansi.Strip(p.Report("x.css", []Entry{
		{Row: 2, Col: 0, Text: "red", Group: "HexlightBackground_ff0000", Style: bg(color.RGB(255, 0, 0))},
		{Row: 0, Col: 4, Text: "#000", Group: "HexlightForeground_000000", Style: decoration.Style{Foreground: color.Black, Background: color.None}},
	}))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "x.css:1:5"))
	assert.Contains(t, lines[0], "HexlightForeground_000000")
	assert.True(t, strings.HasPrefix(lines[1], "x.css:3:1"))
}

// Package preview renders a decorated document as ANSI text.
package preview

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/decoration"
)

// Option configures a Printer.
type Option func(*Printer)

// WithLineNumbers prefixes every row with its 1-based number.
func WithLineNumbers() Option {
	return func(p *Printer) { p.numbers = true }
}

// WithProfile forces a color profile instead of detecting one from the
// output.
func WithProfile(profile termenv.Profile) Option {
	return func(p *Printer) { p.r.SetColorProfile(profile) }
}

// Printer draws documents with their decorations applied.
type Printer struct {
	r       *lipgloss.Renderer
	unit    column.Unit
	numbers bool
	gutter  lipgloss.Style
}

// New creates a printer for w. unit is the column unit decorations use.
func New(w io.Writer, unit column.Unit, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{
		r:      r,
		unit:   unit,
		gutter: r.NewStyle().Foreground(lipgloss.Color("8")).PaddingRight(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Style converts a decoration style to a lipgloss style.
func (p *Printer) Style(st decoration.Style) lipgloss.Style {
	s := p.r.NewStyle()
	if !st.Foreground.IsDefault() {
		s = s.Foreground(lipgloss.Color(st.Foreground.Hex()))
	}
	if !st.Background.IsDefault() {
		s = s.Background(lipgloss.Color(st.Background.Hex()))
	}
	return s
}

// Document renders every line of lines with the decorations in decs.
func (p *Printer) Document(lines []string, decs []decoration.Decoration) string {
	byRow := make(map[int][]decoration.Decoration)
	for _, d := range decs {
		byRow[d.Row] = append(byRow[d.Row], d)
	}

	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for row, line := range lines {
		if p.numbers {
			b.WriteString(p.gutter.Render(fmt.Sprintf("%*d", width, row+1)))
		}
		b.WriteString(p.Line(line, byRow[row]))
		b.WriteByte('\n')
	}
	return b.String()
}

type span struct {
	start, end int
	style      lipgloss.Style
}

// Line renders one line. Decorations overlapping an earlier one are ignored.
func (p *Printer) Line(line string, decs []decoration.Decoration) string {
	var spans []span
	inserts := make(map[int][]string)
	points := []int{0, len(line)}

	sorted := slices.Clone(decs)
	decoration.Sort(sorted)
	covered := 0
	for _, d := range sorted {
		if d.Virtual != nil {
			at := column.ToByte(line, d.Virtual.Col, p.unit)
			inserts[at] = append(inserts[at], p.Style(d.Style).Render(d.Virtual.Text))
			points = append(points, at)
			continue
		}
		start := column.ToByte(line, d.StartCol, p.unit)
		end := column.ToByte(line, d.EndCol, p.unit)
		if end <= start || start < covered {
			continue
		}
		covered = end
		spans = append(spans, span{start: start, end: end, style: p.Style(d.Style)})
		points = append(points, start, end)
	}

	slices.Sort(points)
	points = slices.Compact(points)

	var b strings.Builder
	for i, at := range points {
		for _, s := range inserts[at] {
			b.WriteString(s)
		}
		if i == len(points)-1 {
			break
		}
		seg := line[at:points[i+1]]
		if sp, ok := covering(spans, at); ok {
			b.WriteString(sp.style.Render(seg))
		} else {
			b.WriteString(seg)
		}
	}
	return b.String()
}

func covering(spans []span, at int) (span, bool) {
	i, found := slices.BinarySearchFunc(spans, at, func(s span, t int) int {
		switch {
		case s.end <= t:
			return -1
		case s.start > t:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return span{}, false
	}
	return spans[i], true
}

// Entry is one row of a decoration report.
type Entry struct {
	Row   int
	Col   int
	Text  string
	Group string
	Style decoration.Style
}

// Report renders one line per entry: position, a swatch, the token and the
// style group. Position and token columns are padded to the widest entry.
func (p *Printer) Report(name string, entries []Entry) string {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})

	positions := make([]string, len(entries))
	var posWidth, tokWidth int
	for i, e := range entries {
		positions[i] = fmt.Sprintf("%s:%d:%d", name, e.Row+1, e.Col+1)
		posWidth = max(posWidth, lipgloss.Width(positions[i]))
		tokWidth = max(tokWidth, lipgloss.Width(e.Text))
	}

	var b strings.Builder
	for i, e := range entries {
		swatch := p.Style(decoration.Style{Background: e.Style.Background, Foreground: e.Style.Foreground}).Render("  ")
		if e.Style.Background.IsDefault() {
			swatch = p.r.NewStyle().Foreground(lipgloss.Color(e.Style.Foreground.Hex())).Render("██")
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			pad(positions[i], posWidth), swatch, pad(e.Text, tokWidth), e.Group)
	}
	return b.String()
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

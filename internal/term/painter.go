// Package term is a terminal host for hexlight built on tcell: it paints a
// document with its decorations and turns keys and resizes into workspace
// events.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/debounce"
	"github.com/dshills/hexlight/internal/decoration"
)

// Painter draws document rows onto a screen.
type Painter struct {
	screen tcell.Screen
	unit   column.Unit
	status tcell.Style
}

// NewPainter creates a painter. unit is the column unit decorations use.
func NewPainter(screen tcell.Screen, unit column.Unit) *Painter {
	return &Painter{
		screen: screen,
		unit:   unit,
		status: tcell.StyleDefault.Reverse(true),
	}
}

// Paint draws lines starting at document row top, then the status line on
// the last screen row.
func (p *Painter) Paint(lines []string, top int, decs []decoration.Decoration, status string) {
	p.screen.Clear()
	width, height := p.screen.Size()

	byRow := make(map[int][]decoration.Decoration)
	for _, d := range decs {
		byRow[d.Row] = append(byRow[d.Row], d)
	}

	for y := 0; y < height-1 && y < len(lines); y++ {
		p.paintLine(y, width, lines[y], byRow[top+y])
	}
	p.paintStatus(height-1, width, status)
	p.screen.Show()
}

func (p *Painter) paintLine(y, width int, line string, decs []decoration.Decoration) {
	type glyph struct {
		text  string
		style tcell.Style
	}
	styles := make([]tcell.Style, len(line)+1)
	for i := range styles {
		styles[i] = tcell.StyleDefault
	}
	inserts := make(map[int][]glyph)

	decoration.Sort(decs)
	for _, d := range decs {
		st := Style(d.Style)
		if d.Virtual != nil {
			at := column.ToByte(line, d.Virtual.Col, p.unit)
			inserts[at] = append(inserts[at], glyph{text: d.Virtual.Text, style: st})
			continue
		}
		start := column.ToByte(line, d.StartCol, p.unit)
		end := column.ToByte(line, d.EndCol, p.unit)
		for i := start; i < end; i++ {
			styles[i] = st
		}
	}

	x := 0
	put := func(s string, st tcell.Style) {
		g := uniseg.NewGraphemes(s)
		for g.Next() && x < width {
			runes := g.Runes()
			p.screen.SetContent(x, y, runes[0], runes[1:], st)
			x += max(g.Width(), 1)
		}
	}

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		start, _ := g.Positions()
		for _, v := range inserts[start] {
			put(v.text, v.style)
		}
		put(g.Str(), styles[start])
	}
	for _, v := range inserts[len(line)] {
		put(v.text, v.style)
	}
}

func (p *Painter) paintStatus(y, width int, status string) {
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		p.screen.SetContent(x, y, r, nil, p.status)
		x += max(uniseg.StringWidth(string(r)), 1)
	}
	for ; x < width; x++ {
		p.screen.SetContent(x, y, ' ', nil, p.status)
	}
}

// Style converts a decoration style to a tcell style.
func Style(st decoration.Style) tcell.Style {
	s := tcell.StyleDefault
	if !st.Foreground.IsDefault() {
		s = s.Foreground(tcellColor(st.Foreground))
	}
	if !st.Background.IsDefault() {
		s = s.Background(tcellColor(st.Background))
	}
	return s
}

func tcellColor(c color.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Executor returns a debounce executor that runs fired actions on the
// screen's event loop.
func Executor(screen tcell.Screen) debounce.Executor {
	return func(action func()) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(action)) // best-effort; queue may be full
	}
}

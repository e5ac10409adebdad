package decoration

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/resolve"
	"github.com/dshills/hexlight/internal/scan"
)

// Result summarises one Render call.
type Result struct {
	Placed  int
	Removed int
	Skipped int
}

// Renderer builds decorations for one configuration and remembers every
// style group it has produced.
type Renderer struct {
	mode     config.RenderMode
	virtual  string
	position config.VirtualPosition
	alphaBg  color.Color
	unit     column.Unit

	mu     sync.RWMutex
	styles map[string]Style
}

// NewRenderer creates a renderer for cfg.
func NewRenderer(cfg config.Config) *Renderer {
	return &Renderer{
		mode:     cfg.Render,
		virtual:  cfg.VirtualText(),
		position: cfg.VirtualPosition,
		alphaBg:  cfg.AlphaBackground,
		unit:     cfg.ColumnUnit,
		styles:   make(map[string]Style),
	}
}

// Style returns the style and group name for c under the render mode.
func (r *Renderer) Style(c color.Color) (Style, string) {
	solid := c.Over(r.alphaBg)

	var st Style
	switch r.mode {
	case config.RenderBackground:
		st = Style{Foreground: solid.Contrast(), Background: solid}
	default:
		st = Style{Foreground: solid, Background: color.None}
	}

	group := GroupName(r.mode, c)
	r.mu.Lock()
	r.styles[group] = st
	r.mu.Unlock()
	return st, group
}

// StyleFor returns the style registered under group.
func (r *Renderer) StyleFor(group string) (Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.styles[group]
	return st, ok
}

// GroupName returns "Hexlight<Mode>_<hex>" for c, e.g. HexlightBackground_ff0000.
func GroupName(mode config.RenderMode, c color.Color) string {
	name := mode.String()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return "Hexlight" + name + "_" + strings.TrimPrefix(c.Hex(), "#")
}

// Decorate builds the decoration for res. line is the text of res.Row.
func (r *Renderer) Decorate(line string, res resolve.Resolved) Decoration {
	st, group := r.Style(res.Color)
	d := Decoration{
		Row:      res.Row,
		StartCol: res.Start,
		EndCol:   res.End,
		Style:    st,
		Group:    group,
		Key:      res.Key(),
	}
	if r.mode == config.RenderVirtual {
		d.Virtual = &Virtual{
			Text:     r.virtual,
			Position: r.position,
			Col:      r.anchor(line, res),
		}
	}
	return d
}

func (r *Renderer) anchor(line string, res resolve.Resolved) int {
	switch r.position {
	case config.PositionEndOfLine:
		return column.Width(line, r.unit)
	case config.PositionEndOfWord:
		end := min(res.ByteEnd, len(line))
		for end < len(line) {
			ch, size := utf8.DecodeRuneInString(line[end:])
			if unicode.IsSpace(ch) {
				break
			}
			end += size
		}
		return column.FromByte(line, end, r.unit)
	default:
		return res.End
	}
}

// Render commits resolved matches for rows [lo, hi] of doc into ns.
//
// With clearFirst every decoration whose row lies in the window, or past
// the last row of lines, is removed before placing. Otherwise a decoration already present for the same match
// is kept when unchanged and replaced when its style differs; nothing else
// is removed. Per-item failures are collected and do not stop the batch.
func (r *Renderer) Render(ns Namespace, doc string, lines scan.Document, lo, hi int, resolved []resolve.Resolved, clearFirst bool) (Result, error) {
	var (
		res  Result
		errs []error
	)

	existing, err := ns.List(doc)
	if err != nil {
		return res, fmt.Errorf("list decorations for %s: %w", doc, err)
	}

	rows := -1
	if lines != nil {
		rows = lines.LineCount()
	}

	byKey := make(map[string]Decoration)
	for _, d := range existing {
		gone := clearFirst && rows > 0 && d.Row >= rows
		if (d.Row < lo || d.Row > hi) && !gone {
			continue
		}
		if clearFirst {
			if err := ns.Remove(doc, d.Handle); err != nil {
				errs = append(errs, err)
				continue
			}
			res.Removed++
			continue
		}
		byKey[d.Key] = d
	}

	text, err := windowLines(lines, lo, hi)
	if err != nil {
		errs = append(errs, err)
	}

	for _, rc := range resolved {
		if rc.Row < lo || rc.Row > hi {
			continue
		}
		line := ""
		if i := rc.Row - lo; i < len(text) {
			line = text[i]
		}
		d := r.Decorate(line, rc)

		if old, ok := byKey[d.Key]; ok {
			if old.Same(d) {
				res.Skipped++
				continue
			}
			if err := ns.Remove(doc, old.Handle); err != nil {
				errs = append(errs, err)
			} else {
				res.Removed++
			}
		}

		handle, err := ns.Place(doc, d)
		if err != nil {
			errs = append(errs, fmt.Errorf("place %s: %w", d.Key, err))
			continue
		}
		d.Handle = handle
		byKey[d.Key] = d
		res.Placed++
	}

	log.Debug(log.CatRender, "render", "doc", doc, "lo", lo, "hi", hi,
		"placed", res.Placed, "removed", res.Removed, "skipped", res.Skipped)
	return res, errors.Join(errs...)
}

// Clear removes every decoration of doc from ns. Stale handles are
// reported but do not stop the rest from being removed.
func Clear(ns Namespace, doc string) (int, error) {
	decs, err := ns.List(doc)
	if err != nil {
		return 0, fmt.Errorf("list decorations for %s: %w", doc, err)
	}

	var errs []error
	removed := 0
	for _, d := range decs {
		if err := ns.Remove(doc, d.Handle); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func windowLines(doc scan.Document, lo, hi int) ([]string, error) {
	if doc == nil || lo > hi {
		return nil, nil
	}
	hi = min(hi, doc.LineCount()-1)
	if lo > hi {
		return nil, nil
	}
	lines, err := doc.Lines(lo, hi+1)
	if err != nil {
		return nil, fmt.Errorf("read rows %d-%d: %w", lo, hi, err)
	}
	return lines, nil
}

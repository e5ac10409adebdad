package engine

import (
	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/decoration"
)

// CompletionFormat is how a completion item whose documentation is a color
// should be drawn: Glyph styled with the style registered under Group.
type CompletionFormat struct {
	Glyph string
	Group string
	Color color.Color
}

// FormatCompletionItem resolves documentation as a color literal. When it
// is not one, ok is false and the item should be shown unmodified.
func (c *Controller) FormatCompletionItem(documentation string) (CompletionFormat, bool) {
	col, ok := c.resolver.Literal(documentation)
	if !ok {
		return CompletionFormat{}, false
	}
	_, group := c.completion.Style(col)
	return CompletionFormat{
		Glyph: c.cfg.VirtualSymbol,
		Group: group,
		Color: col,
	}, true
}

// StyleFor returns the style registered under a group name produced by a
// render or by FormatCompletionItem.
func (c *Controller) StyleFor(group string) (decoration.Style, bool) {
	if st, ok := c.renderer.StyleFor(group); ok {
		return st, true
	}
	return c.completion.StyleFor(group)
}

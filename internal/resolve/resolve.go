// Package resolve turns scanned color tokens into concrete colors.
//
// Resolution never fails loudly: a token that cannot be interpreted is
// reported with ok == false and simply gets no decoration.
package resolve

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/palette"
	"github.com/dshills/hexlight/internal/pattern"
	"github.com/dshills/hexlight/internal/scan"
)

// MaxDepth bounds chained variable lookups (--a: var(--b); --b: ...).
const MaxDepth = 8

// Memo cache lifetimes. Entries depend only on the token text and the
// resolver's configuration, so they never go stale while the resolver lives.
const (
	DefaultExpiration = 10 * time.Minute
	CleanupInterval   = 30 * time.Minute
)

// Resolved is a match paired with its color.
type Resolved struct {
	scan.Match
	Color color.Color
}

// Resolver resolves matches produced under one configuration.
type Resolver struct {
	custom   map[string]color.Color
	literals *scan.Scanner
	patterns []pattern.Pattern
	tailwind bool
	cache    *gocache.Cache

	// defs holds compiled "--name:" definition expressions by name.
	defs *gocache.Cache
}

// New returns a resolver for cfg. Custom entries whose color does not
// resolve are dropped with a warning.
func New(cfg config.Config) *Resolver {
	r := &Resolver{
		custom:   make(map[string]color.Color, len(cfg.CustomColors)),
		literals: scan.New(column.Byte),
		patterns: pattern.Literals(),
		tailwind: cfg.EnableTailwind,
		cache:    gocache.New(DefaultExpiration, CleanupInterval),
		defs:     gocache.New(gocache.NoExpiration, 0),
	}
	for _, cc := range cfg.CustomColors {
		c, ok := r.customValue(cc.Color)
		if !ok {
			log.Warn(log.CatResolve, "custom color does not resolve", "label", cc.Label, "color", cc.Color)
			continue
		}
		if _, dup := r.custom[cc.Label]; dup {
			continue
		}
		r.custom[cc.Label] = c
	}
	return r
}

// Resolve interprets m. The document is consulted only for var() references.
func (r *Resolver) Resolve(doc scan.Document, m scan.Match) (Resolved, bool) {
	var (
		c  color.Color
		ok bool
	)
	if m.Notation == pattern.VarUsage {
		c, ok = r.variable(doc, m.Text, m.Row, m.ByteStart, 0)
	} else {
		c, ok = r.memo(m.Notation, m.Label, m.Text)
	}
	if !ok {
		log.Debug(log.CatResolve, "unresolved", "notation", m.Notation, "text", m.Text, "row", m.Row)
		return Resolved{}, false
	}
	return Resolved{Match: m, Color: c}, true
}

// ResolveAll resolves every match and drops the unresolved ones.
func (r *Resolver) ResolveAll(doc scan.Document, ms []scan.Match) []Resolved {
	doc = prefix(doc, ms)
	out := make([]Resolved, 0, len(ms))
	for _, m := range ms {
		if res, ok := r.Resolve(doc, m); ok {
			out = append(out, res)
		}
	}
	return out
}

// prefix reads rows [0, last var() row] of doc once, so every variable
// lookup in a batch searches the same in-memory lines. doc is returned
// as is when ms holds no var() reference.
func prefix(doc scan.Document, ms []scan.Match) scan.Document {
	last := -1
	for _, m := range ms {
		if m.Notation == pattern.VarUsage {
			last = max(last, m.Row)
		}
	}
	if doc == nil || last < 0 {
		return doc
	}
	lines, err := doc.Lines(0, min(last+1, doc.LineCount()))
	if err != nil {
		log.ErrorErr(log.CatResolve, "read lines for variable lookup", err)
		return doc
	}
	return scan.Text(lines)
}

// customValue resolves a configured custom color. Unlike document text it
// may be bare hex digits ("ff0000").
func (r *Resolver) customValue(text string) (color.Color, bool) {
	if c, err := color.ParseHex(strings.TrimSpace(text)); err == nil {
		return c, true
	}
	return r.Literal(text)
}

// Literal resolves a free-standing color value such as "#f00",
// "rgb(255 0 0)", "hsl(0,100%,50%)" or "red". Hex needs its '#', so words
// like "add" or "face" are not colors.
func (r *Resolver) Literal(text string) (color.Color, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return color.Color{}, false
	}
	for _, m := range r.literals.ScanLine(r.patterns, 0, text) {
		if c, ok := r.memo(m.Notation, "", m.Text); ok {
			return c, true
		}
	}
	if r.tailwind {
		return palette.Tailwind(text)
	}
	return color.Color{}, false
}

func (r *Resolver) memo(n pattern.Notation, label, text string) (color.Color, bool) {
	key := n.String() + "\x00" + label + "\x00" + text
	if v, found := r.cache.Get(key); found {
		c, ok := v.(color.Color)
		return c, ok
	}

	c, ok := r.contextFree(n, label, text)
	if ok {
		r.cache.SetDefault(key, c)
	}
	return c, ok
}

func (r *Resolver) contextFree(n pattern.Notation, label, text string) (color.Color, bool) {
	switch n {
	case pattern.Hex, pattern.ShortHex:
		c, err := color.ParseHex(text)
		return c, err == nil
	case pattern.RGB:
		return parseRGB(text)
	case pattern.HSL:
		return parseHSL(text)
	case pattern.Named:
		return palette.Named(text)
	case pattern.Tailwind:
		if !r.tailwind {
			return color.Color{}, false
		}
		return palette.Tailwind(text)
	case pattern.Custom:
		if c, ok := r.custom[label]; ok {
			return c, true
		}
		c, ok := r.custom[text]
		return c, ok
	default:
		return color.Color{}, false
	}
}

package resolve

import (
	"regexp"
	"strings"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/log"
	"github.com/dshills/hexlight/internal/scan"
)

var varRef = regexp.MustCompile(`^var\(\s*(--[\w-]+)\s*(?:,\s*(.*?))?\s*\)$`)

// definition returns the expression matching "--name: value" up to the
// declaration end.
func (r *Resolver) definition(name string) *regexp.Regexp {
	if v, found := r.defs.Get(name); found {
		return v.(*regexp.Regexp)
	}
	expr := regexp.MustCompile(`(?:^|[^\w-])` + regexp.QuoteMeta(name) + `\s*:\s*([^;{}]+)`)
	r.defs.SetDefault(name, expr)
	return expr
}

// variable resolves "var(--name[, fallback])" found at row, byte offset col.
// The definition is the nearest one before the reference; on the reference
// row only text left of it counts.
func (r *Resolver) variable(doc scan.Document, ref string, row, col, depth int) (color.Color, bool) {
	if depth >= MaxDepth {
		log.Debug(log.CatResolve, "variable depth exceeded", "ref", ref, "row", row)
		return color.Color{}, false
	}
	sub := varRef.FindStringSubmatch(strings.TrimSpace(ref))
	if sub == nil {
		return color.Color{}, false
	}
	name, fallback := sub[1], sub[2]

	if value, defRow, defCol, found := r.findDefinition(doc, name, row, col); found {
		if c, ok := r.value(doc, value, defRow, defCol, depth+1); ok {
			return c, true
		}
	}
	if fallback != "" {
		return r.value(doc, fallback, row, col, depth+1)
	}
	return color.Color{}, false
}

// value resolves the first color in a declared value. Nested var()
// references search backward from (row, col).
func (r *Resolver) value(doc scan.Document, text string, row, col, depth int) (color.Color, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "var(") {
		return r.variable(doc, text, row, col, depth)
	}
	return r.Literal(text)
}

func (r *Resolver) findDefinition(doc scan.Document, name string, row, col int) (value string, defRow, defCol int, found bool) {
	if row >= doc.LineCount() {
		row = doc.LineCount() - 1
	}
	if row < 0 {
		return "", 0, 0, false
	}
	lines, err := doc.Lines(0, row+1)
	if err != nil {
		log.ErrorErr(log.CatResolve, "read lines for variable lookup", err, "name", name)
		return "", 0, 0, false
	}

	expr := r.definition(name)
	for i := row; i >= 0; i-- {
		line := lines[i]
		if i == row && col < len(line) {
			line = line[:max(col, 0)]
		}
		locs := expr.FindAllStringSubmatchIndex(line, -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1]
		return strings.TrimSpace(line[last[2]:last[3]]), i, last[0], true
	}
	return "", 0, 0, false
}

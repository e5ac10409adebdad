// Package pattern builds the ordered list of color notations to search for.
//
// Precedence is explicit: Build emits patterns in the order of Precedence,
// followed by user custom entries, and the scanner lets the earliest pattern
// win when two matches overlap.
package pattern

import (
	"regexp"
	"slices"
	"strings"

	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/palette"
)

// Notation identifies a syntactic form used to express a color.
type Notation uint8

const (
	// Hex is #RRGGBB or #RRGGBBAA.
	Hex Notation = iota

	// ShortHex is #RGB or #RGBA.
	ShortHex

	// RGB is rgb(...) or rgba(...).
	RGB

	// HSL is hsl(...) or hsla(...).
	HSL

	// VarUsage is a CSS custom property reference, var(--name).
	VarUsage

	// Named is a CSS color name.
	Named

	// Tailwind is a utility class such as bg-red-500.
	Tailwind

	// Custom is a user-defined label.
	Custom
)

// Precedence is the fixed order in which notations are matched.
// Earlier notations win when matches overlap.
var Precedence = []Notation{Hex, ShortHex, RGB, HSL, VarUsage, Named, Tailwind, Custom}

// String returns the notation name.
func (n Notation) String() string {
	switch n {
	case Hex:
		return "hex"
	case ShortHex:
		return "short_hex"
	case RGB:
		return "rgb"
	case HSL:
		return "hsl"
	case VarUsage:
		return "var_usage"
	case Named:
		return "named"
	case Tailwind:
		return "tailwind"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Pattern is a notation plus the expression that finds it.
type Pattern struct {
	Notation Notation
	Expr     *regexp.Regexp

	// Isolated rejects matches touching a word character or '-' on either side.
	Isolated bool

	// Label is the custom entry label; empty for built-in notations.
	Label string
}

const (
	number   = `-?(?:\d+(?:\.\d*)?|\.\d+)`
	channel  = number + `%?`
	sep      = `\s*(?:,|\s)\s*`
	alphaSep = `\s*[,/]\s*`
)

var (
	hexExpr      = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6})\b`)
	shortHexExpr = regexp.MustCompile(`#[0-9a-fA-F]{3,4}\b`)
	rgbExpr      = regexp.MustCompile(`(?i)\brgba?\(\s*` + channel + sep + channel + sep + channel + `(?:` + alphaSep + channel + `)?\s*\)`)
	hslExpr      = regexp.MustCompile(`(?i)\bhsla?\(\s*` + number + `(?:deg)?` + sep + channel + sep + channel + `(?:` + alphaSep + channel + `)?\s*\)`)
	varExpr      = regexp.MustCompile(`\bvar\(\s*--[\w-]+\s*(?:,(?:[^()]|\([^()]*\))*)?\)`)
	namedExpr    = regexp.MustCompile(`(?i)\b(?:` + strings.Join(palette.NamedColors(), "|") + `)\b`)
	tailwindExpr = regexp.MustCompile(`\b(?:` + alternation(palette.TailwindPrefixes) + `)-(?:(?:` +
		alternation(palette.TailwindFamilies()) + `)-(?:` + alternation(palette.TailwindShades) + `)|black|white)\b`)
)

// Build returns the active patterns for cfg in precedence order.
// The tailwind notation is skipped when toolingAttached reports that an
// external color highlighter already decorates utility classes.
func Build(cfg config.Config, toolingAttached bool) []Pattern {
	var out []Pattern

	if cfg.EnableHex {
		out = append(out, Pattern{Notation: Hex, Expr: hexExpr})
	}
	if cfg.EnableShortHex {
		out = append(out, Pattern{Notation: ShortHex, Expr: shortHexExpr})
	}
	if cfg.EnableRGB {
		out = append(out, Pattern{Notation: RGB, Expr: rgbExpr})
	}
	if cfg.EnableHSL {
		out = append(out, Pattern{Notation: HSL, Expr: hslExpr})
	}
	if cfg.EnableVarUsage {
		out = append(out, Pattern{Notation: VarUsage, Expr: varExpr})
	}
	if cfg.EnableNamedColors {
		out = append(out, Pattern{Notation: Named, Expr: namedExpr, Isolated: true})
	}
	if cfg.EnableTailwind && !toolingAttached {
		out = append(out, Pattern{Notation: Tailwind, Expr: tailwindExpr, Isolated: true})
	}

	for _, cc := range cfg.CustomColors {
		p, ok := Compile(cc)
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out
}

// Literals returns the patterns for notations that resolve without document
// context, used to interpret free-standing color values.
func Literals() []Pattern {
	return []Pattern{
		{Notation: Hex, Expr: hexExpr},
		{Notation: ShortHex, Expr: shortHexExpr},
		{Notation: RGB, Expr: rgbExpr},
		{Notation: HSL, Expr: hslExpr},
		{Notation: Named, Expr: namedExpr, Isolated: true},
	}
}

// Compile builds the pattern for one custom color entry.
func Compile(cc config.CustomColor) (Pattern, bool) {
	src := regexp.QuoteMeta(cc.Label)
	if cc.Pattern {
		src = cc.Label
	}
	expr, err := regexp.Compile(src)
	if err != nil {
		return Pattern{}, false
	}
	return Pattern{Notation: Custom, Expr: expr, Label: cc.Label}, true
}

// MatchesLabel reports whether text is exactly what the custom pattern p denotes.
func (p Pattern) MatchesLabel(text string) bool {
	if p.Notation != Custom {
		return false
	}
	loc := p.Expr.FindStringIndex(text)
	return loc != nil && loc[0] == 0 && loc[1] == len(text)
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	// Longest first so alternation never stops at a shorter prefix.
	slices.SortStableFunc(quoted, func(a, b string) int { return len(b) - len(a) })
	return strings.Join(quoted, "|")
}

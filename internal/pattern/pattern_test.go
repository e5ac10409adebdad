package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hexlight/internal/config"
)

func notations(ps []Pattern) []Notation {
	out := make([]Notation, len(ps))
	for i, p := range ps {
		out[i] = p.Notation
	}
	return out
}

func TestBuild_DefaultOrder(t *testing.T) {
	ps := Build(config.Defaults(), false)
	assert.Equal(t, []Notation{Hex, ShortHex, RGB, HSL, VarUsage, Named}, notations(ps))
}

func TestBuild_TailwindSuppressedByTooling(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableTailwind = true

	assert.Contains(t, notations(Build(cfg, false)), Tailwind)
	assert.NotContains(t, notations(Build(cfg, true)), Tailwind)
}

func TestBuild_CustomAppendedLast(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableTailwind = true
	cfg.CustomColors = []config.CustomColor{
		{Label: "brand.primary", Color: "#123456"},
		{Label: `--accent-\d+`, Color: "red", Pattern: true},
	}

	ps := Build(cfg, false)
	require.Len(t, ps, 9)
	assert.Equal(t, Tailwind, ps[6].Notation)
	assert.Equal(t, Custom, ps[7].Notation)
	assert.Equal(t, "brand.primary", ps[7].Label)
	assert.Equal(t, Custom, ps[8].Notation)

	// Literal labels are quoted; "." must not match any character.
	assert.False(t, ps[7].Expr.MatchString("brandXprimary"))
	assert.True(t, ps[8].Expr.MatchString("--accent-12"))
}

func TestBuild_Disabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableHex = false
	cfg.EnableShortHex = false
	cfg.EnableRGB = false
	cfg.EnableHSL = false
	cfg.EnableVarUsage = false
	cfg.EnableNamedColors = false
	assert.Empty(t, Build(cfg, false))
}

func TestBuild_PrecedenceMatchesNotationOrder(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableTailwind = true
	cfg.CustomColors = []config.CustomColor{{Label: "x", Color: "red"}}

	ps := Build(cfg, false)
	for i := 1; i < len(ps); i++ {
		assert.LessOrEqual(t, ps[i-1].Notation, ps[i].Notation)
	}
	assert.Equal(t, Precedence, notations(ps))
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name  string
		expr  Pattern
		in    string
		match string
	}{
		{"hex6", Pattern{Expr: hexExpr}, "color: #a1B2c3;", "#a1B2c3"},
		{"hex8", Pattern{Expr: hexExpr}, "#a1b2c3d4", "#a1b2c3d4"},
		{"hex7 rejected", Pattern{Expr: hexExpr}, "#a1b2c3d", ""},
		{"short3", Pattern{Expr: shortHexExpr}, "x #abc y", "#abc"},
		{"short5 rejected", Pattern{Expr: shortHexExpr}, "#abcde", ""},
		{"rgb commas", Pattern{Expr: rgbExpr}, "rgb(255, 0, 0)", "rgb(255, 0, 0)"},
		{"rgba", Pattern{Expr: rgbExpr}, "RGBA(1,2,3,0.5)", "RGBA(1,2,3,0.5)"},
		{"rgb slash", Pattern{Expr: rgbExpr}, "rgb(10% 20% 30% / 50%)", "rgb(10% 20% 30% / 50%)"},
		{"hsl", Pattern{Expr: hslExpr}, "hsl(120deg, 100%, 50%)", "hsl(120deg, 100%, 50%)"},
		{"hsla", Pattern{Expr: hslExpr}, "hsla(0 100% 50% / .3)", "hsla(0 100% 50% / .3)"},
		{"var", Pattern{Expr: varExpr}, "color: var(--x);", "var(--x)"},
		{"var fallback", Pattern{Expr: varExpr}, "var(--x, rgb(1, 2, 3))", "var(--x, rgb(1, 2, 3))"},
		{"named", Pattern{Expr: namedExpr}, "color: DarkRed;", "DarkRed"},
		{"tailwind", Pattern{Expr: tailwindExpr}, `class="p-2 bg-sky-500"`, "bg-sky-500"},
		{"tailwind black", Pattern{Expr: tailwindExpr}, "text-black", "text-black"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.expr.Expr.FindString(tt.in))
		})
	}
}

func TestLiterals(t *testing.T) {
	ps := Literals()
	assert.NotContains(t, notations(ps), VarUsage)
	assert.NotContains(t, notations(ps), Custom)
}

func TestMatchesLabel(t *testing.T) {
	p, ok := Compile(config.CustomColor{Label: `--brand-\w+`, Pattern: true})
	require.True(t, ok)
	assert.True(t, p.MatchesLabel("--brand-main"))
	assert.False(t, p.MatchesLabel("x--brand-main"))

	_, ok = Compile(config.CustomColor{Label: "(", Pattern: true})
	assert.False(t, ok)

	assert.False(t, Pattern{Notation: Hex, Expr: hexExpr}.MatchesLabel("#ffffff"))
}

func TestNotationString(t *testing.T) {
	for _, n := range Precedence {
		assert.NotEqual(t, "unknown", n.String())
	}
	assert.Equal(t, "unknown", Notation(99).String())
}

// Package color provides the canonical color value used across hexlight.
// Colors are 8-bit RGBA; HSL conversion, luminance and alpha blending are
// delegated to go-colorful.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a hex literal has a bad length or digit.
var ErrInvalidHex = errors.New("invalid hex color")

// Color represents an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
	// Default indicates "no color": the host keeps whatever it would draw.
	Default bool
}

// None is the default/unset color.
var None = Color{Default: true}

// Common colors.
var (
	Black = Color{R: 0, G: 0, B: 0, A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseHex parses a hex color with an optional leading '#'.
// Supports 3, 4, 6 and 8 digit bodies. Short forms expand each digit by
// duplication ("abc" -> "aabbcc"); 4 and 8 digit forms carry alpha.
func ParseHex(s string) (Color, error) {
	body := strings.TrimPrefix(s, "#")

	switch len(body) {
	case 3, 4:
		var b strings.Builder
		for i := 0; i < len(body); i++ {
			b.WriteByte(body[i])
			b.WriteByte(body[i])
		}
		body = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q has length %d", ErrInvalidHex, s, len(body))
	}

	v, err := strconv.ParseUint(body, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	if len(body) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustParseHex is like ParseHex but panics on error. For static tables.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromHSL converts hue (degrees), saturation and lightness (0..1) to a color.
// Hue wraps around 360; saturation and lightness are clamped.
func FromHSL(h, s, l float64, a uint8) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return RGBA(r, g, b, a)
}

// IsDefault returns true if this is the default/unset color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Opaque returns true if the alpha channel is fully opaque.
func (c Color) Opaque() bool {
	return c.A == 255
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B && c.A == other.A
}

// Hex returns "#rrggbb", or "#rrggbbaa" when the color is translucent.
func (c Color) Hex() string {
	if c.Default {
		return ""
	}
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return c.Hex()
}

// Luminance returns the WCAG relative luminance in [0,1].
func (c Color) Luminance() float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// IsLight reports whether dark text reads better than light text on c.
// 0.179 is the luminance where contrast against black and white is equal.
func (c Color) IsLight() bool {
	return c.Luminance() > 0.179
}

// Contrast returns black or white, whichever contrasts more with c.
func (c Color) Contrast() Color {
	if c.IsLight() {
		return Black
	}
	return White
}

// Over composites a translucent color over bg and returns an opaque color.
func (c Color) Over(bg Color) Color {
	if c.Default || c.Opaque() {
		return c
	}
	t := float64(c.A) / 255
	r, g, b := bg.colorful().BlendRgb(c.colorful(), t).Clamped().RGB255()
	return RGB(r, g, b)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ClampChannel rounds v and clamps it into [0,255].
func ClampChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

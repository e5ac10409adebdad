package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
)

// RenderMode selects how a resolved color is drawn.
type RenderMode uint8

const (
	// RenderBackground paints the token's background with the color.
	RenderBackground RenderMode = iota

	// RenderForeground paints the token's text with the color.
	RenderForeground

	// RenderVirtual inserts a colored glyph next to the token.
	RenderVirtual
)

// String returns the configuration name of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderBackground:
		return "background"
	case RenderForeground:
		return "foreground"
	case RenderVirtual:
		return "virtual"
	default:
		return "unknown"
	}
}

// ParseRenderMode parses a render mode name.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(s) {
	case "background", "bg":
		return RenderBackground, nil
	case "foreground", "fg":
		return RenderForeground, nil
	case "virtual", "virtual_text":
		return RenderVirtual, nil
	default:
		return RenderBackground, fmt.Errorf("unknown render mode %q", s)
	}
}

// VirtualPosition places the glyph in virtual mode.
type VirtualPosition uint8

const (
	// PositionInline places the glyph immediately after the token.
	PositionInline VirtualPosition = iota

	// PositionEndOfLine places the glyph after the last column of the line.
	PositionEndOfLine

	// PositionEndOfWord places the glyph after the word containing the token.
	PositionEndOfWord
)

// String returns the configuration name of the position.
func (p VirtualPosition) String() string {
	switch p {
	case PositionInline:
		return "inline"
	case PositionEndOfLine:
		return "eol"
	case PositionEndOfWord:
		return "eow"
	default:
		return "unknown"
	}
}

// ParseVirtualPosition parses a virtual glyph position name.
func ParseVirtualPosition(s string) (VirtualPosition, error) {
	switch strings.ToLower(s) {
	case "inline":
		return PositionInline, nil
	case "eol", "end_of_line":
		return PositionEndOfLine, nil
	case "eow", "end_of_word":
		return PositionEndOfWord, nil
	default:
		return PositionInline, fmt.Errorf("unknown virtual symbol position %q", s)
	}
}

// CustomColor maps a user label to a color literal.
type CustomColor struct {
	// Label is matched literally, or as a regular expression when Pattern is set.
	Label string `mapstructure:"label" yaml:"label" toml:"label"`

	// Color is a hex, rgb(), hsl() or named color literal.
	Color string `mapstructure:"color" yaml:"color" toml:"color"`

	// Pattern marks Label as a regular expression.
	Pattern bool `mapstructure:"pattern" yaml:"pattern" toml:"pattern"`
}

// Config holds every hexlight option. It is immutable once built by Merge.
type Config struct {
	Render          RenderMode
	VirtualSymbol   string
	VirtualPrefix   string
	VirtualSuffix   string
	VirtualPosition VirtualPosition

	EnableHex         bool
	EnableShortHex    bool
	EnableRGB         bool
	EnableHSL         bool
	EnableVarUsage    bool
	EnableNamedColors bool
	EnableTailwind    bool

	CustomColors []CustomColor

	ExcludeFiletypes []string
	ExcludeBuftypes  []string

	Debounce        time.Duration
	ColumnUnit      column.Unit
	AlphaBackground color.Color
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Render:            RenderBackground,
		VirtualSymbol:     "■",
		VirtualPrefix:     "",
		VirtualSuffix:     " ",
		VirtualPosition:   PositionInline,
		EnableHex:         true,
		EnableShortHex:    true,
		EnableRGB:         true,
		EnableHSL:         true,
		EnableVarUsage:    true,
		EnableNamedColors: true,
		EnableTailwind:    false,
		Debounce:          100 * time.Millisecond,
		ColumnUnit:        column.Byte,
		AlphaBackground:   color.Black,
	}
}

// ExcludesFiletype reports whether ft is in the filetype exclusion list.
func (c Config) ExcludesFiletype(ft string) bool {
	return ft != "" && slices.Contains(c.ExcludeFiletypes, ft)
}

// ExcludesBuftype reports whether bt is in the buftype exclusion list.
func (c Config) ExcludesBuftype(bt string) bool {
	return bt != "" && slices.Contains(c.ExcludeBuftypes, bt)
}

// VirtualText returns the full glyph text drawn in virtual mode.
func (c Config) VirtualText() string {
	return c.VirtualPrefix + c.VirtualSymbol + c.VirtualSuffix
}

// Package config provides the hexlight configuration surface.
//
// Configuration is built once at startup: raw option maps from files and the
// environment are merged key by key over Defaults. Unknown keys and malformed
// values are reported as warnings and fall back to the default for that key,
// so a bad option never prevents the engine from starting.
//
// Recognised keys:
//
//	render                   "background" | "foreground" | "virtual"
//	virtual_symbol           glyph drawn in virtual mode
//	virtual_symbol_prefix    text before the glyph
//	virtual_symbol_suffix    text after the glyph
//	virtual_symbol_position  "inline" | "eol" | "eow"
//	enable_hex               #RRGGBB and #RRGGBBAA
//	enable_short_hex         #RGB and #RGBA
//	enable_rgb               rgb()/rgba()
//	enable_hsl               hsl()/hsla()
//	enable_var_usage         var(--name)
//	enable_named_colors      CSS color names
//	enable_tailwind          utility classes such as bg-red-500
//	custom_colors            list of {label, color, pattern}
//	exclude_filetypes        filetypes never decorated
//	exclude_buftypes         buftypes never decorated
//	debounce_ms              quiet interval for viewport refreshes
//	column_unit              "byte" | "utf-16" | "rune" | "cell"
//	alpha_background         color translucent values are blended over
//
// Usage:
//
//	raw, err := loader.LoadFile("hexlight.toml")
//	cfg, warnings := config.Merge(raw)
package config

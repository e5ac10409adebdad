package config

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/hexlight/internal/color"
	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/log"
)

// setter applies one raw option onto cfg, or returns a FieldError and leaves
// cfg untouched.
type setter func(cfg *Config, key string, v any) []error

// options enumerates every recognised key.
var options = map[string]setter{
	"render": func(cfg *Config, key string, v any) []error {
		s, ok := asString(v)
		if !ok {
			return fail(key, v, "expected string")
		}
		m, err := ParseRenderMode(s)
		if err != nil {
			return fail(key, v, "%v", err)
		}
		cfg.Render = m
		return nil
	},
	"virtual_symbol":        stringField(func(c *Config) *string { return &c.VirtualSymbol }),
	"virtual_symbol_prefix": stringField(func(c *Config) *string { return &c.VirtualPrefix }),
	"virtual_symbol_suffix": stringField(func(c *Config) *string { return &c.VirtualSuffix }),
	"virtual_symbol_position": func(cfg *Config, key string, v any) []error {
		s, ok := asString(v)
		if !ok {
			return fail(key, v, "expected string")
		}
		p, err := ParseVirtualPosition(s)
		if err != nil {
			return fail(key, v, "%v", err)
		}
		cfg.VirtualPosition = p
		return nil
	},
	"enable_hex":          boolField(func(c *Config) *bool { return &c.EnableHex }),
	"enable_short_hex":    boolField(func(c *Config) *bool { return &c.EnableShortHex }),
	"enable_rgb":          boolField(func(c *Config) *bool { return &c.EnableRGB }),
	"enable_hsl":          boolField(func(c *Config) *bool { return &c.EnableHSL }),
	"enable_var_usage":    boolField(func(c *Config) *bool { return &c.EnableVarUsage }),
	"enable_named_colors": boolField(func(c *Config) *bool { return &c.EnableNamedColors }),
	"enable_tailwind":     boolField(func(c *Config) *bool { return &c.EnableTailwind }),
	"custom_colors":       mergeCustomColors,
	"exclude_filetypes":   stringListField(func(c *Config) *[]string { return &c.ExcludeFiletypes }),
	"exclude_buftypes":    stringListField(func(c *Config) *[]string { return &c.ExcludeBuftypes }),
	"debounce_ms": func(cfg *Config, key string, v any) []error {
		n, ok := asInt(v)
		if !ok || n < 0 {
			return fail(key, v, "expected non-negative integer")
		}
		cfg.Debounce = time.Duration(n) * time.Millisecond
		return nil
	},
	"column_unit": func(cfg *Config, key string, v any) []error {
		s, ok := asString(v)
		if !ok {
			return fail(key, v, "expected string")
		}
		u, err := column.ParseUnit(s)
		if err != nil {
			return fail(key, v, "%v", err)
		}
		cfg.ColumnUnit = u
		return nil
	},
	"alpha_background": func(cfg *Config, key string, v any) []error {
		s, ok := asString(v)
		if !ok {
			return fail(key, v, "expected hex string")
		}
		c, err := color.ParseHex(s)
		if err != nil {
			return fail(key, v, "%v", err)
		}
		cfg.AlphaBackground = c
		return nil
	},
}

// Keys returns every recognised option name in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Merge builds a Config from raw options layered over Defaults.
// Each key is validated independently: a malformed value keeps the default
// for that key and is reported in the returned warnings. Merge never fails.
func Merge(raws ...map[string]any) (Config, []error) {
	cfg := Defaults()
	var warnings []error

	for _, raw := range raws {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, key := range keys {
			set, ok := options[strings.ToLower(key)]
			if !ok {
				warnings = append(warnings, &FieldError{Key: key, Value: raw[key], Err: ErrUnknownKey})
				continue
			}
			warnings = append(warnings, set(&cfg, key, raw[key])...)
		}
	}

	for _, w := range warnings {
		log.Warn(log.CatConfig, "config option ignored", "reason", w.Error())
	}
	return cfg, warnings
}

func fail(key string, v any, format string, args ...any) []error {
	return []error{invalid(key, v, format, args...)}
}

func boolField(field func(*Config) *bool) setter {
	return func(cfg *Config, key string, v any) []error {
		b, ok := asBool(v)
		if !ok {
			return fail(key, v, "expected boolean")
		}
		*field(cfg) = b
		return nil
	}
}

func stringField(field func(*Config) *string) setter {
	return func(cfg *Config, key string, v any) []error {
		s, ok := asString(v)
		if !ok {
			return fail(key, v, "expected string")
		}
		*field(cfg) = s
		return nil
	}
}

func stringListField(field func(*Config) *[]string) setter {
	return func(cfg *Config, key string, v any) []error {
		list, ok := asStringList(v)
		if !ok {
			return fail(key, v, "expected list of strings")
		}
		*field(cfg) = list
		return nil
	}
}

// mergeCustomColors keeps every well-formed entry and reports the rest.
func mergeCustomColors(cfg *Config, key string, v any) []error {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			items = make([]any, len(typed))
			for i := range typed {
				items[i] = typed[i]
			}
		} else {
			return fail(key, v, "expected list of {label, color} tables")
		}
	}

	var errs []error
	entries := make([]CustomColor, 0, len(items))
	for i, item := range items {
		itemKey := fmt.Sprintf("%s[%d]", key, i)
		m, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, invalid(itemKey, item, "expected table"))
			continue
		}

		label, _ := m["label"].(string)
		value, _ := m["color"].(string)
		if label == "" || value == "" {
			errs = append(errs, invalid(itemKey, item, "label and color are required"))
			continue
		}

		entry := CustomColor{Label: label, Color: value}
		if raw, present := m["pattern"]; present {
			b, ok := asBool(raw)
			if !ok {
				errs = append(errs, invalid(itemKey+".pattern", raw, "expected boolean"))
				continue
			}
			entry.Pattern = b
		}
		if entry.Pattern {
			if _, err := regexp.Compile(label); err != nil {
				errs = append(errs, invalid(itemKey+".label", label, "bad pattern: %v", err))
				continue
			}
		}
		entries = append(entries, entry)
	}

	cfg.CustomColors = entries
	return errs
}

// asString accepts text, and integers written where text was meant
// (virtual_symbol = 0, alpha_background = 101010).
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int32, int64, uint64:
		n, ok := asInt(s)
		return strconv.FormatInt(n, 10), ok
	default:
		return "", false
	}
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	default:
		return false, false
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func asStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		// Comma-separated, as produced by environment variables.
		if strings.TrimSpace(list) == "" {
			return []string{}, true
		}
		parts := strings.Split(list, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, true
	default:
		return nil, false
	}
}

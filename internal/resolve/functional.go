package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/hexlight/internal/color"
)

var fieldSep = regexp.MustCompile(`[\s,/]+`)

// args splits the arguments of "name(a, b, c / d)".
func args(text string) ([]string, bool) {
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return nil, false
	}
	inner := strings.TrimSpace(text[open+1 : len(text)-1])
	fields := fieldSep.Split(inner, -1)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, false
	}
	return fields, true
}

// number parses a float with an optional trailing unit.
func number(s, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, unit), 64)
	return v, err == nil
}

func channel(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		v, ok := number(s, "%")
		return color.ClampChannel(v * 255 / 100), ok
	}
	v, ok := number(s, "")
	return color.ClampChannel(v), ok
}

func alpha(fields []string) (uint8, bool) {
	if len(fields) < 4 {
		return 255, true
	}
	s := fields[3]
	if strings.HasSuffix(s, "%") {
		v, ok := number(s, "%")
		return color.ClampChannel(v * 255 / 100), ok
	}
	v, ok := number(s, "")
	return color.ClampChannel(v * 255), ok
}

func parseRGB(text string) (color.Color, bool) {
	fields, ok := args(text)
	if !ok {
		return color.Color{}, false
	}
	var ch [3]uint8
	for i := range ch {
		if ch[i], ok = channel(fields[i]); !ok {
			return color.Color{}, false
		}
	}
	a, ok := alpha(fields)
	if !ok {
		return color.Color{}, false
	}
	return color.RGBA(ch[0], ch[1], ch[2], a), true
}

func parseHSL(text string) (color.Color, bool) {
	fields, ok := args(text)
	if !ok {
		return color.Color{}, false
	}
	h, ok := number(strings.ToLower(fields[0]), "deg")
	if !ok {
		return color.Color{}, false
	}
	s, ok := number(fields[1], "%")
	if !ok {
		return color.Color{}, false
	}
	l, ok := number(fields[2], "%")
	if !ok {
		return color.Color{}, false
	}
	a, ok := alpha(fields)
	if !ok {
		return color.Color{}, false
	}
	return color.FromHSL(h, s/100, l/100, a), true
}

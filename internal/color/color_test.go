package color

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", RGB(255, 0, 0)},
		{"00ff00", RGB(0, 255, 0)},
		{"#00F", RGB(0, 0, 255)},
		{"#abc", RGB(0xaa, 0xbb, 0xcc)},
		{"#abcd", RGBA(0xaa, 0xbb, 0xcc, 0xdd)},
		{"#11223344", RGBA(0x11, 0x22, 0x33, 0x44)},
		{"#FFFFFFFF", RGB(255, 255, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equals(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#1234567", "#ggg", "#123456789"} {
		_, err := ParseHex(in)
		assert.ErrorIs(t, err, ErrInvalidHex, in)
	}
}

func TestParseHex_ShorthandExpansion(t *testing.T) {
	digit := rapid.SampledFrom(strings.Split("0123456789abcdefABCDEF", ""))
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.SampledFrom([]int{3, 4}).Draw(t, "len")
		var short, long strings.Builder
		for i := 0; i < n; i++ {
			d := digit.Draw(t, fmt.Sprintf("d%d", i))
			short.WriteString(d)
			long.WriteString(d + d)
		}

		withMarker := rapid.Bool().Draw(t, "marker")
		prefix := ""
		if withMarker {
			prefix = "#"
		}

		a, err := ParseHex(prefix + short.String())
		if err != nil {
			t.Fatalf("short form: %v", err)
		}
		b, err := ParseHex("#" + long.String())
		if err != nil {
			t.Fatalf("long form: %v", err)
		}
		if !a.Equals(b) {
			t.Fatalf("%s = %v, %s = %v", short.String(), a, long.String(), b)
		}
	})
}

func TestParseHex_DigitValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Uint8().Draw(t, "r")
		g := rapid.Uint8().Draw(t, "g")
		b := rapid.Uint8().Draw(t, "b")
		a := rapid.Uint8().Draw(t, "a")

		c6, err := ParseHex(fmt.Sprintf("#%02x%02x%02x", r, g, b))
		if err != nil || !c6.Equals(RGB(r, g, b)) {
			t.Fatalf("6 digit: %v %v", c6, err)
		}
		c8, err := ParseHex(fmt.Sprintf("%02X%02X%02X%02X", r, g, b, a))
		if err != nil || !c8.Equals(RGBA(r, g, b, a)) {
			t.Fatalf("8 digit: %v %v", c8, err)
		}
	})
}

func TestFromHSL_Primaries(t *testing.T) {
	tests := []struct {
		h    float64
		want Color
	}{
		{0, RGB(255, 0, 0)},
		{120, RGB(0, 255, 0)},
		{240, RGB(0, 0, 255)},
		{360, RGB(255, 0, 0)},
		{-120, RGB(0, 0, 255)},
	}
	for _, tt := range tests {
		got := FromHSL(tt.h, 1, 0.5, 255)
		assert.True(t, got.Equals(tt.want), "hsl(%v) = %v, want %v", tt.h, got, tt.want)
	}
}

func TestFromHSL_Grey(t *testing.T) {
	got := FromHSL(200, 0, 0.5, 255)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)
}

func TestContrast(t *testing.T) {
	assert.Equal(t, Black, White.Contrast())
	assert.Equal(t, Black, RGB(255, 255, 0).Contrast())
	assert.Equal(t, White, Black.Contrast())
	assert.Equal(t, White, RGB(0, 0, 128).Contrast())
}

func TestOver(t *testing.T) {
	half := RGBA(255, 255, 255, 128)
	got := half.Over(Black)
	assert.True(t, got.Opaque())
	assert.InDelta(t, 128, int(got.R), 2)

	opaque := RGB(10, 20, 30)
	assert.Equal(t, opaque, opaque.Over(White))
}

func TestHexAndString(t *testing.T) {
	assert.Equal(t, "#ff8000", RGB(255, 128, 0).Hex())
	assert.Equal(t, "#ff800080", RGBA(255, 128, 0, 128).Hex())
	assert.Equal(t, "default", None.String())
	assert.True(t, None.Equals(Color{Default: true}))
	assert.False(t, None.Equals(Black))
}

func TestClampChannel(t *testing.T) {
	assert.Equal(t, uint8(0), ClampChannel(-5))
	assert.Equal(t, uint8(255), ClampChannel(300))
	assert.Equal(t, uint8(128), ClampChannel(127.6))
}

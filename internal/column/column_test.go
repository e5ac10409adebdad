package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromByte(t *testing.T) {
	// "é" is 2 bytes, "😀" is 4 bytes / 2 UTF-16 units / 2 cells, "中" is 3 bytes / 2 cells.
	line := "é😀中x"
	end := len(line)

	tests := []struct {
		unit Unit
		want int
	}{
		{Byte, end},
		{UTF16, 5},
		{Rune, 4},
		{Cell, 6},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromByte(line, end, tt.unit))
			assert.Equal(t, tt.want, Width(line, tt.unit))
		})
	}
}

func TestFromByte_Clamps(t *testing.T) {
	assert.Equal(t, 0, FromByte("abc", -1, Rune))
	assert.Equal(t, 3, FromByte("abc", 10, Byte))
}

func TestToByte_RoundTrip(t *testing.T) {
	line := "a😀b中c"
	for _, u := range []Unit{Byte, UTF16, Rune, Cell} {
		for off := range line {
			col := FromByte(line, off, u)
			assert.Equal(t, off, ToByte(line, col, u), "unit %s offset %d", u, off)
		}
		assert.Equal(t, len(line), ToByte(line, Width(line, u), u))
	}
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("UTF-16")
	require.NoError(t, err)
	assert.Equal(t, UTF16, u)

	u, err = ParseUnit("cells")
	require.NoError(t, err)
	assert.Equal(t, Cell, u)

	_, err = ParseUnit("furlongs")
	assert.Error(t, err)
}

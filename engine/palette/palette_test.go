package palette

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPalette(t *testing.T) {
	p, err := NewPalette([]string{"#FFFFFF", "000000", "#f00"})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	white, err := p.ColorOf(0)
	require.NoError(t, err)
	assert.Equal(t, common.RGB{R: 1, G: 1, B: 1}, white)

	red, err := p.ColorOf(2)
	require.NoError(t, err)
	assert.Equal(t, common.RGB{R: 1, G: 0, B: 0}, red)
	assert.Equal(t, "#ff0000", p.Hex(2))
	assert.Equal(t, "", p.Hex(3))
}

func TestColorOfOutOfRange(t *testing.T) {
	p, err := NewPalette([]string{"#ffffff"})
	require.NoError(t, err)

	_, err = p.ColorOf(1)
	assert.ErrorIs(t, err, common.ErrInvalidPaletteIndex)
	_, err = p.ColorOf(-1)
	assert.ErrorIs(t, err, common.ErrInvalidPaletteIndex)
}

func TestNewPaletteErrors(t *testing.T) {
	_, err := NewPalette(nil)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)

	_, err = NewPalette([]string{"#ffffff", "#12345"})
	assert.Error(t, err)

	_, err = NewPalette([]string{"#gggggg"})
	assert.Error(t, err)
}

func TestParseHexChannels(t *testing.T) {
	rgb, norm, err := ParseHex(" #336699 ")
	require.NoError(t, err)
	assert.Equal(t, "#336699", norm)
	assert.InDelta(t, 0x33/255.0, rgb.R, 1e-6)
	assert.InDelta(t, 0x66/255.0, rgb.G, 1e-6)
	assert.InDelta(t, 0x99/255.0, rgb.B, 1e-6)
}

func TestColorsIsCopy(t *testing.T) {
	p, err := NewPalette([]string{"#000000"})
	require.NoError(t, err)
	c := p.Colors()
	c[0].R = 1
	got, _ := p.ColorOf(0)
	assert.Equal(t, float32(0), got.R)
}

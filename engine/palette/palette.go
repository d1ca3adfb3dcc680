package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-pixels/common"
)

// BackgroundIndex is the distinguished palette slot that receives extra sub-groups during batching.
const BackgroundIndex = 0

// palette is the implementation of the Palette interface.
type palette struct {
	colors []common.RGB
	hex    []string
}

// Palette resolves palette indices to RGB colors.
// A Palette is parsed once at startup and is immutable afterwards; it is passed explicitly to
// every consumer rather than shared as package state.
type Palette interface {
	// ColorOf returns the RGB color for a palette index.
	//
	// Parameters:
	//   - index: the palette index (0..Len()-1)
	//
	// Returns:
	//   - common.RGB: the resolved color
	//   - error: common.ErrInvalidPaletteIndex if index is out of range
	ColorOf(index int) (common.RGB, error)

	// Len returns the number of colors in the palette.
	//
	// Returns:
	//   - int: the color count
	Len() int

	// Hex returns the source hex string for a palette index, normalized to "#rrggbb".
	// Returns an empty string for out-of-range indices.
	//
	// Parameters:
	//   - index: the palette index
	//
	// Returns:
	//   - string: the normalized hex string
	Hex(index int) string

	// Colors returns a copy of every palette color in index order.
	//
	// Returns:
	//   - []common.RGB: the palette colors
	Colors() []common.RGB
}

var _ Palette = &palette{}

// NewPalette parses a table of hex color strings into a Palette.
// Accepted forms are "#rrggbb", "rrggbb", "#rgb" and "rgb" (case-insensitive).
//
// Parameters:
//   - hexColors: the hex strings, one per palette index
//
// Returns:
//   - Palette: the parsed palette
//   - error: error if the table is empty or any entry fails to parse
func NewPalette(hexColors []string) (Palette, error) {
	if len(hexColors) == 0 {
		return nil, fmt.Errorf("palette: %w: no colors", common.ErrInvalidConfiguration)
	}
	p := &palette{
		colors: make([]common.RGB, len(hexColors)),
		hex:    make([]string, len(hexColors)),
	}
	for i, h := range hexColors {
		rgb, norm, err := ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: entry %d: %w", i, err)
		}
		p.colors[i] = rgb
		p.hex[i] = norm
	}
	return p, nil
}

func (p *palette) ColorOf(index int) (common.RGB, error) {
	if index < 0 || index >= len(p.colors) {
		return common.RGB{}, fmt.Errorf("palette: index %d of %d: %w", index, len(p.colors), common.ErrInvalidPaletteIndex)
	}
	return p.colors[index], nil
}

func (p *palette) Len() int {
	return len(p.colors)
}

func (p *palette) Hex(index int) string {
	if index < 0 || index >= len(p.hex) {
		return ""
	}
	return p.hex[index]
}

func (p *palette) Colors() []common.RGB {
	out := make([]common.RGB, len(p.colors))
	copy(out, p.colors)
	return out
}

// ParseHex parses a single hex color string.
//
// Parameters:
//   - s: the hex string ("#rrggbb", "rrggbb", "#rgb" or "rgb")
//
// Returns:
//   - common.RGB: the color with channels normalized to [0, 1]
//   - string: the normalized "#rrggbb" form
//   - error: error if the string is not a valid hex color
func ParseHex(s string) (common.RGB, string, error) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return common.RGB{}, "", fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return common.RGB{}, "", fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return common.RGB{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, "#" + h, nil
}

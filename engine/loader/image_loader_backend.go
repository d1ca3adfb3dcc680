package loader

import (
	"fmt"
	"image"
	"io"

	// Registered decoders.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
)

// imageLoaderBackend decodes a raster image and maps every pixel to the nearest palette color.
// Image rows become grid rows. Fully transparent pixels map to the background index.
type imageLoaderBackend struct{}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend() *imageLoaderBackend {
	return &imageLoaderBackend{}
}

func (b *imageLoaderBackend) Decode(r io.Reader, p palette.Palette) ([][]uint8, error) {
	if p == nil {
		return nil, fmt.Errorf("image grid needs a palette: %w", common.ErrInvalidConfiguration)
	}
	if p.Len() > 256 {
		return nil, fmt.Errorf("palette has %d colors, at most 256 fit a grid cell: %w", p.Len(), common.ErrInvalidConfiguration)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	q := newQuantizer(p.Colors())
	bounds := img.Bounds()
	rows := make([][]uint8, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := make([]uint8, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			row[x-bounds.Min.X] = q.index(img.At(x, y).RGBA())
		}
		rows[y-bounds.Min.Y] = row
	}
	return rows, nil
}

// quantizer maps 8-bit colors to palette indices by squared RGB distance, memoizing results.
type quantizer struct {
	colors [][3]int32
	cache  map[uint32]uint8
}

func newQuantizer(colors []common.RGB) *quantizer {
	q := &quantizer{
		colors: make([][3]int32, len(colors)),
		cache:  make(map[uint32]uint8),
	}
	for i, c := range colors {
		q.colors[i] = [3]int32{to8(c.R), to8(c.G), to8(c.B)}
	}
	return q
}

func (q *quantizer) index(r, g, b, a uint32) uint8 {
	if a == 0 {
		return palette.BackgroundIndex
	}
	r8, g8, b8 := int32(r>>8), int32(g>>8), int32(b>>8)
	key := uint32(r8)<<16 | uint32(g8)<<8 | uint32(b8)
	if idx, ok := q.cache[key]; ok {
		return idx
	}

	best, bestDist := 0, int32(-1)
	for i, c := range q.colors {
		dr, dg, db := r8-c[0], g8-c[1], b8-c[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	q.cache[key] = uint8(best)
	return uint8(best)
}

func to8(v float32) int32 {
	return int32(v*255 + 0.5)
}

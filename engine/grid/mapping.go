package grid

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/chewxy/math32"
)

// Mapper converts between world-space offsets and grid (row, col) indices.
// The designated center cell sits at the world origin; rows advance along +x and columns along +y.
type Mapper struct {
	g         Grid
	pixelSize float32
	centerRow int
	centerCol int
}

// NewMapper creates a Mapper for the given grid and layout constants.
//
// Parameters:
//   - g: the grid to map onto
//   - pixelSize: the nominal world-space side length of one pixel (must be > 0)
//   - centerRow, centerCol: the cell rendered at the world origin (must lie inside g)
//
// Returns:
//   - *Mapper: the mapper
//   - error: common.ErrInvalidConfiguration if the constants are unusable
func NewMapper(g Grid, pixelSize float32, centerRow, centerCol int) (*Mapper, error) {
	if g == nil {
		return nil, fmt.Errorf("mapper: nil grid: %w", common.ErrInvalidConfiguration)
	}
	if !(pixelSize > 0) {
		return nil, fmt.Errorf("mapper: pixel size %v: %w", pixelSize, common.ErrInvalidConfiguration)
	}
	if !g.Contains(centerRow, centerCol) {
		return nil, fmt.Errorf("mapper: center (%d, %d) outside %dx%d grid: %w",
			centerRow, centerCol, g.Rows(), g.Cols(), common.ErrInvalidConfiguration)
	}
	return &Mapper{g: g, pixelSize: pixelSize, centerRow: centerRow, centerCol: centerCol}, nil
}

// PixelFromWorld returns the pixel under a world-space point.
//
// Parameters:
//   - x, y: world-space coordinates on the z = 0 plane
//
// Returns:
//   - common.Pixel: the row, column and palette index under the point
//   - error: common.ErrOutOfBounds if the point maps outside the grid
func (m *Mapper) PixelFromWorld(x, y float32) (common.Pixel, error) {
	row := m.centerRow + int(math32.Round(x/m.pixelSize))
	col := m.centerCol + int(math32.Round(y/m.pixelSize))
	idx, err := m.g.Lookup(row, col)
	if err != nil {
		return common.Pixel{}, err
	}
	return common.Pixel{Row: row, Col: col, ColorIndex: idx}, nil
}

// WorldFromPixel returns the world-space anchor of a cell. No bounds check is applied.
//
// Parameters:
//   - row, col: the grid cell
//
// Returns:
//   - x, y: the world-space anchor coordinates
func (m *Mapper) WorldFromPixel(row, col int) (x, y float32) {
	return Anchor(row, col, m.pixelSize, m.centerRow, m.centerCol)
}

// Anchor computes a cell's world-space anchor for the given layout constants the way the batch builder
// lays out quads: row * pixelSize - centerRow * pixelSize.
//
// Parameters:
//   - row, col: the grid cell
//   - pixelSize: the nominal pixel size
//   - centerRow, centerCol: the cell placed at the origin
//
// Returns:
//   - x, y: the world-space anchor coordinates
func Anchor(row, col int, pixelSize float32, centerRow, centerCol int) (x, y float32) {
	offsetRow := float32(centerRow) * pixelSize
	offsetCol := float32(centerCol) * pixelSize
	return float32(row)*pixelSize - offsetRow, float32(col)*pixelSize - offsetCol
}

package grid

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T, rows, cols int) Grid {
	t.Helper()
	cells := make([][]uint8, rows)
	for r := range cells {
		cells[r] = make([]uint8, cols)
		for c := range cells[r] {
			cells[r][c] = uint8((r + c) % 16)
		}
	}
	g, err := NewGrid(cells)
	require.NoError(t, err)
	return g
}

func TestRoundTrip(t *testing.T) {
	g := testGrid(t, 17, 23)
	for _, size := range []float32{10, 0.1, 3.7} {
		m, err := NewMapper(g, size, 8, 11)
		require.NoError(t, err)
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				x, y := m.WorldFromPixel(r, c)
				p, err := m.PixelFromWorld(x, y)
				require.NoError(t, err)
				assert.Equal(t, common.Pixel{Row: r, Col: c, ColorIndex: g.At(r, c)}, p)
			}
		}
	}
}

func TestPixelFromWorldRounds(t *testing.T) {
	g := testGrid(t, 5, 5)
	m, err := NewMapper(g, 10, 2, 2)
	require.NoError(t, err)

	p, err := m.PixelFromWorld(4.9, -4.9)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Row)
	assert.Equal(t, 2, p.Col)

	p, err = m.PixelFromWorld(5.1, -15.1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Row)
	assert.Equal(t, 0, p.Col)
}

func TestPixelFromWorldOutOfBounds(t *testing.T) {
	g := testGrid(t, 4, 4)
	m, err := NewMapper(g, 10, 0, 0)
	require.NoError(t, err)

	_, err = m.PixelFromWorld(-10, 0)
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
	_, err = m.PixelFromWorld(0, 40)
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
	_, err = m.PixelFromWorld(1e6, 1e6)
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
}

func TestWorldFromPixelMatchesBuilderAnchor(t *testing.T) {
	g := testGrid(t, 6, 6)
	m, err := NewMapper(g, 0.3, 3, 2)
	require.NoError(t, err)

	x, y := m.WorldFromPixel(3, 2)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			wx, wy := m.WorldFromPixel(r, c)
			ax, ay := Anchor(r, c, 0.3, 3, 2)
			assert.Equal(t, ax, wx)
			assert.Equal(t, ay, wy)
		}
	}
}

func TestNewMapperValidation(t *testing.T) {
	g := testGrid(t, 2, 2)
	_, err := NewMapper(g, 0, 0, 0)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
	_, err = NewMapper(g, 1, 2, 0)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
	_, err = NewMapper(nil, 1, 0, 0)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

package grid

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid([][]uint8{{0, 1, 2}, {3, 4, 5}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, 4, g.At(1, 1))
	assert.Equal(t, 5, g.MaxIndex())

	idx, err := g.Lookup(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestNewGridRejectsRaggedAndEmpty(t *testing.T) {
	_, err := NewGrid(nil)
	assert.ErrorIs(t, err, common.ErrRaggedGrid)

	_, err = NewGrid([][]uint8{{}})
	assert.ErrorIs(t, err, common.ErrRaggedGrid)

	_, err = NewGrid([][]uint8{{0, 1}, {1}})
	assert.ErrorIs(t, err, common.ErrRaggedGrid)
}

func TestNewGridCopiesInput(t *testing.T) {
	rows := [][]uint8{{1, 1}}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	rows[0][0] = 9
	assert.Equal(t, 1, g.At(0, 0))
}

func TestLookupOutOfBounds(t *testing.T) {
	g, err := NewGrid([][]uint8{{0}})
	require.NoError(t, err)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		_, err := g.Lookup(rc[0], rc[1])
		assert.ErrorIs(t, err, common.ErrOutOfBounds, "cell %v", rc)
	}
}

package pixel_group

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSet(t *testing.T, cells [][]uint8, g, paletteLen int, size float32, cr, cc int) *Set {
	t.Helper()
	gr, err := grid.NewGrid(cells)
	require.NoError(t, err)
	a, err := NewAssigner(AssignerConfig{SubGroups: g, HashShift: DefaultHashShift, CenterRow: cr, CenterCol: cc})
	require.NoError(t, err)
	s, err := Build(gr, a, BuildConfig{PaletteLen: paletteLen, PixelSize: size, CenterRow: cr, CenterCol: cc})
	require.NoError(t, err)
	return s
}

func TestBuild_TwoByTwo(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{0, 1}, {1, 0}}, 2, 2, 10, 0, 0)

	assert.Equal(t, 2, s.BucketCount())
	assert.Len(t, s.Bucket(0), 6)
	assert.Len(t, s.Bucket(1), 2)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, 24, s.VertexCount())

	for i, b := range s.Batches() {
		assert.Equal(t, i, b.Index())
	}
	assert.Same(t, s.Batch(6), s.Lookup(1, 0))
	assert.Nil(t, s.Batch(8))
	assert.Nil(t, s.Lookup(2, 0))
}

func TestBuild_LockstepBuffers(t *testing.T) {
	cells := make([][]uint8, 17)
	for r := range cells {
		cells[r] = make([]uint8, 23)
		for c := range cells[r] {
			cells[r][c] = uint8((r*3 + c) % 4)
		}
	}
	s := buildTestSet(t, cells, 8, 4, 2.5, 8, 11)

	assert.Equal(t, 17*23*VerticesPerQuad, s.VertexCount())
	for _, b := range s.Batches() {
		assert.Len(t, b.Positions(), 3*len(b.Corners()))
		assert.Len(t, b.Centers(), 3*len(b.Corners()))
		assert.Zero(t, len(b.Corners())%3)
		for _, c := range b.Corners() {
			assert.Less(t, c, uint8(4))
		}
	}
}

func TestBuild_CenterPixelLandsInFirstBatch(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{2, 2, 2}, {2, 3, 2}, {2, 2, 2}}, 4, 4, 10, 1, 1)

	first := s.Batch(0)
	require.False(t, first.Empty())
	assert.Equal(t, 0, first.ColorIndex())
	assert.Equal(t, 0, first.SubGroup())

	found := false
	for v := 0; v < first.VertexCount(); v++ {
		if first.Centers()[v*3] == 0 && first.Centers()[v*3+1] == 0 {
			found = true
		}
	}
	assert.True(t, found)
	for _, b := range s.Bucket(3) {
		assert.True(t, b.Empty())
	}
}

func TestBuild_QuadGeometry(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{1}}, 2, 2, 10, 0, 0)
	b := s.Batch(0)
	require.Equal(t, VerticesPerQuad, b.VertexCount())

	assert.Equal(t, []uint8{0, 2, 1, 2, 3, 1}, b.Corners())
	assert.Equal(t, []float32{
		-5, 5, 0,
		-5, -5, 0,
		5, 5, 0,
		-5, -5, 0,
		5, -5, 0,
		5, 5, 0,
	}, b.Positions())
	assert.Equal(t, float32(10), b.CommittedSize())
}

func TestBuild_AnchorsRelativeToCenter(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{1, 1}, {1, 1}}, 2, 2, 4, 1, 0)
	// color 1 with G=2 always hashes to sub-group 0; the center (1,0) moved to batch 0.
	b := s.Lookup(1, 0)
	require.Equal(t, 3, b.QuadCount())

	var anchors [][2]float32
	for v := 0; v < b.VertexCount(); v += VerticesPerQuad {
		anchors = append(anchors, [2]float32{b.Centers()[v*3], b.Centers()[v*3+1]})
	}
	assert.ElementsMatch(t, [][2]float32{{-4, 0}, {-4, 4}, {0, 4}}, anchors)
}

func TestBuild_Errors(t *testing.T) {
	gr, err := grid.NewGrid([][]uint8{{0, 5}})
	require.NoError(t, err)
	a, err := NewAssigner(AssignerConfig{SubGroups: 2})
	require.NoError(t, err)

	_, err = Build(gr, a, BuildConfig{PaletteLen: 2, PixelSize: 1})
	assert.ErrorIs(t, err, common.ErrInvalidPaletteIndex)

	_, err = Build(gr, a, BuildConfig{PaletteLen: 8, PixelSize: 0})
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)

	_, err = Build(gr, a, BuildConfig{PaletteLen: 0, PixelSize: 1})
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestBatch_Rewrite(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{1, 1, 1}}, 2, 2, 10, 0, 0)
	b := s.Lookup(1, 0)
	require.False(t, b.Empty())

	assert.False(t, b.Rewrite(10))
	assert.True(t, b.Rewrite(3))
	assert.Equal(t, float32(3), b.CommittedSize())

	for v, corner := range b.Corners() {
		sign := CornerSigns[corner]
		assert.InDelta(t, b.Centers()[v*3]+sign[0]*1.5, b.Positions()[v*3], 1e-6)
		assert.InDelta(t, b.Centers()[v*3+1]+sign[1]*1.5, b.Positions()[v*3+1], 1e-6)
		assert.Equal(t, b.Centers()[v*3+2], b.Positions()[v*3+2])
	}
}

func TestBatch_MeanDepth(t *testing.T) {
	s := buildTestSet(t, [][]uint8{{1, 1}}, 2, 2, 1, 0, 0)
	b := s.Lookup(1, 0)
	assert.Equal(t, float32(0), b.MeanDepth())
	b.SetDepthOffset(-7)
	assert.Equal(t, float32(-7), b.MeanDepth())
}

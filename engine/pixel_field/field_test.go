package pixel_field

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/Carmen-Shannon/oxy-pixels/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCamera struct {
	fov, zoom float32
}

func (c *fakeCamera) FovDegrees() float32 { return c.fov }
func (c *fakeCamera) Zoom() float32       { return c.zoom }

type fakeScene struct {
	added []mesh.Mesh
	err   error
}

func (s *fakeScene) Add(m mesh.Mesh) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.added = append(s.added, m)
	return uint64(len(s.added)), nil
}

func newGrid(t *testing.T, rows [][]uint8) grid.Grid {
	t.Helper()
	g, err := grid.NewGrid(rows)
	require.NoError(t, err)
	return g
}

func newPalette(t *testing.T, hex ...string) palette.Palette {
	t.Helper()
	p, err := palette.NewPalette(hex)
	require.NoError(t, err)
	return p
}

func stripes(rows, cols, colors int) [][]uint8 {
	out := make([][]uint8, rows)
	for r := range out {
		out[r] = make([]uint8, cols)
		for c := range out[r] {
			out[r][c] = uint8((r + c) % colors)
		}
	}
	return out
}

func newTestField(t *testing.T, cam *fakeCamera, options ...FieldBuilderOption) Field {
	t.Helper()
	g := newGrid(t, stripes(12, 9, 3))
	p := newPalette(t, "#000000", "#ff0000", "#00ff00")
	f, err := NewField(g, p, cam, append([]FieldBuilderOption{WithWorkers(2)}, options...)...)
	require.NoError(t, err)
	return f
}

func TestTwoByTwoScenario(t *testing.T) {
	g := newGrid(t, [][]uint8{{0, 1}, {1, 0}})
	p := newPalette(t, "#000000", "#ffffff")
	f, err := NewField(g, p, &fakeCamera{fov: 50, zoom: 30},
		WithSubGroups(2), WithPixelSize(10), WithCenter(0, 0))
	require.NoError(t, err)

	set := f.Batches()
	assert.Equal(t, 2, set.BucketCount())
	assert.Len(t, set.Bucket(0), 6)
	assert.Len(t, set.Bucket(1), 2)
	assert.Equal(t, 24, set.VertexCount())

	s := &fakeScene{}
	require.NoError(t, f.AddPixelsToScene(s))
	total := 0
	for _, m := range s.added {
		total += m.VertexCount()
	}
	assert.Equal(t, 24, total)

	stats := f.Stats()
	assert.Equal(t, 8, stats.Batches)
	assert.Equal(t, 24, stats.Vertices)
	assert.Equal(t, 4, stats.Quads)
	assert.Equal(t, len(s.added), stats.NonEmpty)
}

func TestMeshesIndexedByFlatBatch(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30})
	meshes := f.Meshes()
	require.Len(t, meshes, f.Batches().Len())
	for flat, b := range f.Batches().Batches() {
		if b.Empty() {
			assert.Nil(t, meshes[flat])
			continue
		}
		require.NotNil(t, meshes[flat])
		assert.Equal(t, b.VertexCount(), meshes[flat].VertexCount())
		assert.Equal(t, float32(DefaultPixelSize), meshes[flat].Material().Size())
		assert.Equal(t, float32(1), meshes[flat].Material().DepthCompensation())
		assert.Equal(t, DefaultPipelineKey, meshes[flat].Material().PipelineKey())
	}
}

func TestComputeClampedSizeScenario(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30},
		WithViewportHeight(900),
		WithMaxFootprintPx(128),
		WithDistanceOffset(16),
		WithPixelSize(10),
	)

	got, err := f.ComputeClampedSize(0)
	require.NoError(t, err)

	worldHeight := 2 * math.Tan(50*math.Pi/180/2) * (30 - 0.0/16)
	want := math.Min(10, 128.0/900.0*worldHeight)
	assert.InDelta(t, want, got, 1e-6)
	assert.InDelta(t, 3.97916, got, 1e-5)
}

func TestComputeClampedSizeMonotonic(t *testing.T) {
	cam := &fakeCamera{fov: 50, zoom: 120}
	f := newTestField(t, cam, WithMaxFootprintPx(128))

	prev := math.Inf(1)
	for _, h := range []int{100, 400, 900, 1600, 4000, 10000} {
		f.SetViewportHeight(h)
		size, err := f.ComputeClampedSize(0)
		require.NoError(t, err)
		assert.LessOrEqual(t, size, prev)
		assert.LessOrEqual(t, size, float64(f.PixelSize()))
		assert.GreaterOrEqual(t, size, 0.0)
		prev = size
	}
}

func TestComputeClampedSizeBehindCamera(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30}, WithDistanceOffset(16))
	require.NoError(t, f.SetBatchDepth(0, 1000))

	size, err := f.ComputeClampedSize(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, size)

	_, err = f.ComputeClampedSize(f.Batches().Len())
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
}

func TestSetViewportHeightIgnoresNonPositive(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30}, WithViewportHeight(720))
	f.SetViewportHeight(0)
	f.SetViewportHeight(-5)
	assert.Equal(t, 720, f.ViewportHeight())
}

func TestUpdatePixelSizeMarksOnlyChanged(t *testing.T) {
	cam := &fakeCamera{fov: 50, zoom: 1000}
	f := newTestField(t, cam)
	for _, m := range f.Meshes() {
		if m != nil {
			m.Material().ClearDirty()
		}
	}

	// Far away the cap is above the nominal size, so nothing changes.
	assert.Equal(t, 0, f.UpdatePixelSize())
	for _, m := range f.Meshes() {
		if m != nil {
			assert.False(t, m.Material().Dirty())
		}
	}

	cam.zoom = 30
	nonEmpty := f.Stats().NonEmpty
	assert.Equal(t, nonEmpty, f.UpdatePixelSize())
	assert.Equal(t, nonEmpty, f.Stats().LastRefresh)
	for flat, m := range f.Meshes() {
		if m == nil {
			continue
		}
		assert.True(t, m.Material().Dirty())
		want, err := f.ComputeClampedSize(flat)
		require.NoError(t, err)
		assert.Equal(t, float32(want), m.Material().Size())
		m.Material().ClearDirty()
	}

	assert.Equal(t, 0, f.UpdatePixelSize())
}

func TestUpdateBufferGeometry(t *testing.T) {
	cam := &fakeCamera{fov: 50, zoom: 30}
	f := newTestField(t, cam)

	f.UpdatePixelSize()
	nonEmpty := f.Stats().NonEmpty
	assert.Equal(t, nonEmpty, f.UpdateBufferGeometry())

	for flat, m := range f.Meshes() {
		if m == nil {
			continue
		}
		b := f.Batches().Batch(flat)
		size := m.Material().Size()
		half := size / 2
		assert.True(t, m.PositionsDirty())
		assert.Equal(t, size, b.CommittedSize())
		assert.Equal(t, size, m.Material().CommittedSize())

		pos, ctr, corners := b.Positions(), b.Centers(), b.Corners()
		for v, corner := range corners {
			sign := pixel_group.CornerSigns[corner]
			i := v * pixel_group.ComponentsPerVertex
			assert.InDelta(t, ctr[i]+sign[0]*half, pos[i], 1e-5)
			assert.InDelta(t, ctr[i+1]+sign[1]*half, pos[i+1], 1e-5)
			assert.Equal(t, ctr[i+2], pos[i+2])
		}

		// The mesh streams alias the batch buffers.
		assert.Equal(t, common.SliceToBytes(pos), m.SlotData(mesh.SlotPosition))
	}

	assert.Equal(t, 0, f.UpdateBufferGeometry())
	assert.Equal(t, 1, f.Stats().TotalCommits)
}

func TestUpdateBufferGeometryUsesCurrentCamera(t *testing.T) {
	cam := &fakeCamera{fov: 50, zoom: 30}
	f := newTestField(t, cam)
	f.UpdatePixelSize()
	require.Positive(t, f.UpdateBufferGeometry())

	// Zoom in and commit without refreshing the uniforms first.
	cam.zoom = 5
	assert.Positive(t, f.UpdateBufferGeometry())

	for flat, m := range f.Meshes() {
		if m == nil {
			continue
		}
		want, err := f.ComputeClampedSize(flat)
		require.NoError(t, err)
		assert.Equal(t, float32(want), f.Batches().Batch(flat).CommittedSize())
		assert.Equal(t, float32(want), m.Material().CommittedSize())
		assert.Equal(t, float32(want), m.Material().Size())
	}

	// The refresh that follows has nothing left to change.
	assert.Equal(t, 0, f.UpdatePixelSize())
	assert.Equal(t, 0, f.UpdateBufferGeometry())
}

func TestPicking(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30}, WithCenter(4, 3))

	for _, rc := range [][2]int{{0, 0}, {4, 3}, {11, 8}, {7, 2}} {
		x, y := f.GetCoordinatesFromPixel(rc[0], rc[1])
		px, err := f.GetPixelFromCoordinates(x, y)
		require.NoError(t, err)
		assert.Equal(t, rc[0], px.Row)
		assert.Equal(t, rc[1], px.Col)
		assert.Equal(t, (rc[0]+rc[1])%3, px.ColorIndex)
	}

	x, y := f.GetCoordinatesFromPixel(4, 3)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	_, err := f.GetPixelFromCoordinates(-1000, 0)
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
	_, err = f.GetPixelFromCoordinates(0, 1000)
	assert.ErrorIs(t, err, common.ErrOutOfBounds)
}

func TestSetBatchDepthAndCompensation(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30})
	m := f.Meshes()[0]
	require.NotNil(t, m, "the center pixel always lands in batch 0")
	m.Material().ClearDirty()

	require.NoError(t, f.SetBatchDepth(0, -4))
	assert.Equal(t, float32(-4), m.Material().DepthOffset())
	assert.Equal(t, float32(-4), f.Batches().Batch(0).MeanDepth())
	assert.True(t, m.Material().Dirty())

	require.NoError(t, f.SetDepthCompensation(0, 0.5))
	assert.Equal(t, float32(0.5), m.Material().DepthCompensation())

	assert.ErrorIs(t, f.SetBatchDepth(-1, 0), common.ErrOutOfBounds)
	assert.ErrorIs(t, f.SetDepthCompensation(f.Batches().Len(), 1), common.ErrOutOfBounds)
}

func TestAddPixelsToSceneError(t *testing.T) {
	f := newTestField(t, &fakeCamera{fov: 50, zoom: 30})
	boom := errors.New("boom")
	err := f.AddPixelsToScene(&fakeScene{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestNewFieldValidation(t *testing.T) {
	g := newGrid(t, stripes(4, 4, 2))
	p := newPalette(t, "#000", "#fff")
	cam := &fakeCamera{fov: 50, zoom: 30}

	tests := []struct {
		name string
		opts []FieldBuilderOption
		want error
	}{
		{"zero pixel size", []FieldBuilderOption{WithPixelSize(0)}, common.ErrInvalidConfiguration},
		{"zero footprint", []FieldBuilderOption{WithMaxFootprintPx(0)}, common.ErrInvalidConfiguration},
		{"zero distance offset", []FieldBuilderOption{WithDistanceOffset(0)}, common.ErrInvalidConfiguration},
		{"zero viewport", []FieldBuilderOption{WithViewportHeight(0)}, common.ErrInvalidConfiguration},
		{"degenerate groups", []FieldBuilderOption{WithSubGroups(1)}, common.ErrDegenerateGroupConfiguration},
		{"center outside", []FieldBuilderOption{WithCenter(4, 0)}, common.ErrInvalidConfiguration},
		{"empty pipeline key", []FieldBuilderOption{WithPipelineKey("")}, common.ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(g, p, cam, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewField(g, p, nil)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)

	_, err = NewField(newGrid(t, [][]uint8{{0, 2}}), p, cam)
	assert.ErrorIs(t, err, common.ErrInvalidPaletteIndex)
}

func TestNewFieldReportsLargestOutOfRangeIndex(t *testing.T) {
	p := newPalette(t, "#000000", "#ffffff", "#ff0000")
	g := newGrid(t, [][]uint8{{0, 1, 9}, {4, 2, 1}})

	_, err := NewField(g, p, &fakeCamera{fov: 50, zoom: 30})
	require.ErrorIs(t, err, common.ErrInvalidPaletteIndex)
	assert.Contains(t, err.Error(), "index 9")
}

func TestClampedSizeNeverExceedsNominal(t *testing.T) {
	for _, zoom := range []float64{1, 10, 100, 1e4} {
		size := ClampedSize(60, zoom, 0, 16, 64, 1080, 2.5)
		assert.LessOrEqual(t, size, 2.5)
		assert.GreaterOrEqual(t, size, 0.0)
	}
	assert.Equal(t, 0.0, ClampedSize(60, 1, 32, 16, 64, 1080, 2.5))
}

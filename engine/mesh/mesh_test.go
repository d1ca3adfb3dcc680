package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMesh_SlotsAliasPositions(t *testing.T) {
	positions := []float32{1, 2, 3, 4, 5, 6}
	centers := []float32{0, 0, 0, 0, 0, 0}
	m := NewMesh("pixels_0", positions, centers, []uint8{0, 3})

	assert.Equal(t, 2, m.VertexCount())
	assert.Equal(t, 2, m.MeshProvider().VertexCount())
	assert.Len(t, m.SlotData(SlotPosition), 24)
	assert.Len(t, m.SlotData(SlotCenter), 24)
	assert.Len(t, m.SlotData(SlotCorner), 8)
	assert.Nil(t, m.SlotData(SlotCount))

	positions[4] = 42
	data := m.SlotData(SlotPosition)
	assert.Equal(t, float32(42), math.Float32frombits(binary.LittleEndian.Uint32(data[16:])))

	corners := m.SlotData(SlotCorner)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(corners[4:]))
}

func TestNewMesh_DefaultMaterial(t *testing.T) {
	m := NewMesh("pixels_1", nil, nil, nil)
	require.NotNil(t, m.Material())
	assert.Equal(t, "pixels_1", m.Material().Name())
	assert.NotNil(t, m.MeshProvider())

	mat := material.NewPixelMaterial(material.WithSize(4))
	m = NewMesh("pixels_2", nil, nil, nil, WithMaterial(mat))
	assert.Same(t, mat, m.Material())
}

func TestMesh_PositionsDirty(t *testing.T) {
	m := NewMesh("pixels_3", nil, nil, nil)
	assert.False(t, m.PositionsDirty())
	m.MarkPositionsDirty()
	assert.True(t, m.PositionsDirty())
	m.ClearPositionsDirty()
	assert.False(t, m.PositionsDirty())
}

func TestVertexLayouts(t *testing.T) {
	layouts := VertexLayouts()
	require.Len(t, layouts, SlotCount)
	for slot, l := range layouts {
		assert.Zero(t, l.ArrayStride%4)
		require.Len(t, l.Attributes, 1)
		assert.Equal(t, uint32(slot), l.Attributes[0].ShaderLocation)
	}
}

package mesh

import (
	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/material"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	label string

	// positions and centers alias the owning batch's slices; corners is the widened copy of the batch's tags.
	positions []float32
	centers   []float32
	corners   []uint32

	positionsDirty bool

	material     material.PixelMaterial
	meshProvider bind_group_provider.BindGroupProvider
}

// Mesh is the drawable form of one pixel group: three vertex attribute streams drawn as a
// non-indexed triangle list, plus the per-batch PixelMaterial.
//
// The position stream is shared with the batch that produced it, so a geometry commit that rewrites
// the batch's positions only needs to mark the mesh dirty for the scene to re-upload slot SlotPosition.
type Mesh interface {
	// Label returns the debug label used for the mesh's GPU resources.
	//
	// Returns:
	//   - string: the label
	Label() string

	// VertexCount returns the number of vertices to draw.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// SlotData returns the raw bytes of one vertex attribute stream, aliasing the CPU-side data.
	//
	// Parameters:
	//   - slot: one of SlotPosition, SlotCenter or SlotCorner
	//
	// Returns:
	//   - []byte: the bytes to upload, or nil for an unknown slot
	SlotData(slot int) []byte

	// Slots returns the raw bytes of every vertex stream in slot order.
	//
	// Returns:
	//   - [][]byte: the streams
	Slots() [][]byte

	// Material returns the per-batch uniform state.
	//
	// Returns:
	//   - material.PixelMaterial: the material
	Material() material.PixelMaterial

	// MeshProvider returns the BindGroupProvider holding the mesh's vertex buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// PositionsDirty reports whether the position stream changed since the last upload.
	//
	// Returns:
	//   - bool: true if a re-upload of SlotPosition is pending
	PositionsDirty() bool

	// MarkPositionsDirty flags the position stream for re-upload.
	MarkPositionsDirty()

	// ClearPositionsDirty marks the position stream as uploaded.
	ClearPositionsDirty()

	// Release releases the GPU resources of the mesh and its material.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh over the given attribute streams.
// The position and center slices are aliased, not copied; the corner tags are widened to uint32.
//
// Parameters:
//   - label: the debug label for the mesh's GPU resources
//   - positions: the raw quad corner positions, 3 floats per vertex
//   - centers: the quad anchors, 3 floats per vertex
//   - corners: the corner tags, 1 per vertex
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(label string, positions, centers []float32, corners []uint8, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		label:        label,
		positions:    positions,
		centers:      centers,
		corners:      common.WidenUint8(corners),
		meshProvider: bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithVertexCount(len(corners))),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.material == nil {
		m.material = material.NewPixelMaterial(material.WithName(label))
	}
	return m
}

func (m *mesh) Label() string {
	return m.label
}

func (m *mesh) VertexCount() int {
	return len(m.corners)
}

func (m *mesh) SlotData(slot int) []byte {
	switch slot {
	case SlotPosition:
		return common.SliceToBytes(m.positions)
	case SlotCenter:
		return common.SliceToBytes(m.centers)
	case SlotCorner:
		return common.SliceToBytes(m.corners)
	default:
		return nil
	}
}

func (m *mesh) Slots() [][]byte {
	slots := make([][]byte, SlotCount)
	for i := range slots {
		slots[i] = m.SlotData(i)
	}
	return slots
}

func (m *mesh) Material() material.PixelMaterial {
	return m.material
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *mesh) PositionsDirty() bool {
	return m.positionsDirty
}

func (m *mesh) MarkPositionsDirty() {
	m.positionsDirty = true
}

func (m *mesh) ClearPositionsDirty() {
	m.positionsDirty = false
}

func (m *mesh) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
	if p := m.material.BindGroupProvider(); p != nil {
		p.Release()
	}
}

package mesh

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUPixelVertexSource is the canonical WGSL definition of the VertexInput struct for pixel meshes.
// Each attribute lives in its own vertex buffer; see VertexLayouts.
//
//go:embed assets/pixel_vertex.wgsl
var GPUPixelVertexSource string

// Vertex buffer slots of a pixel mesh.
const (
	// SlotPosition holds the raw quad corner positions (vec3<f32>), rewritten when geometry is committed.
	SlotPosition = iota
	// SlotCenter holds the quad anchor of every vertex (vec3<f32>), written once.
	SlotCenter
	// SlotCorner holds the corner tag 0..3 of every vertex (u32), written once.
	SlotCorner

	// SlotCount is the number of vertex buffers a pixel mesh binds.
	SlotCount
)

// Byte strides of each slot. The corner tag is widened to 4 bytes because WebGPU requires
// 4-byte aligned vertex strides.
const (
	PositionStride = 3 * 4
	CenterStride   = 3 * 4
	CornerStride   = 4
)

// VertexLayouts returns the vertex buffer layouts matching GPUPixelVertexSource, one per slot.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the layouts in slot order
func VertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: PositionStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: SlotPosition},
			},
		},
		{
			ArrayStride: CenterStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: SlotCenter},
			},
		},
		{
			ArrayStride: CornerStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatUint32, Offset: 0, ShaderLocation: SlotCorner},
			},
		},
	}
}

package material

import (
	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
)

// pixelMaterial is the implementation of the PixelMaterial interface.
type pixelMaterial struct {
	name              string
	color             common.RGB
	size              float32
	committedSize     float32
	depthCompensation float32
	depthOffset       float32
	dirty             bool
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// PixelMaterial is the per-batch uniform state of a pixel group: its fill color, the live pixel size,
// the size its raw geometry was committed at, a depth compensation scale and a z offset.
//
// Every setter compares the incoming value with the stored one and only marks the material dirty on an
// actual change, so the scene uploads a batch's uniform at most once per frame and only when needed.
// A PixelMaterial is owned by the render goroutine and is not safe for concurrent mutation.
type PixelMaterial interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the fill color.
	//
	// Returns:
	//   - common.RGB: the color
	Color() common.RGB

	// Size retrieves the live pixel size in world units.
	//
	// Returns:
	//   - float32: the size
	Size() float32

	// SetSize updates the live pixel size.
	//
	// Parameters:
	//   - size: the new size
	//
	// Returns:
	//   - bool: true if the stored value changed and the material is now dirty
	SetSize(size float32) bool

	// CommittedSize retrieves the size the raw vertex positions were last written with.
	//
	// Returns:
	//   - float32: the committed size
	CommittedSize() float32

	// SetCommittedSize records the size the raw vertex positions were rewritten with.
	//
	// Parameters:
	//   - size: the committed size
	//
	// Returns:
	//   - bool: true if the stored value changed and the material is now dirty
	SetCommittedSize(size float32) bool

	// DepthCompensation retrieves the scale applied to every quad about its center.
	//
	// Returns:
	//   - float32: the depth compensation factor
	DepthCompensation() float32

	// SetDepthCompensation updates the depth compensation factor.
	//
	// Parameters:
	//   - v: the new factor
	//
	// Returns:
	//   - bool: true if the stored value changed and the material is now dirty
	SetDepthCompensation(v float32) bool

	// DepthOffset retrieves the z translation applied to the whole batch.
	//
	// Returns:
	//   - float32: the depth offset
	DepthOffset() float32

	// SetDepthOffset updates the z translation applied to the whole batch.
	//
	// Parameters:
	//   - z: the new offset
	//
	// Returns:
	//   - bool: true if the stored value changed and the material is now dirty
	SetDepthOffset(z float32) bool

	// Dirty reports whether the material has changed since the last upload.
	//
	// Returns:
	//   - bool: true if an upload is pending
	Dirty() bool

	// MarkDirty forces an upload on the next flush.
	MarkDirty()

	// ClearDirty marks the material as uploaded.
	ClearDirty()

	// Params packs the material into its GPU uniform layout.
	//
	// Returns:
	//   - GPUPixelParams: the uniform block
	Params() GPUPixelParams

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// BindGroupProvider retrieves the bind group provider holding the material's uniform buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ PixelMaterial = &pixelMaterial{}

// NewPixelMaterial creates a new PixelMaterial configured with the provided options.
// A new material starts dirty so its first flush uploads the initial uniform.
//
// Parameters:
//   - options: variadic list of PixelMaterialBuilderOption functions to configure the material
//
// Returns:
//   - PixelMaterial: a new PixelMaterial instance
func NewPixelMaterial(options ...PixelMaterialBuilderOption) PixelMaterial {
	m := &pixelMaterial{
		color:             common.RGB{R: 1, G: 1, B: 1},
		size:              1,
		committedSize:     1,
		depthCompensation: 1,
		dirty:             true,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + m.name)
	}
	return m
}

func (m *pixelMaterial) Name() string {
	return m.name
}

func (m *pixelMaterial) Color() common.RGB {
	return m.color
}

func (m *pixelMaterial) Size() float32 {
	return m.size
}

func (m *pixelMaterial) SetSize(size float32) bool {
	return m.set(&m.size, size)
}

func (m *pixelMaterial) CommittedSize() float32 {
	return m.committedSize
}

func (m *pixelMaterial) SetCommittedSize(size float32) bool {
	return m.set(&m.committedSize, size)
}

func (m *pixelMaterial) DepthCompensation() float32 {
	return m.depthCompensation
}

func (m *pixelMaterial) SetDepthCompensation(v float32) bool {
	return m.set(&m.depthCompensation, v)
}

func (m *pixelMaterial) DepthOffset() float32 {
	return m.depthOffset
}

func (m *pixelMaterial) SetDepthOffset(z float32) bool {
	return m.set(&m.depthOffset, z)
}

func (m *pixelMaterial) Dirty() bool {
	return m.dirty
}

func (m *pixelMaterial) MarkDirty() {
	m.dirty = true
}

func (m *pixelMaterial) ClearDirty() {
	m.dirty = false
}

func (m *pixelMaterial) Params() GPUPixelParams {
	return GPUPixelParams{
		Color:             m.color.Array(),
		Size:              m.size,
		CommittedSize:     m.committedSize,
		DepthCompensation: m.depthCompensation,
		DepthOffset:       m.depthOffset,
	}
}

func (m *pixelMaterial) PipelineKey() string {
	return m.pipelineKey
}

func (m *pixelMaterial) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *pixelMaterial) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *pixelMaterial) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}

// set stores v in *field and marks the material dirty when the raw value differs.
func (m *pixelMaterial) set(field *float32, v float32) bool {
	if *field == v {
		return false
	}
	*field = v
	m.dirty = true
	return true
}

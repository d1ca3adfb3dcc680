package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// sharedLayout marks a layout borrowed from another provider; Release leaves it alone.
	sharedLayout bool
	// buffers holds the uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// The following fields are specific to mesh providers. A mesh keeps one vertex buffer per attribute slot
	// so a single attribute can be rewritten without touching the others.

	// vertexBuffers holds the GPU vertex buffers, keyed by vertex buffer slot.
	vertexBuffers map[int]*wgpu.Buffer
	// vertexCount is the number of vertices for non-indexed draw calls.
	vertexCount int
}

// BindGroupProvider defines the interface for components that require GPU bind group resources.
// Components (Camera, PixelMaterial, Mesh) hold a BindGroupProvider to describe their GPU binding
// requirements. The Renderer then uses this provider to initialize and update GPU resources.
//
// Usage pattern:
//  1. Component creates a BindGroupProvider with a unique label
//  2. Scene calls Renderer.InitBindGroup(provider, descriptor) or Renderer.InitMeshBuffers(provider, slots, count)
//  3. Scene stages BufferWrites and hands them to Renderer.WriteBuffers once per frame
//  4. Renderer reads BindGroup() and VertexBuffer(slot) during draw calls
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout for this provider.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding index.
	// Returns nil if GPU resources have not been initialized.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the vertex buffer bound to a slot, or nil if not initialized.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer(slot int) *wgpu.Buffer

	// VertexBufferCount returns the number of vertex buffer slots populated on this provider.
	//
	// Returns:
	//   - int: the slot count
	VertexBufferCount() int

	// VertexCount returns the number of vertices for draw calls.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// SetBindGroup sets the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// ShareBindGroupLayout borrows a layout owned by another provider with an identical descriptor,
	// so Renderer.InitBindGroup skips creating one. The borrowed layout is not released by Release.
	//
	// Parameters:
	//   - bgl: the owner's bind group layout
	ShareBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the uniform buffer for a binding after GPU initialization.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer stores a GPU vertex buffer for a slot after creation by InitMeshBuffers.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//   - buf: the created vertex buffer
	SetVertexBuffer(slot int, buf *wgpu.Buffer)

	// SetVertexCount sets the number of vertices for draw calls.
	//
	// Parameters:
	//   - count: the vertex count
	SetVertexCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label used for every GPU resource created for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:         label,
		buffers:       make(map[int]*wgpu.Buffer),
		vertexBuffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer(slot int) *wgpu.Buffer {
	return p.vertexBuffers[slot]
}

func (p *bindGroupProvider) VertexBufferCount() int {
	return len(p.vertexBuffers)
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
	p.sharedLayout = false
}

func (p *bindGroupProvider) ShareBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
	p.sharedLayout = true
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(slot int, buf *wgpu.Buffer) {
	if p.vertexBuffers == nil {
		p.vertexBuffers = make(map[int]*wgpu.Buffer)
	}
	p.vertexBuffers[slot] = buf
}

func (p *bindGroupProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
			delete(p.buffers, i)
		}
	}
	for i, buf := range p.vertexBuffers {
		if buf != nil {
			buf.Release()
			delete(p.vertexBuffers, i)
		}
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil && !p.sharedLayout {
		p.bindGroupLayout.Release()
	}
	p.bindGroupLayout = nil
}

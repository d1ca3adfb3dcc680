package bind_group_provider

// BufferTarget selects which buffer family of a provider a BufferWrite addresses.
type BufferTarget int

const (
	// BufferTargetUniform addresses the uniform buffer at Binding.
	BufferTargetUniform BufferTarget = iota

	// BufferTargetVertex addresses the vertex buffer in slot Binding.
	BufferTargetVertex
)

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// or vertex slot on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Target   BufferTarget
	Binding  int
	Offset   uint64
	Data     []byte
}

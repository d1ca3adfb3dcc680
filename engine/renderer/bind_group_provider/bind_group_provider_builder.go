package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithVertexCount sets the vertex count drawn for a mesh provider. Renderer.InitMeshBuffers
// overwrites it with the count it uploads.
//
// Parameters:
//   - count: the number of vertices
//
// Returns:
//   - BindGroupProviderOption: a function that sets the vertex count for this provider
func WithVertexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCount = count
	}
}

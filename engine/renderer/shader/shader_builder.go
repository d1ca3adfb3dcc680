package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the parsed entry point name.
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the layout of one bind group used by the shader.
//
// Parameters:
//   - group: the bind group index
//   - desc: the layout descriptor
//
// Returns:
//   - ShaderBuilderOption: a function that registers the layout
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayouts declares the vertex buffer layouts consumed by a vertex shader, in slot order.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

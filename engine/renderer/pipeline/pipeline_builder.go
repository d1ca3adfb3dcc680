package pipeline

import (
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option for configuring a Pipeline via NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment shaders. Both are required before registration.
//
// Parameters:
//   - vs: the vertex shader
//   - fs: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vs, fs shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vs
		p.fragmentShader = fs
	}
}

// WithDepthWrite toggles depth writes.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthWrite(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWrite = enabled
	}
}

// WithDepthCompare sets the depth test function. CompareFunctionAlways disables the test.
//
// Parameters:
//   - fn: the compare function
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthCompare(fn wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare = fn
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the topology
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithAlphaBlending enables standard source-over alpha blending.
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithAlphaBlending() PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	}
}

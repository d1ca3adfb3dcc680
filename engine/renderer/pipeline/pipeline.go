package pipeline

import (
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the pipeline is registered with a Renderer.
	renderPipeline *wgpu.RenderPipeline

	depthWrite   bool
	depthCompare wgpu.CompareFunction
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	blend        *wgpu.BlendState
}

// Pipeline describes a render pipeline: a vertex and fragment shader pair plus the fixed-function state
// the Renderer needs to create it. The created GPU object is attached by the Renderer on registration.
type Pipeline interface {
	// PipelineKey returns the key meshes use to select this pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Shader returns the shader for the given stage.
	//
	// Parameters:
	//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - shader.Shader: the stage's shader, or nil if unset
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline attaches the created GPU pipeline. Called by the Renderer.
	//
	// Parameters:
	//   - p: the GPU pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// DepthWriteEnabled reports whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writes are on
	DepthWriteEnabled() bool

	// DepthCompare returns the depth test function.
	//
	// Returns:
	//   - wgpu.CompareFunction: the compare function, CompareFunctionAlways when testing is off
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// BlendState returns the color blend state, or nil for opaque output.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline. The defaults suit flat opaque quads: no culling, triangle lists,
// depth writes on and a less-or-equal depth test so coplanar quads drawn later win ties.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: options overriding the defaults
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		depthWrite:   true,
		depthCompare: wgpu.CompareFunctionLessEqual,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWrite
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blend
}

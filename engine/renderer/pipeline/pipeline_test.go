package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadSource = `
@vertex
fn vs_main(@location(0) p: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(p, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("pixels")

	assert.Equal(t, "pixels", p.PipelineKey())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Nil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
}

func TestNewPipelineOptions(t *testing.T) {
	vs, err := shader.NewShader("quad_vs", shader.ShaderTypeVertex, quadSource)
	require.NoError(t, err)
	fs, err := shader.NewShader("quad_fs", shader.ShaderTypeFragment, quadSource)
	require.NoError(t, err)

	p := NewPipeline("quad",
		WithShaders(vs, fs),
		WithDepthWrite(false),
		WithDepthCompare(wgpu.CompareFunctionAlways),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithAlphaBlending(),
	)

	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionAlways, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
}

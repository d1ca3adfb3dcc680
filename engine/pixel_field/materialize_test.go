package pixel_field

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelShaderSourceAssembled(t *testing.T) {
	for _, decl := range []string{"struct CameraUniform", "struct PixelParams", "struct VertexInput", "fn vs_main", "fn fs_main"} {
		assert.True(t, strings.Contains(PixelShaderSource, decl), decl)
	}
}

func TestNewPixelPipeline(t *testing.T) {
	p, err := NewPixelPipeline("pixels")
	require.NoError(t, err)
	assert.Equal(t, "pixels", p.PipelineKey())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())

	vs := p.Shader(shader.ShaderTypeVertex)
	fs := p.Shader(shader.ShaderTypeFragment)
	require.NotNil(t, vs)
	require.NotNil(t, fs)
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.Len(t, vs.VertexLayouts(), mesh.SlotCount)

	// Identical layouts on both stages keep bind groups compatible with the merged pipeline layout.
	assert.Equal(t, vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	assert.Equal(t, uint64(80), vs.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(32), vs.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize)
}

package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
		1: {Label: "pixel", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Label: "pixel", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		2: {Label: "extra", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 3)
	assert.Equal(t, vertex[0], merged[0])
	assert.Equal(t, fragment[2], merged[2])

	pixel := merged[1]
	require.Len(t, pixel.Entries, 2)
	assert.Equal(t, uint32(0), pixel.Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, pixel.Entries[0].Visibility)
	assert.Equal(t, uint32(1), pixel.Entries[1].Binding)
}

func TestBackendSettingStrings(t *testing.T) {
	assert.Equal(t, "wgpu", BackendTypeWGPU.String())
	assert.Equal(t, "backend(7)", RendererBackendType(7).String())
	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "4x", MSAA4x.String())
	assert.Equal(t, "1x", MSAAOff.String())
}

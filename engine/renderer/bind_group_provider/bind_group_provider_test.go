package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("pixels_1_0", WithVertexCount(12))
	assert.Equal(t, "pixels_1_0", p.Label())
	assert.Equal(t, 12, p.VertexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())

	p.SetVertexCount(6)
	assert.Equal(t, 6, p.VertexCount())
}

func TestShareBindGroupLayout(t *testing.T) {
	layout := &wgpu.BindGroupLayout{}

	p := NewBindGroupProvider("material").(*bindGroupProvider)
	p.ShareBindGroupLayout(layout)
	assert.Same(t, layout, p.BindGroupLayout())
	assert.True(t, p.sharedLayout)

	// A borrowed layout is dropped without being released.
	p.Release()
	assert.Nil(t, p.BindGroupLayout())

	p.SetBindGroupLayout(layout)
	assert.False(t, p.sharedLayout)
}

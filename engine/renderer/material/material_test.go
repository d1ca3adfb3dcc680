package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/stretchr/testify/assert"
)

func TestNewPixelMaterial_Defaults(t *testing.T) {
	m := NewPixelMaterial()
	assert.Equal(t, float32(1), m.Size())
	assert.Equal(t, float32(1), m.DepthCompensation())
	assert.Equal(t, float32(0), m.DepthOffset())
	assert.True(t, m.Dirty())
}

func TestPixelMaterial_SettersOnlyDirtyOnChange(t *testing.T) {
	m := NewPixelMaterial(WithSize(10), WithColor(common.RGB{R: 0.5}))
	m.ClearDirty()

	assert.False(t, m.SetSize(10))
	assert.False(t, m.Dirty())

	assert.True(t, m.SetSize(3.979))
	assert.True(t, m.Dirty())
	assert.Equal(t, float32(10), m.CommittedSize())

	m.ClearDirty()
	assert.False(t, m.SetDepthCompensation(1))
	assert.True(t, m.SetDepthOffset(-4))
	assert.True(t, m.Dirty())
}

func TestGPUPixelParams_Marshal(t *testing.T) {
	p := GPUPixelParams{
		Color:             [3]float32{0.25, 0.5, 0.75},
		Size:              4,
		CommittedSize:     10,
		DepthCompensation: 1,
		DepthOffset:       -2,
	}
	assert.Equal(t, 32, p.ByteSize())

	buf := p.Marshal()
	assert.Len(t, buf, 32)
	read := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(0.25), read(0))
	assert.Equal(t, float32(0.75), read(8))
	assert.Equal(t, float32(4), read(12))
	assert.Equal(t, float32(10), read(16))
	assert.Equal(t, float32(1), read(20))
	assert.Equal(t, float32(-2), read(24))
	assert.Equal(t, float32(0), read(28))
}

func TestPixelMaterial_Params(t *testing.T) {
	m := NewPixelMaterial(WithColor(common.RGB{R: 1, G: 0, B: 0.5}), WithSize(6), WithDepthOffset(2))
	m.SetSize(5)
	p := m.Params()
	assert.Equal(t, [3]float32{1, 0, 0.5}, p.Color)
	assert.Equal(t, float32(5), p.Size)
	assert.Equal(t, float32(6), p.CommittedSize)
	assert.Equal(t, float32(2), p.DepthOffset)
}

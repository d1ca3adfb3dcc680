package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUCameraUniformSource is the WGSL CameraUniform struct shared by every shader bound at group 0.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of the camera uniform block.
const GPUCameraUniformSize = 80

// GPUCameraUniform mirrors the WGSL CameraUniform block:
//
//	offset  0  view_proj     mat4x4<f32>
//	offset 64  eye           vec3<f32>
//	offset 76  tan_half_fov  f32
type GPUCameraUniform struct {
	ViewProj   [16]float32
	Eye        [3]float32
	TanHalfFov float32
}

// Size returns the uniform block size in bytes.
func (g *GPUCameraUniform) Size() int {
	return GPUCameraUniformSize
}

// Marshal serializes the uniform as little-endian float32s in block order.
//
// Returns:
//   - []byte: the 80-byte block
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, GPUCameraUniformSize)
	put := func(v float32) {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range g.ViewProj {
		put(v)
	}
	for _, v := range g.Eye {
		put(v)
	}
	put(g.TanHalfFov)
	return buf
}

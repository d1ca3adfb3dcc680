package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPixelParamsSource is the canonical WGSL definition of the PixelParams struct.
// Matches GPUPixelParams layout exactly (32 bytes, std140 aligned).
//
//go:embed assets/pixel_params.wgsl
var GPUPixelParamsSource string

// GPUPixelParams is the GPU-aligned per-batch uniform read by the pixel vertex and fragment shaders.
// Matches the WGSL PixelParams struct layout exactly (see GPUPixelParamsSource).
// Size: 32 bytes.
type GPUPixelParams struct {
	Color             [3]float32 // offset  0: RGB fill color (vec3<f32>)
	Size              float32    // offset 12: live pixel size in world units
	CommittedSize     float32    // offset 16: pixel size the raw vertex positions were written with
	DepthCompensation float32    // offset 20: scale applied to every quad about its center
	DepthOffset       float32    // offset 24: z translation of the whole batch
	_pad              float32    // offset 28: padding to 32 bytes
}

// ByteSize returns the size of the GPUPixelParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPUPixelParams) ByteSize() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPixelParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUPixelParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Size))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.CommittedSize))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.DepthCompensation))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.DepthOffset))
	binary.LittleEndian.PutUint32(buf[28:32], 0) // _pad
	return buf
}

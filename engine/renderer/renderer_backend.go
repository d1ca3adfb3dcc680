package renderer

import "fmt"

// RendererBackendType selects the GPU API behind a Renderer.
type RendererBackendType int

// BackendTypeWGPU renders through WebGPU. It is the only backend.
const BackendTypeWGPU RendererBackendType = iota

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return fmt.Sprintf("backend(%d)", int(t))
	}
}

// PresentMode selects between tear-free presentation and the lowest latency.
type PresentMode int

const (
	// PresentModeVSync presents on vertical blank (FIFO). Frame rate follows the display.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately. Useful when profiling upload throughput.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	if m == PresentModeUncapped {
		return "uncapped"
	}
	return "vsync"
}

// MSAASampleCount is the sample count of the color and depth attachments.
// WebGPU guarantees only 1 and 4.
type MSAASampleCount uint32

const (
	// MSAAOff renders single-sampled. Pixel quads stay hard-edged at any zoom.
	MSAAOff MSAASampleCount = 1
	// MSAA4x smooths quad edges once quads shrink below a few screen pixels.
	MSAA4x MSAASampleCount = 4
)

func (c MSAASampleCount) String() string {
	return fmt.Sprintf("%dx", uint32(c))
}

// RendererBackend is what a Renderer drives; each backend type provides one.
type RendererBackend interface {
	wgpuRendererBackend
}

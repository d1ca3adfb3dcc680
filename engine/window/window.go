package window

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button in input callbacks.
type MouseButton int

const (
	// MouseLeft is the primary button, used for picking and drag-panning.
	MouseLeft MouseButton = iota
	// MouseRight is the secondary button.
	MouseRight
	// MouseMiddle is the wheel button.
	MouseMiddle
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button press.
	// Positions are in framebuffer pixels, matching Width and Height.
	//
	// Parameters:
	//   - callback: function receiving the button and the mouse x, y position
	SetMouseDownCallback(callback func(button MouseButton, x, y int32))

	// SetMouseUpCallback sets the callback for mouse button release.
	//
	// Parameters:
	//   - callback: function receiving the button and the mouse x, y position
	SetMouseUpCallback(callback func(button MouseButton, x, y int32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	// Positions are in framebuffer pixels, matching Width and Height.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in device pixels. Safe to call from any goroutine.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in device pixels. Safe to call from any goroutine.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Sizes are stored atomically because the render goroutine reads them while the window thread resizes.
type engineWindow struct {
	title string

	// size limits applied while resizing; zero leaves a bound unconstrained
	minWidth, minHeight int
	maxWidth, maxHeight int

	// framebuffer size in device pixels
	width, height atomic.Int64

	// framebuffer pixels per window coordinate, as float32 bits
	cursorScaleX, cursorScaleY atomic.Uint32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button MouseButton, x, y int32)
	onMouseUp   func(button MouseButton, x, y int32)
	onMouseMove func(x, y int32)

	// initial size requested through the builder
	initWidth, initHeight int
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:      "oxy-pixels",
		minWidth:   320,
		minHeight:  240,
		initWidth:  1280,
		initHeight: 900,
	}
	for _, opt := range options {
		opt(w)
	}
	w.setCursorScale(1, 1)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// setSize records the framebuffer size.
func (w *engineWindow) setSize(width, height int) {
	w.width.Store(int64(width))
	w.height.Store(int64(height))
}

// setCursorScale records how many framebuffer pixels one window coordinate spans.
func (w *engineWindow) setCursorScale(sx, sy float32) {
	w.cursorScaleX.Store(math.Float32bits(sx))
	w.cursorScaleY.Store(math.Float32bits(sy))
}

// toFramebuffer converts a cursor position in window coordinates to framebuffer pixels.
func (w *engineWindow) toFramebuffer(x, y float64) (int32, int32) {
	sx := math.Float32frombits(w.cursorScaleX.Load())
	sy := math.Float32frombits(w.cursorScaleY.Load())
	return int32(float32(x) * sx), int32(float32(y) * sy)
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return int(w.width.Load())
}

func (w *engineWindow) Height() int {
	return int(w.height.Load())
}

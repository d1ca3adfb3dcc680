package main

import (
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine"
	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_field"
	"github.com/Carmen-Shannon/oxy-pixels/engine/window"

	"github.com/chewxy/math32"
)

const (
	// keyPanPixels is how far one tick of a held pan key moves the view, in screen pixels.
	keyPanPixels = 8
	// clickSlopPixels is the drag distance below which a left press counts as a click.
	clickSlopPixels = 3
)

// setupInput wires camera controls: WASD/arrow panning, left-drag panning, scroll and -/= zoom,
// R to reset the view, P to toggle profiling and left click to pick the pixel under the cursor.
//
// Parameters:
//   - eng: the engine instance providing window callbacks and tick
//   - cam: the camera to control
//   - f: the pixel field used for picking
//   - pal: the palette used to report picked colors
//   - profiling: whether the profiler starts enabled
func setupInput(eng engine.Engine, cam camera.Camera, f pixel_field.Field, pal palette.Palette, profiling bool) {
	win := eng.Window()
	ctrl := cam.Controller()
	homeX, homeY, homeZ := ctrl.Position()

	mu := &sync.Mutex{}
	keyState := make(map[uint32]bool)

	win.SetKeyDownCallback(func(keyCode uint32) {
		mu.Lock()
		keyState[keyCode] = true
		mu.Unlock()

		switch keyCode {
		case common.KeyR:
			ctrl.SetPosition(homeX, homeY, homeZ)
		case common.KeyP:
			profiling = !profiling
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		case common.KeyMinus:
			ctrl.Zoom(-1)
		case common.KeyEqual:
			ctrl.Zoom(1)
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		mu.Lock()
		keyState[keyCode] = false
		mu.Unlock()
	})

	var dragging bool
	var downX, downY, lastX, lastY int32

	win.SetMouseDownCallback(func(button window.MouseButton, x, y int32) {
		if button != window.MouseLeft {
			return
		}
		dragging = true
		downX, downY = x, y
		lastX, lastY = x, y
	})

	win.SetMouseUpCallback(func(button window.MouseButton, x, y int32) {
		if button != window.MouseLeft {
			return
		}
		dragging = false
		if abs(int(x-downX)) <= clickSlopPixels && abs(int(y-downY)) <= clickSlopPixels {
			pick(cam, f, pal, win.Width(), win.Height(), x, y)
		}
	})

	win.SetMouseMoveCallback(func(x, y int32) {
		if !dragging {
			return
		}
		// The view follows the cursor.
		wpp := cam.WorldUnitsPerPixel(win.Height()) / ctrl.PanSpeed()
		wx, wy := screenToWorld(cam, float32(x-lastX), float32(y-lastY))
		ctrl.Pan(-wx*wpp, -wy*wpp)
		lastX, lastY = x, y
	})

	win.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	eng.SetTickCallback(func(_ float32) {
		mu.Lock()
		up := keyState[common.KeyW] || keyState[common.KeyUp]
		down := keyState[common.KeyS] || keyState[common.KeyDown]
		left := keyState[common.KeyA] || keyState[common.KeyLeft]
		right := keyState[common.KeyD] || keyState[common.KeyRight]
		mu.Unlock()

		var sx, sy float32
		if up {
			sy--
		}
		if down {
			sy++
		}
		if left {
			sx--
		}
		if right {
			sx++
		}
		if sx == 0 && sy == 0 {
			return
		}
		step := cam.WorldUnitsPerPixel(win.Height()) * keyPanPixels
		wx, wy := screenToWorld(cam, sx, sy)
		ctrl.Pan(wx*step, wy*step)
	})
}

// screenToWorld turns a screen offset (right, down) into an image-plane offset. Screen up is the
// camera's up vector projected onto the image plane, and screen right is forward x up.
func screenToWorld(cam camera.Camera, sx, sy float32) (wx, wy float32) {
	ux, uy, _ := cam.Up()
	n := math32.Hypot(ux, uy)
	if n == 0 {
		return 0, 0
	}
	ux, uy = ux/n, uy/n
	return sx*uy - sy*ux, -sx*ux - sy*uy
}

// pick logs the source pixel under the cursor, if any.
func pick(cam camera.Camera, f pixel_field.Field, pal palette.Palette, width, height int, x, y int32) {
	wx, wy, ok := cam.Unproject(float32(x), float32(y), width, height)
	if !ok {
		return
	}
	px, err := f.GetPixelFromCoordinates(wx, wy)
	if errors.Is(err, common.ErrOutOfBounds) {
		return
	}
	if err != nil {
		log.Printf("[Pick] %v", err)
		return
	}
	log.Printf("[Pick] row %d col %d color %d %s (world %.2f, %.2f)",
		px.Row, px.Col, px.ColorIndex, pal.Hex(px.ColorIndex), wx, wy)
}

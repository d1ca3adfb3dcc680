package camera

import (
	"sync"
	"time"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32

	minZ float32
	maxZ float32

	zoomSpeed float32
	panSpeed  float32

	now       func() time.Time
	lastMoved time.Time
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new top-down camera controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 30},

		minZ: 1.0,
		maxZ: 500.0,

		zoomSpeed: 2.0,
		panSpeed:  1.0,

		now: time.Now,
	}

	for _, option := range options {
		option(cc)
	}

	cc.position[2] = cc.clampZ(cc.position[2])
	return cc
}

// clampZ limits z to the configured zoom bounds.
func (cc *cameraControllerImpl) clampZ(z float32) float32 {
	if z < cc.minZ {
		return cc.minZ
	}
	if z > cc.maxZ {
		return cc.maxZ
	}
	return z
}

// moveTo updates the position and stamps the movement if anything changed.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) moveTo(x, y, z float32) {
	next := [3]float32{x, y, cc.clampZ(z)}
	if next == cc.position {
		return
	}
	cc.position = next
	cc.lastMoved = cc.now()
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], 0
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.moveTo(x, y, z)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.moveTo(cc.position[0], cc.position[1], cc.position[2]-delta*cc.zoomSpeed)
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.moveTo(cc.position[0]+dx*cc.panSpeed, cc.position[1]+dy*cc.panSpeed, cc.position[2])
}

func (cc *cameraControllerImpl) MinZ() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZ
}

func (cc *cameraControllerImpl) MaxZ() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZ
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) LastMoved() time.Time {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.lastMoved
}

package camera

import "time"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - x, y: position over the image plane
//   - z: distance from the image plane
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
	}
}

// WithZoomBounds sets the minimum and maximum distance from the image plane.
//
// Parameters:
//   - min: closest zoom distance
//   - max: farthest zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZ = min
		cc.maxZ = max
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the planar pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithClock replaces the time source used to stamp movements.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - CameraControllerOption: functional option to set the clock
func WithClock(now func() time.Time) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.now = now
	}
}

package camera

import "time"

// CameraController defines the interface for top-down camera control.
// Controllers own positional state. The camera always looks straight down at the point beneath it,
// so the target is derived from the position. Pan moves across the image plane and Zoom moves
// along Z, clamped to configured bounds. Every movement is timestamped so callers can tell when
// the view has settled.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point, the projection of the position onto z = 0.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly. Z is clamped to the zoom bounds.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Zoom moves the camera along Z. Positive delta zooms in (closer to the image plane).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Pan translates the camera across the image plane.
	//
	// Parameters:
	//   - dx, dy: world-space offsets scaled by PanSpeed
	Pan(dx, dy float32)

	// MinZ returns the closest allowed distance to the image plane.
	//
	// Returns:
	//   - float32: minimum z
	MinZ() float32

	// MaxZ returns the farthest allowed distance from the image plane.
	//
	// Returns:
	//   - float32: maximum z
	MaxZ() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32

	// LastMoved returns the time of the most recent position change.
	// The zero time is returned if the controller has never moved.
	//
	// Returns:
	//   - time.Time: timestamp of the last movement
	LastMoved() time.Time
}

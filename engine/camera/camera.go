package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

// depthRemap converts OpenGL clip depth [-w, w] into the WebGPU range [0, w].
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fovDegrees float32
	aspect     float32
	near       float32
	far        float32

	viewMatrix           mgl32.Mat4
	glProjectionMatrix   mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the camera system.
// The camera looks straight down the -Z axis at the image plane (z = 0). It holds perspective
// settings and computes view/projection matrices from an attached CameraController each frame via Update().
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// FovDegrees returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	FovDegrees() float32

	// Zoom returns the camera's distance along Z, read from the controller.
	// Returns 0 if no controller is attached.
	//
	// Returns:
	//   - float32: the camera z position
	Zoom() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major),
	// with depth mapped to the WebGPU [0, 1] range.
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// WorldUnitsPerPixel returns how many world units one screen pixel spans on the image plane
	// at the current zoom, for a viewport of the given height.
	//
	// Parameters:
	//   - viewportHeight: the viewport height in pixels
	//
	// Returns:
	//   - float32: world units per screen pixel, or 0 for a non-positive height
	WorldUnitsPerPixel(viewportHeight int) float32

	// Unproject casts a ray through the given window coordinate and intersects it with the image plane.
	// Window coordinates have their origin at the top-left corner.
	//
	// Parameters:
	//   - screenX, screenY: the cursor position in pixels
	//   - width, height: the viewport size in pixels
	//
	// Returns:
	//   - x, y: the world-space hit on z = 0
	//   - bool: false if the ray misses the plane or the matrices are singular
	Unproject(screenX, screenY float32, width, height int) (x, y float32, ok bool)

	// Uniform returns the GPU representation of the current camera state.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform ready for Marshal
	Uniform() GPUCameraUniform

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update reads position/target from controller and recomputes matrices.
	// Should be called once per frame. If no controller is attached, this method does nothing.
	Update()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFovDegrees sets the vertical field of view in degrees and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFovDegrees(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// The default up vector is -X so that increasing rows run down the screen and increasing columns run right.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   mgl32.Vec3{-1, 0, 0},
		fovDegrees:           50,
		aspect:               1.0,
		near:                 0.1,
		far:                  1000.0,
		viewMatrix:           mgl32.Ident4(),
		glProjectionMatrix:   mgl32.Ident4(),
		projectionMatrix:     mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) FovDegrees() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovDegrees
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()
	if ctrl == nil {
		return 0
	}
	_, _, z := ctrl.Position()
	return z
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) WorldUnitsPerPixel(viewportHeight int) float32 {
	if viewportHeight <= 0 {
		return 0
	}
	fov := c.FovDegrees()
	z := c.Zoom()
	return 2 * math32.Tan(mgl32.DegToRad(fov)/2) * z / float32(viewportHeight)
}

func (c *cameraImpl) Unproject(screenX, screenY float32, width, height int) (x, y float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	c.mu.Lock()
	view, proj := c.viewMatrix, c.glProjectionMatrix
	c.mu.Unlock()

	winY := float32(height) - screenY
	nearPt, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return 0, 0, false
	}
	farPt, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return 0, 0, false
	}

	dir := farPt.Sub(nearPt)
	if math32.Abs(dir[2]) < 1e-8 {
		return 0, 0, false
	}
	t := -nearPt[2] / dir[2]
	if t < 0 {
		return 0, 0, false
	}
	hit := nearPt.Add(dir.Mul(t))
	return hit[0], hit[1], true
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	u := GPUCameraUniform{
		ViewProj:   c.viewProjectionMatrix,
		TanHalfFov: math32.Tan(mgl32.DegToRad(c.fovDegrees) / 2),
	}
	ctrl := c.controller
	c.mu.Unlock()

	if ctrl != nil {
		u.Eye[0], u.Eye[1], u.Eye[2] = ctrl.Position()
	}
	return u
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = mgl32.Vec3{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFovDegrees(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovDegrees = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// It reads position and target from the attached controller. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()

	c.viewMatrix = mgl32.LookAtV(mgl32.Vec3{px, py, pz}, mgl32.Vec3{tx, ty, tz}, c.up)
	c.glProjectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.fovDegrees), c.aspect, c.near, c.far)
	c.projectionMatrix = depthRemap.Mul4(c.glProjectionMatrix)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

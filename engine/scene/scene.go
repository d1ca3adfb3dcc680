package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"
	"github.com/Carmen-Shannon/oxy-pixels/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices shared by every pixel pipeline.
const (
	// CameraGroup is the bind group index of the camera uniform.
	CameraGroup = 0
	// MaterialGroup is the bind group index of the per-mesh pixel parameters.
	MaterialGroup = 1
)

// Scene is a drawable container of meshes sharing one camera and renderer.
// Meshes are drawn in insertion order. Per-frame state changes (camera matrices, material uniforms
// and rewritten vertex positions) are collected by Flush into a single renderer upload.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// SetName sets the name of the scene.
	//
	// Parameters:
	//   - name: the new scene name
	SetName(name string)

	// Active reports whether the scene should be drawn.
	//
	// Returns:
	//   - bool: true if the scene is active
	Active() bool

	// SetActive sets whether the scene should be drawn.
	//
	// Parameters:
	//   - active: the new active state
	SetActive(active bool)

	// Camera returns the camera attached to the scene.
	//
	// Returns:
	//   - camera.Camera: the scene camera
	Camera() camera.Camera

	// Renderer returns the renderer attached to the scene.
	//
	// Returns:
	//   - renderer.Renderer: the scene renderer
	Renderer() renderer.Renderer

	// Count returns the number of meshes in the scene.
	//
	// Returns:
	//   - int: the mesh count
	Count() int

	// Add uploads a mesh's vertex buffers and material bind group and registers it for drawing.
	// The mesh material's pipeline must already be registered with the renderer.
	//
	// Parameters:
	//   - m: the mesh to add
	//
	// Returns:
	//   - uint64: the id assigned to the mesh
	//   - error: an error if the pipeline is unknown or GPU resource creation fails
	Add(m mesh.Mesh) (uint64, error)

	// Get returns the mesh registered under id, or nil.
	//
	// Parameters:
	//   - id: the id returned by Add
	//
	// Returns:
	//   - mesh.Mesh: the mesh or nil
	Get(id uint64) mesh.Mesh

	// Remove unregisters and releases the mesh registered under id.
	//
	// Parameters:
	//   - id: the id returned by Add
	Remove(id uint64)

	// Clear unregisters and releases every mesh.
	Clear()

	// Flush writes the camera uniform (when it changed), every dirty material uniform and every dirty
	// position buffer in one renderer upload, then clears the dirty flags.
	//
	// Returns:
	//   - int: the number of buffer writes issued
	Flush() int

	// DrawCalls encodes one draw per non-empty mesh in the current render pass.
	//
	// Returns:
	//   - error: an error if any draw call fails
	DrawCalls() error
}

type entry struct {
	id   uint64
	mesh mesh.Mesh
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	entries []entry
	index   map[uint64]int
	nextID  uint64

	cam camera.Camera
	r   renderer.Renderer

	lastCamera    []byte
	cameraWritten bool

	// materialLayout is created by the first material and shared by the rest; all pixel materials
	// declare the same group 1 layout.
	materialLayout *wgpu.BindGroupLayout

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, renderer, and a vertex shader
// used to discover the camera's bind group layout. All three are required and NewScene
// panics if any of them is nil. The layout at CameraGroup is used to initialize the camera's
// BindGroupProvider on the GPU.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - vertexShader: a vertex shader whose bind groups include the camera uniform layout (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex shader for camera BGP init")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		index:              make(map[uint64]int),
		nextID:             1,
		cam:                cam,
		r:                  r,
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 2),
	}

	for _, option := range options {
		option(s)
	}

	if bgp := cam.BindGroupProvider(); bgp != nil {
		if err := r.InitBindGroup(bgp, vertexShader.BindGroupLayoutDescriptor(CameraGroup)); err != nil {
			panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
		}
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *scene) Add(m mesh.Mesh) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mat := m.Material()
	if mat == nil {
		return 0, fmt.Errorf("scene %q: mesh %q has no material", s.name, m.Label())
	}
	rp := s.r.Pipeline(mat.PipelineKey())
	if rp == nil {
		return 0, fmt.Errorf("scene %q: pipeline %q is not registered", s.name, mat.PipelineKey())
	}
	vs := rp.Shader(shader.ShaderTypeVertex)
	if vs == nil {
		return 0, fmt.Errorf("scene %q: pipeline %q has no vertex shader", s.name, mat.PipelineKey())
	}

	if err := s.r.InitMeshBuffers(m.MeshProvider(), m.Slots(), m.VertexCount()); err != nil {
		return 0, fmt.Errorf("scene %q: mesh %q: %w", s.name, m.Label(), err)
	}
	if mat.BindGroupProvider().BindGroupLayout() == nil && s.materialLayout != nil {
		mat.BindGroupProvider().ShareBindGroupLayout(s.materialLayout)
	}
	if err := s.r.InitBindGroup(mat.BindGroupProvider(), vs.BindGroupLayoutDescriptor(MaterialGroup)); err != nil {
		return 0, fmt.Errorf("scene %q: material %q: %w", s.name, mat.Name(), err)
	}
	if s.materialLayout == nil {
		s.materialLayout = mat.BindGroupProvider().BindGroupLayout()
	}
	// The freshly created buffers already hold the current positions.
	m.ClearPositionsDirty()
	mat.MarkDirty()

	id := s.nextID
	s.nextID++
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, entry{id: id, mesh: m})
	return id, nil
}

func (s *scene) Get(id uint64) mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return s.entries[i].mesh
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.entries[i].mesh.Release()
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].id] = j
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		e.mesh.Release()
	}
	s.entries = nil
	s.index = make(map[uint64]int)
}

func (s *scene) Flush() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := s.writePool[:0]

	if bgp := s.cam.BindGroupProvider(); bgp != nil {
		u := s.cam.Uniform()
		data := u.Marshal()
		if !s.cameraWritten || string(data) != string(s.lastCamera) {
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: bgp,
				Target:   bind_group_provider.BufferTargetUniform,
				Binding:  0,
				Data:     data,
			})
			s.lastCamera = data
			s.cameraWritten = true
		}
	}

	for _, e := range s.entries {
		mat := e.mesh.Material()
		if mat.Dirty() {
			params := mat.Params()
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: mat.BindGroupProvider(),
				Target:   bind_group_provider.BufferTargetUniform,
				Binding:  0,
				Data:     params.Marshal(),
			})
			mat.ClearDirty()
		}
		if e.mesh.PositionsDirty() {
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: e.mesh.MeshProvider(),
				Target:   bind_group_provider.BufferTargetVertex,
				Binding:  mesh.SlotPosition,
				Data:     e.mesh.SlotData(mesh.SlotPosition),
			})
			e.mesh.ClearPositionsDirty()
		}
	}

	s.r.WriteBuffers(writes)
	s.writePool = writes
	return len(writes)
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	camBGP := s.cam.BindGroupProvider()
	for _, e := range s.entries {
		if e.mesh.VertexCount() == 0 {
			continue
		}
		mat := e.mesh.Material()

		bindGroups := s.drawBindGroupsPool[:0]
		bindGroups = append(bindGroups, camBGP, mat.BindGroupProvider())

		if err := s.r.DrawCall(mat.PipelineKey(), e.mesh.MeshProvider(), bindGroups); err != nil {
			return fmt.Errorf("draw call failed for mesh %q in scene %q: %w", e.mesh.Label(), s.name, err)
		}
	}
	return nil
}

package pixel_field

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/Carmen-Shannon/oxy-pixels/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_group"
)

// Default field constants.
const (
	DefaultPixelSize      = 10.0
	DefaultMaxFootprintPx = 128.0
	DefaultDistanceOffset = 16.0
	DefaultViewportHeight = 900
	DefaultPipelineKey    = "pixel_field"
)

// CameraView is the part of a camera the field reads to size pixels.
type CameraView interface {
	// FovDegrees returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	FovDegrees() float32

	// Zoom returns the camera's distance from the image plane.
	//
	// Returns:
	//   - float32: the camera z position
	Zoom() float32
}

// SceneAdder is the part of a scene the field registers its meshes with.
type SceneAdder interface {
	// Add registers a mesh for drawing.
	//
	// Parameters:
	//   - m: the mesh to add
	//
	// Returns:
	//   - uint64: the id assigned by the scene
	//   - error: an error if the mesh could not be added
	Add(m mesh.Mesh) (uint64, error)
}

// Stats summarizes the field's batches and its most recent sizing passes.
type Stats struct {
	Batches      int
	NonEmpty     int
	Vertices     int
	Quads        int
	LastRefresh  int
	LastCommit   int
	CommitTime   time.Duration
	TotalCommits int
}

type field struct {
	grid     grid.Grid
	palette  palette.Palette
	cam      CameraView
	assigner pixel_group.Assigner
	set      *pixel_group.Set
	mapper   *grid.Mapper
	meshes   []mesh.Mesh

	pixelSize      float32
	maxFootprintPx float64
	subGroups      int
	hashShift      uint
	distanceOffset float64
	centerRow      int
	centerCol      int
	viewportHeight int
	pipelineKey    string

	workers int
	pool    worker.DynamicWorkerPool

	stats Stats
}

// Field renders a palette-indexed grid as batched, individually addressable quads.
//
// Batches are built and materialized once by NewField. While the camera moves, UpdatePixelSize
// clamps each batch's on-screen size through a cheap uniform change. Once motion settles,
// UpdateBufferGeometry rewrites the raw vertex positions to the clamped size so picking against
// geometry is exact again. The field is driven from a single goroutine and is not locked.
type Field interface {
	// AddPixelsToScene adds the mesh of every non-empty batch to the scene, in flat batch order.
	//
	// Parameters:
	//   - s: the scene to add the meshes to
	//
	// Returns:
	//   - error: the first error reported by the scene
	AddPixelsToScene(s SceneAdder) error

	// UpdatePixelSize recomputes every batch's clamped size and stores it in the batch material,
	// marking the material dirty only when the float32 value changed.
	//
	// Returns:
	//   - int: the number of batches whose size changed
	UpdatePixelSize() int

	// UpdateBufferGeometry recomputes every batch's clamped size from the current camera, then rewrites
	// the vertex positions of every batch whose committed size differs from it and marks those position
	// buffers dirty. The material size is brought up to date as well, so it may be called without a
	// preceding UpdatePixelSize.
	//
	// Returns:
	//   - int: the number of batches rewritten
	UpdateBufferGeometry() int

	// GetPixelFromCoordinates returns the pixel under a world-space point on the image plane.
	//
	// Parameters:
	//   - x, y: world-space coordinates
	//
	// Returns:
	//   - common.Pixel: the pixel under the point
	//   - error: common.ErrOutOfBounds if the point lies outside the grid
	GetPixelFromCoordinates(x, y float32) (common.Pixel, error)

	// GetCoordinatesFromPixel returns the world-space anchor of a pixel.
	//
	// Parameters:
	//   - row, col: the pixel position
	//
	// Returns:
	//   - x, y: world-space coordinates
	GetCoordinatesFromPixel(row, col int) (x, y float32)

	// ComputeClampedSize returns the on-screen-clamped side length for a batch at the current camera state.
	//
	// Parameters:
	//   - flat: the flat batch index
	//
	// Returns:
	//   - float64: the clamped size, in [0, pixel size]
	//   - error: common.ErrOutOfBounds if flat is not a batch index
	ComputeClampedSize(flat int) (float64, error)

	// SetViewportHeight sets the drawable height used to convert the footprint cap to world units.
	// Non-positive heights are ignored.
	//
	// Parameters:
	//   - px: the viewport height in device pixels
	SetViewportHeight(px int)

	// ViewportHeight returns the drawable height in device pixels.
	//
	// Returns:
	//   - int: the viewport height
	ViewportHeight() int

	// SetBatchDepth moves a batch along Z. The offset feeds both the uniform and the batch's mean depth.
	//
	// Parameters:
	//   - flat: the flat batch index
	//   - z: the depth offset
	//
	// Returns:
	//   - error: common.ErrOutOfBounds if flat is not a batch index
	SetBatchDepth(flat int, z float32) error

	// SetDepthCompensation sets the scale applied to a batch's quads around their anchors.
	//
	// Parameters:
	//   - flat: the flat batch index
	//   - v: the compensation factor
	//
	// Returns:
	//   - error: common.ErrOutOfBounds if flat is not a batch index
	SetDepthCompensation(flat int, v float32) error

	// Batches returns the underlying batch set.
	//
	// Returns:
	//   - *pixel_group.Set: the batches
	Batches() *pixel_group.Set

	// Meshes returns the drawable of every batch, indexed by flat batch index. Empty batches have a nil entry.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// PixelSize returns the nominal pixel size.
	//
	// Returns:
	//   - float32: the nominal world-space side length
	PixelSize() float32

	// Stats returns a snapshot of the field statistics.
	//
	// Returns:
	//   - Stats: the statistics
	Stats() Stats
}

var _ Field = &field{}

// NewField validates the configuration, builds the batches and materializes one mesh per non-empty batch.
//
// Parameters:
//   - g: the palette-indexed grid
//   - p: the palette
//   - cam: the camera the sizing reads from
//   - options: functional options overriding the default constants
//
// Returns:
//   - Field: the field
//   - error: a wrapped common sentinel describing the first invalid input
func NewField(g grid.Grid, p palette.Palette, cam CameraView, options ...FieldBuilderOption) (Field, error) {
	if g == nil || p == nil || cam == nil {
		return nil, fmt.Errorf("field: grid, palette and camera are required: %w", common.ErrInvalidConfiguration)
	}

	f := &field{
		grid:           g,
		palette:        p,
		cam:            cam,
		pixelSize:      DefaultPixelSize,
		maxFootprintPx: DefaultMaxFootprintPx,
		subGroups:      pixel_group.DefaultSubGroups,
		hashShift:      pixel_group.DefaultHashShift,
		distanceOffset: DefaultDistanceOffset,
		centerRow:      g.Rows() / 2,
		centerCol:      g.Cols() / 2,
		viewportHeight: DefaultViewportHeight,
		pipelineKey:    DefaultPipelineKey,
		workers:        max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(f)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	var err error
	f.assigner, err = pixel_group.NewAssigner(pixel_group.AssignerConfig{
		SubGroups: f.subGroups,
		HashShift: f.hashShift,
		CenterRow: f.centerRow,
		CenterCol: f.centerCol,
	})
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}

	f.mapper, err = grid.NewMapper(g, f.pixelSize, f.centerRow, f.centerCol)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}

	f.set, err = pixel_group.Build(g, f.assigner, pixel_group.BuildConfig{
		PaletteLen: p.Len(),
		PixelSize:  f.pixelSize,
		CenterRow:  f.centerRow,
		CenterCol:  f.centerCol,
	})
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}

	if err := f.materialize(); err != nil {
		return nil, err
	}

	// Queue sized for one task per batch so a commit never blocks on submission.
	f.pool = worker.NewDynamicWorkerPool(f.workers, f.set.Len(), 1*time.Second)

	f.stats.Batches = f.set.Len()
	for _, b := range f.set.NonEmpty() {
		f.stats.NonEmpty++
		f.stats.Vertices += b.VertexCount()
		f.stats.Quads += b.QuadCount()
	}
	return f, nil
}

// validate checks the small configuration surface before any data is touched.
func (f *field) validate() error {
	switch {
	case !(f.pixelSize > 0):
		return fmt.Errorf("field: pixel size %v must be > 0: %w", f.pixelSize, common.ErrInvalidConfiguration)
	case !(f.maxFootprintPx > 0):
		return fmt.Errorf("field: max footprint %v must be > 0: %w", f.maxFootprintPx, common.ErrInvalidConfiguration)
	case f.distanceOffset == 0:
		return fmt.Errorf("field: distance offset must be non-zero: %w", common.ErrInvalidConfiguration)
	case f.viewportHeight <= 0:
		return fmt.Errorf("field: viewport height %d must be > 0: %w", f.viewportHeight, common.ErrInvalidConfiguration)
	case f.subGroups < 2:
		return fmt.Errorf("field: sub-group count %d (need >= 2): %w", f.subGroups, common.ErrDegenerateGroupConfiguration)
	case f.grid.MaxIndex() >= f.palette.Len():
		return fmt.Errorf("field: grid references index %d but palette has %d colors: %w",
			f.grid.MaxIndex(), f.palette.Len(), common.ErrInvalidPaletteIndex)
	case !f.grid.Contains(f.centerRow, f.centerCol):
		return fmt.Errorf("field: center (%d, %d) outside %dx%d grid: %w",
			f.centerRow, f.centerCol, f.grid.Rows(), f.grid.Cols(), common.ErrInvalidConfiguration)
	case f.pipelineKey == "":
		return fmt.Errorf("field: empty pipeline key: %w", common.ErrInvalidConfiguration)
	}
	return nil
}

func (f *field) AddPixelsToScene(s SceneAdder) error {
	for flat, m := range f.meshes {
		if m == nil {
			continue
		}
		if _, err := s.Add(m); err != nil {
			return fmt.Errorf("field: add batch %d: %w", flat, err)
		}
	}
	return nil
}

func (f *field) GetPixelFromCoordinates(x, y float32) (common.Pixel, error) {
	return f.mapper.PixelFromWorld(x, y)
}

func (f *field) GetCoordinatesFromPixel(row, col int) (x, y float32) {
	return f.mapper.WorldFromPixel(row, col)
}

func (f *field) SetViewportHeight(px int) {
	if px <= 0 {
		return
	}
	f.viewportHeight = px
}

func (f *field) ViewportHeight() int {
	return f.viewportHeight
}

func (f *field) SetBatchDepth(flat int, z float32) error {
	b := f.set.Batch(flat)
	if b == nil {
		return fmt.Errorf("field: batch %d: %w", flat, common.ErrOutOfBounds)
	}
	b.SetDepthOffset(z)
	if m := f.meshes[flat]; m != nil {
		m.Material().SetDepthOffset(z)
	}
	return nil
}

func (f *field) SetDepthCompensation(flat int, v float32) error {
	if f.set.Batch(flat) == nil {
		return fmt.Errorf("field: batch %d: %w", flat, common.ErrOutOfBounds)
	}
	if m := f.meshes[flat]; m != nil {
		m.Material().SetDepthCompensation(v)
	}
	return nil
}

func (f *field) Batches() *pixel_group.Set {
	return f.set
}

func (f *field) Meshes() []mesh.Mesh {
	return f.meshes
}

func (f *field) PixelSize() float32 {
	return f.pixelSize
}

func (f *field) Stats() Stats {
	return f.stats
}

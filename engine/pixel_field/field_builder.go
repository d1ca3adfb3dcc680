package pixel_field

// FieldBuilderOption is a functional option applied to a field during construction via NewField.
type FieldBuilderOption func(*field)

// WithPixelSize sets the nominal world-space side length of one pixel.
//
// Parameters:
//   - size: the nominal pixel size (must be > 0)
//
// Returns:
//   - FieldBuilderOption: a function that applies the pixel size option to a field
func WithPixelSize(size float32) FieldBuilderOption {
	return func(f *field) {
		f.pixelSize = size
	}
}

// WithMaxFootprintPx caps the on-screen side length of a pixel in device pixels.
//
// Parameters:
//   - px: the maximum footprint (must be > 0)
//
// Returns:
//   - FieldBuilderOption: a function that applies the footprint option to a field
func WithMaxFootprintPx(px float64) FieldBuilderOption {
	return func(f *field) {
		f.maxFootprintPx = px
	}
}

// WithSubGroups sets the per-color sub-group count G. The background color gets three times as many.
//
// Parameters:
//   - g: the sub-group count (must be >= 2)
//
// Returns:
//   - FieldBuilderOption: a function that applies the sub-group option to a field
func WithSubGroups(g int) FieldBuilderOption {
	return func(f *field) {
		f.subGroups = g
	}
}

// WithHashShift sets the right shift applied to the spatial hash before reduction.
//
// Parameters:
//   - shift: the shift amount
//
// Returns:
//   - FieldBuilderOption: a function that applies the hash shift option to a field
func WithHashShift(shift uint) FieldBuilderOption {
	return func(f *field) {
		f.hashShift = shift
	}
}

// WithDistanceOffset sets how strongly batch depth reduces the visible world height.
// Larger values weaken the effect.
//
// Parameters:
//   - offset: the distance offset (must be non-zero)
//
// Returns:
//   - FieldBuilderOption: a function that applies the distance offset option to a field
func WithDistanceOffset(offset float64) FieldBuilderOption {
	return func(f *field) {
		f.distanceOffset = offset
	}
}

// WithCenter sets the pixel rendered at the world origin. Defaults to the middle of the grid.
//
// Parameters:
//   - row, col: the center pixel (must lie inside the grid)
//
// Returns:
//   - FieldBuilderOption: a function that applies the center option to a field
func WithCenter(row, col int) FieldBuilderOption {
	return func(f *field) {
		f.centerRow = row
		f.centerCol = col
	}
}

// WithViewportHeight sets the initial drawable height in device pixels.
//
// Parameters:
//   - px: the viewport height (must be > 0)
//
// Returns:
//   - FieldBuilderOption: a function that applies the viewport option to a field
func WithViewportHeight(px int) FieldBuilderOption {
	return func(f *field) {
		f.viewportHeight = px
	}
}

// WithPipelineKey sets the render pipeline every batch material draws with.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - FieldBuilderOption: a function that applies the pipeline key option to a field
func WithPipelineKey(key string) FieldBuilderOption {
	return func(f *field) {
		f.pipelineKey = key
	}
}

// WithWorkers sets the number of goroutines used by UpdateBufferGeometry.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - FieldBuilderOption: a function that applies the worker option to a field
func WithWorkers(n int) FieldBuilderOption {
	return func(f *field) {
		if n < 1 {
			n = 1
		}
		f.workers = n
	}
}

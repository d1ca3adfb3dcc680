package pixel_group

// Floats per vertex for the position and center attributes.
const ComponentsPerVertex = 3

// VerticesPerQuad is the number of emitted vertices per pixel (two triangles, no index buffer).
const VerticesPerQuad = 6

// QuadTriangles splits a quad into two counter-clockwise triangles, expressed as corner indices.
var QuadTriangles = [2][3]uint8{
	{0, 2, 1},
	{2, 3, 1},
}

// CornerSigns gives the (x, y) sign of each corner's half-size offset from the quad anchor.
// Corner 0 is (-x, +y), 1 is (+x, +y), 2 is (-x, -y) and 3 is (+x, -y).
var CornerSigns = [4][2]float32{
	{-1, 1},
	{1, 1},
	{-1, -1},
	{1, -1},
}

// Batch is one pixel group: every quad of one color that hashed into the same sub-group.
// The three attribute slices grow in lockstep during the build pass and are never resized afterwards;
// only position floats are rewritten in place when geometry is committed.
type Batch struct {
	index      int
	colorIndex int
	subGroup   int

	positions []float32
	centers   []float32
	corners   []uint8

	sumZ          float64
	depthOffset   float32
	committedSize float32
}

// NewBatch creates an empty batch.
//
// Parameters:
//   - index: the flat batch index, stable for the lifetime of the field
//   - colorIndex: the palette index of the bucket
//   - subGroup: the sub-group within the bucket
//
// Returns:
//   - *Batch: the empty batch
func NewBatch(index, colorIndex, subGroup int) *Batch {
	return &Batch{index: index, colorIndex: colorIndex, subGroup: subGroup}
}

// Index returns the flat batch index.
func (b *Batch) Index() int { return b.index }

// ColorIndex returns the palette index of the batch's color bucket.
func (b *Batch) ColorIndex() int { return b.colorIndex }

// SubGroup returns the sub-group within the color bucket.
func (b *Batch) SubGroup() int { return b.subGroup }

// Positions returns the raw vertex positions (3 floats per vertex). The slice is shared, not copied.
func (b *Batch) Positions() []float32 { return b.positions }

// Centers returns the per-vertex quad anchors (3 floats per vertex). The slice is shared, not copied.
func (b *Batch) Centers() []float32 { return b.centers }

// Corners returns the per-vertex corner tags (0..3). The slice is shared, not copied.
func (b *Batch) Corners() []uint8 { return b.corners }

// VertexCount returns the number of emitted vertices.
func (b *Batch) VertexCount() int { return len(b.corners) }

// QuadCount returns the number of pixels in the batch.
func (b *Batch) QuadCount() int { return len(b.corners) / VerticesPerQuad }

// Empty reports whether the batch received no pixels.
func (b *Batch) Empty() bool { return len(b.corners) == 0 }

// MeanDepth returns the mean world-space z of the batch's anchors plus its depth offset.
func (b *Batch) MeanDepth() float32 {
	if len(b.corners) == 0 {
		return b.depthOffset
	}
	return float32(b.sumZ/float64(len(b.corners))) + b.depthOffset
}

// DepthOffset returns the z translation applied to the whole batch.
func (b *Batch) DepthOffset() float32 { return b.depthOffset }

// SetDepthOffset moves the whole batch along z. The raw geometry is unchanged; the offset feeds
// the mean depth used by dynamic sizing.
func (b *Batch) SetDepthOffset(z float32) { b.depthOffset = z }

// CommittedSize returns the pixel size the raw positions were last written with.
func (b *Batch) CommittedSize() float32 { return b.committedSize }

// grow reserves capacity for n more quads.
func (b *Batch) grow(n int) {
	v := n * VerticesPerQuad
	b.positions = append(make([]float32, 0, len(b.positions)+v*ComponentsPerVertex), b.positions...)
	b.centers = append(make([]float32, 0, len(b.centers)+v*ComponentsPerVertex), b.centers...)
	b.corners = append(make([]uint8, 0, len(b.corners)+v), b.corners...)
}

// appendQuad emits the two triangles of a pixel quad of side size centered at (x, y, z).
func (b *Batch) appendQuad(x, y, z, size float32) {
	half := size / 2
	for _, tri := range QuadTriangles {
		for _, corner := range tri {
			s := CornerSigns[corner]
			b.positions = append(b.positions, x+s[0]*half, y+s[1]*half, z)
			b.centers = append(b.centers, x, y, z)
			b.corners = append(b.corners, corner)
		}
	}
	b.sumZ += float64(z) * VerticesPerQuad
	b.committedSize = size
}

// Rewrite recomputes every raw vertex position from its anchor and corner tag for the given size.
// It reports whether anything was written; a batch already committed at size is left untouched.
//
// Parameters:
//   - size: the pixel side length to lay the quads out with
//
// Returns:
//   - bool: true if positions were rewritten
func (b *Batch) Rewrite(size float32) bool {
	if size == b.committedSize {
		return false
	}
	half := size / 2
	for v, corner := range b.corners {
		s := CornerSigns[corner]
		i := v * ComponentsPerVertex
		b.positions[i] = b.centers[i] + s[0]*half
		b.positions[i+1] = b.centers[i+1] + s[1]*half
		b.positions[i+2] = b.centers[i+2]
	}
	b.committedSize = size
	return true
}

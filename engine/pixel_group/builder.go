package pixel_group

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
)

// Set is the full collection of batches produced by one build pass, addressed by flat index.
// Buckets are laid out in palette order; within a bucket, batches are laid out by sub-group.
type Set struct {
	batches []*Batch
	offsets []int
	counts  []int
}

// Batches returns every batch in flat-index order, including empty ones.
func (s *Set) Batches() []*Batch { return s.batches }

// Len returns the number of allocated batches.
func (s *Set) Len() int { return len(s.batches) }

// Batch returns the batch with the given flat index, or nil if out of range.
func (s *Set) Batch(flat int) *Batch {
	if flat < 0 || flat >= len(s.batches) {
		return nil
	}
	return s.batches[flat]
}

// Lookup returns the batch for a (color, sub-group) pair, or nil if either is out of range.
func (s *Set) Lookup(colorIndex, subGroup int) *Batch {
	if colorIndex < 0 || colorIndex >= len(s.offsets) || subGroup < 0 || subGroup >= s.counts[colorIndex] {
		return nil
	}
	return s.batches[s.offsets[colorIndex]+subGroup]
}

// Bucket returns the batches of one color, in sub-group order.
func (s *Set) Bucket(colorIndex int) []*Batch {
	if colorIndex < 0 || colorIndex >= len(s.offsets) {
		return nil
	}
	start := s.offsets[colorIndex]
	return s.batches[start : start+s.counts[colorIndex]]
}

// BucketCount returns the number of color buckets.
func (s *Set) BucketCount() int { return len(s.offsets) }

// VertexCount returns the total number of emitted vertices across all batches.
func (s *Set) VertexCount() int {
	n := 0
	for _, b := range s.batches {
		n += b.VertexCount()
	}
	return n
}

// NonEmpty returns the batches that received at least one pixel, in flat-index order.
func (s *Set) NonEmpty() []*Batch {
	out := make([]*Batch, 0, len(s.batches))
	for _, b := range s.batches {
		if !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}

// BuildConfig holds the layout constants consumed by Build.
type BuildConfig struct {
	// PaletteLen is the number of palette colors; one bucket is allocated per color.
	PaletteLen int
	// PixelSize is the nominal quad side length in world units.
	PixelSize float32
	// CenterRow and CenterCol identify the cell placed at the world origin.
	CenterRow, CenterCol int
}

// NewSet allocates the empty batches for every color bucket and sub-group.
//
// Parameters:
//   - a: the assigner deciding how many sub-groups each color gets
//   - paletteLen: the number of color buckets
//
// Returns:
//   - *Set: the empty set
func NewSet(a Assigner, paletteLen int) *Set {
	s := &Set{
		offsets: make([]int, paletteLen),
		counts:  make([]int, paletteLen),
	}
	flat := 0
	for c := 0; c < paletteLen; c++ {
		n := a.SubGroupCount(c)
		s.offsets[c] = flat
		s.counts[c] = n
		for sg := 0; sg < n; sg++ {
			s.batches = append(s.batches, NewBatch(flat, c, sg))
			flat++
		}
	}
	return s
}

// Build walks the grid once and emits every pixel's quad into its batch.
//
// Parameters:
//   - g: the source grid
//   - a: the group assigner
//   - cfg: the layout constants
//
// Returns:
//   - *Set: the populated batches
//   - error: common.ErrInvalidPaletteIndex if a cell references a color outside the palette,
//     common.ErrInvalidConfiguration if the layout constants are unusable
func Build(g grid.Grid, a Assigner, cfg BuildConfig) (*Set, error) {
	if cfg.PaletteLen <= 0 {
		return nil, fmt.Errorf("build: palette length %d: %w", cfg.PaletteLen, common.ErrInvalidConfiguration)
	}
	if !(cfg.PixelSize > 0) {
		return nil, fmt.Errorf("build: pixel size %v: %w", cfg.PixelSize, common.ErrInvalidConfiguration)
	}
	s := NewSet(a, cfg.PaletteLen)

	// Count first so every batch allocates exactly once.
	quads := make([]int, len(s.batches))
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := g.At(row, col)
			if c >= cfg.PaletteLen {
				return nil, fmt.Errorf("build: cell (%d, %d) has index %d of %d: %w", row, col, c, cfg.PaletteLen, common.ErrInvalidPaletteIndex)
			}
			bc, sg := a.Route(c, row, col)
			quads[s.offsets[bc]+sg]++
		}
	}
	for i, n := range quads {
		s.batches[i].grow(n)
		s.batches[i].committedSize = cfg.PixelSize
	}

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			bc, sg := a.Route(g.At(row, col), row, col)
			x, y := grid.Anchor(row, col, cfg.PixelSize, cfg.CenterRow, cfg.CenterCol)
			s.batches[s.offsets[bc]+sg].appendQuad(x, y, 0, cfg.PixelSize)
		}
	}
	return s, nil
}

package pixel_group

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
)

// Default group assignment constants.
const (
	// DefaultSubGroups is the sub-group count G given to every non-background color.
	DefaultSubGroups = 8

	// DefaultHashShift is the avalanche shift applied to the spatial hash before reduction.
	DefaultHashShift = 3

	// BackgroundMultiplier scales G for the background color, which covers far more pixels.
	BackgroundMultiplier = 3
)

// AssignerConfig holds the constants consumed by the Assigner.
type AssignerConfig struct {
	// SubGroups is the per-color sub-group count G. Must be >= 2.
	SubGroups int
	// HashShift is the right shift applied to the hash before reduction.
	HashShift uint
	// CenterRow and CenterCol identify the designated center pixel, which is always routed to
	// the background color's first sub-group.
	CenterRow, CenterCol int
}

// assigner is the implementation of the Assigner interface.
type assigner struct {
	cfg AssignerConfig
}

// Assigner maps (color, row, col) to a bounded sub-group index.
// The mapping is a deterministic but spatially scrambled hash so that every batch holds pixels
// spread over the whole image rather than a contiguous block.
type Assigner interface {
	// SubGroupCount returns the number of sub-groups for a color: G, or 3*G for the background index.
	//
	// Parameters:
	//   - colorIndex: the palette index
	//
	// Returns:
	//   - int: the sub-group count
	SubGroupCount(colorIndex int) int

	// Assign returns the sub-group a pixel belongs to, ignoring the center override.
	// The result lies in [0, SubGroupCount(colorIndex)-1].
	//
	// Parameters:
	//   - colorIndex: the pixel's palette index
	//   - row, col: the pixel's grid position (non-negative)
	//
	// Returns:
	//   - int: the sub-group index
	Assign(colorIndex, row, col int) int

	// Route returns the batch a pixel belongs to, applying the center override: the designated
	// center pixel always lands in (background, 0) regardless of its color or hash.
	//
	// Parameters:
	//   - colorIndex: the pixel's palette index
	//   - row, col: the pixel's grid position
	//
	// Returns:
	//   - int: the color bucket
	//   - int: the sub-group index
	Route(colorIndex, row, col int) (int, int)

	// Config returns the constants the assigner was built with.
	//
	// Returns:
	//   - AssignerConfig: the configuration
	Config() AssignerConfig
}

var _ Assigner = &assigner{}

// NewAssigner validates cfg and creates an Assigner.
//
// Parameters:
//   - cfg: the assignment constants
//
// Returns:
//   - Assigner: the assigner
//   - error: common.ErrDegenerateGroupConfiguration if cfg.SubGroups < 2
func NewAssigner(cfg AssignerConfig) (Assigner, error) {
	if cfg.SubGroups < 2 {
		return nil, fmt.Errorf("assigner: sub-group count %d (need >= 2): %w", cfg.SubGroups, common.ErrDegenerateGroupConfiguration)
	}
	return &assigner{cfg: cfg}, nil
}

func (a *assigner) SubGroupCount(colorIndex int) int {
	if colorIndex == palette.BackgroundIndex {
		return BackgroundMultiplier * a.cfg.SubGroups
	}
	return a.cfg.SubGroups
}

func (a *assigner) Assign(colorIndex, row, col int) int {
	r, c := uint64(row), uint64(col)
	h := r + c + r*r*c
	h >>= a.cfg.HashShift
	return int(h % uint64(a.SubGroupCount(colorIndex)-1))
}

func (a *assigner) Route(colorIndex, row, col int) (int, int) {
	if row == a.cfg.CenterRow && col == a.cfg.CenterCol {
		return palette.BackgroundIndex, 0
	}
	return colorIndex, a.Assign(colorIndex, row, col)
}

func (a *assigner) Config() AssignerConfig {
	return a.cfg
}

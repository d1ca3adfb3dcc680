package common

import "errors"

var (
	// ErrInvalidPaletteIndex is returned when a palette lookup misses. During startup this means the
	// source grid references a color the palette does not define.
	ErrInvalidPaletteIndex = errors.New("invalid palette index")

	// ErrDegenerateGroupConfiguration is returned when the configured sub-group count would make the
	// group assignment divisor zero (sub-group count < 2).
	ErrDegenerateGroupConfiguration = errors.New("degenerate group configuration")

	// ErrOutOfBounds is returned when a coordinate maps outside the grid extents.
	// Callers should treat it as "no pixel under the cursor".
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidConfiguration is returned when a sizing or layout constant is unusable.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRaggedGrid is returned when grid rows do not all share the same length, or the grid is empty.
	ErrRaggedGrid = errors.New("ragged or empty grid")
)

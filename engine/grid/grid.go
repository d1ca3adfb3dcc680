package grid

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pixels/common"
)

// grid is the implementation of the Grid interface.
// Cells are stored in a single row-major slice.
type grid struct {
	rows, cols int
	cells      []uint8
}

// Grid is an immutable 2D array of palette indices in row-major order.
// It is loaded once at startup and shared read-only by the batch builder and coordinate mapping.
type Grid interface {
	// Rows returns the number of rows.
	//
	// Returns:
	//   - int: the row count
	Rows() int

	// Cols returns the number of columns.
	//
	// Returns:
	//   - int: the column count
	Cols() int

	// Len returns the total number of cells (Rows * Cols).
	//
	// Returns:
	//   - int: the cell count
	Len() int

	// At returns the palette index stored at (row, col) without bounds checks beyond the slice's own.
	// Use Lookup for checked access.
	//
	// Parameters:
	//   - row: the row index
	//   - col: the column index
	//
	// Returns:
	//   - int: the palette index
	At(row, col int) int

	// Lookup returns the palette index stored at (row, col).
	//
	// Parameters:
	//   - row: the row index
	//   - col: the column index
	//
	// Returns:
	//   - int: the palette index
	//   - error: common.ErrOutOfBounds if (row, col) lies outside the grid
	Lookup(row, col int) (int, error)

	// Contains reports whether (row, col) lies inside the grid.
	//
	// Parameters:
	//   - row: the row index
	//   - col: the column index
	//
	// Returns:
	//   - bool: true if the cell exists
	Contains(row, col int) bool

	// MaxIndex returns the largest palette index present in the grid.
	//
	// Returns:
	//   - int: the largest index
	MaxIndex() int
}

var _ Grid = &grid{}

// NewGrid builds a Grid from rows of palette indices. Every row must have the same, non-zero length.
// The input is copied; later mutation of rows does not affect the Grid.
//
// Parameters:
//   - rows: the palette indices, one slice per row
//
// Returns:
//   - Grid: the immutable grid
//   - error: common.ErrRaggedGrid if the grid is empty or rows differ in length
func NewGrid(rows [][]uint8) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: %w", common.ErrRaggedGrid)
	}
	cols := len(rows[0])
	g := &grid{
		rows:  len(rows),
		cols:  cols,
		cells: make([]uint8, 0, len(rows)*cols),
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d: %w", r, len(row), cols, common.ErrRaggedGrid)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

func (g *grid) Rows() int {
	return g.rows
}

func (g *grid) Cols() int {
	return g.cols
}

func (g *grid) Len() int {
	return len(g.cells)
}

func (g *grid) At(row, col int) int {
	return int(g.cells[row*g.cols+col])
}

func (g *grid) Lookup(row, col int) (int, error) {
	if !g.Contains(row, col) {
		return 0, fmt.Errorf("grid: (%d, %d) outside %dx%d: %w", row, col, g.rows, g.cols, common.ErrOutOfBounds)
	}
	return g.At(row, col), nil
}

func (g *grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *grid) MaxIndex() int {
	m := 0
	for _, c := range g.cells {
		if int(c) > m {
			m = int(c)
		}
	}
	return m
}

package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
)

// loaderBackend defines the generic interface for decoding a grid from a stream.
// Concrete implementations (textLoaderBackend, imageLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Decode reads every row of palette indices from the stream.
	//
	// Parameters:
	//   - r: the reader providing grid data
	//   - p: the active palette; backends that do not quantize may ignore it
	//
	// Returns:
	//   - [][]uint8: the decoded rows, row-major
	//   - error: error if decoding fails
	Decode(r io.Reader, p palette.Palette) ([][]uint8, error)
}

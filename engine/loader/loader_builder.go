package loader

import (
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithPalette is an option builder that sets the palette used to quantize raster images.
//
// Parameters:
//   - p: the palette
//
// Returns:
//   - LoaderBuilderOption: a function that applies the palette option to a loader
func WithPalette(p palette.Palette) LoaderBuilderOption {
	return func(l *loader) {
		l.palette = p
	}
}

// WithGrid is an option builder that pre-populates the grid cache with a grid.
//
// Parameters:
//   - key: the cache key for the grid
//   - g: the grid to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the grid option to a loader
func WithGrid(key string, g grid.Grid) LoaderBuilderOption {
	return func(l *loader) {
		l.gridCache[key] = g
	}
}

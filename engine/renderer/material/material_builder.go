package material

import (
	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
)

// PixelMaterialBuilderOption is a function that configures a pixel material instance during construction.
type PixelMaterialBuilderOption func(*pixelMaterial)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.name = name
	}
}

// WithColor is an option builder that sets the fill color of the material.
//
// Parameters:
//   - color: the fill color
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.RGB) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.color = color
	}
}

// WithSize is an option builder that sets both the live and the committed pixel size.
//
// Parameters:
//   - size: the initial pixel size in world units
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the size option to a material
func WithSize(size float32) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.size = size
		m.committedSize = size
	}
}

// WithDepthCompensation is an option builder that sets the initial depth compensation factor.
//
// Parameters:
//   - v: the factor (1 leaves quads at their nominal size)
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the depth compensation option to a material
func WithDepthCompensation(v float32) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.depthCompensation = v
	}
}

// WithDepthOffset is an option builder that sets the initial z translation of the batch.
//
// Parameters:
//   - z: the offset along the z axis
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the depth offset option to a material
func WithDepthOffset(z float32) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.depthOffset = z
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider for the material.
//
// Parameters:
//   - provider: the bind group provider containing GPU resources for the material
//
// Returns:
//   - PixelMaterialBuilderOption: a function that applies the bind group provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) PixelMaterialBuilderOption {
	return func(m *pixelMaterial) {
		m.bindGroupProvider = provider
	}
}

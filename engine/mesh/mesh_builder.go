package mesh

import (
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/material"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithMaterial is an option builder that sets the per-batch material of the Mesh.
// When omitted, NewMesh creates a default PixelMaterial named after the mesh.
//
// Parameters:
//   - mat: the material to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the material option to a mesh
func WithMaterial(mat material.PixelMaterial) MeshBuilderOption {
	return func(m *mesh) {
		m.material = mat
	}
}

// WithMeshProvider is an option builder that replaces the BindGroupProvider holding the vertex buffers.
//
// Parameters:
//   - provider: the mesh provider to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the mesh provider option to a mesh
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) MeshBuilderOption {
	return func(m *mesh) {
		m.meshProvider = provider
	}
}

package scene

import "github.com/Carmen-Shannon/oxy-pixels/engine/renderer/bind_group_provider"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithWriteCapacity pre-sizes the per-frame buffer write slice.
// A pixel field needs at most two writes per batch plus one for the camera.
//
// Parameters:
//   - n: the expected number of writes per Flush
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWriteCapacity(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 0 {
			n = 0
		}
		s.writePool = make([]bind_group_provider.BufferWrite, 0, n)
	}
}

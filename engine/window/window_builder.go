package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size in screen coordinates.
// The framebuffer may be larger on high-DPI displays; Width and Height report the framebuffer.
//
// Parameters:
//   - width: initial width
//   - height: initial height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.initWidth = width
		w.initHeight = height
	}
}

// WithSizeLimits bounds the window size during resize. A zero bound is left unconstrained.
//
// Parameters:
//   - minWidth: minimum width
//   - minHeight: minimum height
//   - maxWidth: maximum width
//   - maxHeight: maximum height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestCursorScaling(t *testing.T) {
	w := &engineWindow{}
	w.setCursorScale(1, 1)
	x, y := w.toFramebuffer(10.7, 20.2)
	assert.Equal(t, int32(10), x)
	assert.Equal(t, int32(20), y)

	// High-DPI: two framebuffer pixels per window coordinate.
	w.setCursorScale(2, 2)
	x, y = w.toFramebuffer(10.5, 20)
	assert.Equal(t, int32(21), x)
	assert.Equal(t, int32(40), y)
}

func TestSizeIsShared(t *testing.T) {
	w := &engineWindow{}
	w.setSize(1920, 1080)
	assert.Equal(t, 1920, w.Width())
	assert.Equal(t, 1080, w.Height())
}

func TestSizeLimit(t *testing.T) {
	assert.Equal(t, glfw.DontCare, sizeLimit(0))
	assert.Equal(t, 800, sizeLimit(800))
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("mosaic"),
		WithSize(640, 480),
		WithSizeLimits(100, 100, 0, 0),
	} {
		opt(w)
	}
	assert.Equal(t, "mosaic", w.title)
	assert.Equal(t, 640, w.initWidth)
	assert.Equal(t, 480, w.initHeight)
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 0, w.maxWidth)
}

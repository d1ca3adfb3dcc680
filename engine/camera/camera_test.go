package camera

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerZoomClamps(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 10),
		WithZoomBounds(2, 20),
		WithZoomSpeed(1),
	)

	cc.Zoom(3)
	_, _, z := cc.Position()
	assert.Equal(t, float32(7), z)

	cc.Zoom(100)
	_, _, z = cc.Position()
	assert.Equal(t, float32(2), z)

	cc.Zoom(-100)
	_, _, z = cc.Position()
	assert.Equal(t, float32(20), z)
}

func TestControllerInitialZClamped(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 1000), WithZoomBounds(1, 50))
	_, _, z := cc.Position()
	assert.Equal(t, float32(50), z)
}

func TestControllerPanAndTarget(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 30), WithPanSpeed(2))
	cc.Pan(1, -1)

	x, y, z := cc.Position()
	assert.Equal(t, [3]float32{3, 0, 30}, [3]float32{x, y, z})

	tx, ty, tz := cc.Target()
	assert.Equal(t, [3]float32{3, 0, 0}, [3]float32{tx, ty, tz})
}

func TestControllerLastMoved(t *testing.T) {
	now := time.Unix(100, 0)
	cc := NewCameraController(WithClock(func() time.Time { return now }))
	assert.True(t, cc.LastMoved().IsZero())

	cc.Zoom(1)
	assert.Equal(t, now, cc.LastMoved())

	now = now.Add(time.Second)
	cc.Pan(0, 0)
	assert.Equal(t, time.Unix(100, 0), cc.LastMoved(), "a no-op pan is not a movement")

	cc.Pan(1, 0)
	assert.Equal(t, now, cc.LastMoved())
}

func TestCameraZoomAndFov(t *testing.T) {
	c := NewCamera(WithFovDegrees(50), WithController(NewCameraController(WithPosition(0, 0, 30))))
	assert.Equal(t, float32(50), c.FovDegrees())
	assert.Equal(t, float32(30), c.Zoom())

	assert.Equal(t, float32(0), NewCamera().Zoom())
}

func TestWorldUnitsPerPixel(t *testing.T) {
	c := NewCamera(WithFovDegrees(90), WithController(NewCameraController(WithPosition(0, 0, 10))))
	assert.InDelta(t, 0.2, c.WorldUnitsPerPixel(100), 1e-5)
	assert.Equal(t, float32(0), c.WorldUnitsPerPixel(0))
}

func TestUnproject(t *testing.T) {
	ctrl := NewCameraController(WithPosition(5, -3, 10))
	c := NewCamera(WithFovDegrees(90), WithAspect(1), WithNear(1), WithFar(100), WithController(ctrl))

	x, y, ok := c.Unproject(50, 50, 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 5, x, 1e-2)
	assert.InDelta(t, -3, y, 1e-2)

	// Screen up is -X and screen right is +Y.
	x, y, ok = c.Unproject(50, 0, 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 5-10, x, 1e-2)
	assert.InDelta(t, -3, y, 1e-2)

	x, y, ok = c.Unproject(100, 50, 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 5, x, 1e-2)
	assert.InDelta(t, -3+10, y, 1e-2)

	_, _, ok = c.Unproject(0, 0, 0, 100)
	assert.False(t, ok)
}

func TestProjectionDepthRange(t *testing.T) {
	c := NewCamera(WithNear(1), WithFar(100), WithController(NewCameraController(WithPosition(0, 0, 50))))
	vp := c.ViewProjectionMatrix()

	depth := func(z float32) float32 {
		// Column-major: clip = vp * (0, 0, z, 1).
		clipZ := vp[10]*z + vp[14]
		clipW := vp[11]*z + vp[15]
		return clipZ / clipW
	}
	assert.InDelta(t, 0, depth(49), 1e-4, "near plane maps to 0")
	assert.InDelta(t, 1, depth(-50), 1e-4, "far plane maps to 1")
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithPosition(1, 2, 3))))
	u := c.Uniform()
	assert.Equal(t, [3]float32{1, 2, 3}, u.Eye)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.InDelta(t, math.Tan(25*math.Pi/180), u.TanHalfFov, 1e-6)

	buf := u.Marshal()
	require.Len(t, buf, u.Size())
	assert.Equal(t, u.ViewProj[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Equal(t, u.TanHalfFov, math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
}

package pixel_group

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssigner(t *testing.T, g int) Assigner {
	t.Helper()
	a, err := NewAssigner(AssignerConfig{SubGroups: g, HashShift: DefaultHashShift})
	require.NoError(t, err)
	return a
}

func TestNewAssigner_RejectsDegenerate(t *testing.T) {
	for _, g := range []int{-1, 0, 1} {
		_, err := NewAssigner(AssignerConfig{SubGroups: g})
		assert.ErrorIs(t, err, common.ErrDegenerateGroupConfiguration, "G=%d", g)
	}
}

func TestSubGroupCount(t *testing.T) {
	a := newTestAssigner(t, 8)
	assert.Equal(t, 24, a.SubGroupCount(0))
	assert.Equal(t, 8, a.SubGroupCount(1))
	assert.Equal(t, 8, a.SubGroupCount(15))
}

func TestAssign_KnownValues(t *testing.T) {
	a := newTestAssigner(t, 8)

	// h = 5 + 7 + 25*7 = 187, 187>>3 = 23
	assert.Equal(t, 23%7, a.Assign(1, 5, 7))
	assert.Equal(t, 23%23, a.Assign(0, 5, 7))

	// h = 10 + 3 + 100*3 = 313, 313>>3 = 39
	assert.Equal(t, 4, a.Assign(2, 10, 3))
	assert.Equal(t, 16, a.Assign(0, 10, 3))
}

func TestAssign_RangeAndDeterminism(t *testing.T) {
	for _, g := range []int{2, 3, 8} {
		a := newTestAssigner(t, g)
		for color := 0; color < 4; color++ {
			n := a.SubGroupCount(color)
			for row := 0; row < 64; row++ {
				for col := 0; col < 64; col++ {
					sg := a.Assign(color, row, col)
					assert.GreaterOrEqual(t, sg, 0)
					assert.LessOrEqual(t, sg, n-2)
					assert.Equal(t, sg, a.Assign(color, row, col))
				}
			}
		}
	}
}

func TestAssign_LargeCoordinatesDoNotOverflow(t *testing.T) {
	a := newTestAssigner(t, 8)
	sg := a.Assign(1, 1<<20, 1<<20)
	assert.GreaterOrEqual(t, sg, 0)
	assert.Less(t, sg, 8)
}

func TestRoute_CenterOverride(t *testing.T) {
	a, err := NewAssigner(AssignerConfig{SubGroups: 4, HashShift: 3, CenterRow: 12, CenterCol: 40})
	require.NoError(t, err)

	for color := 0; color < 5; color++ {
		c, sg := a.Route(color, 12, 40)
		assert.Equal(t, 0, c)
		assert.Equal(t, 0, sg)
	}

	c, sg := a.Route(3, 12, 41)
	assert.Equal(t, 3, c)
	assert.Equal(t, a.Assign(3, 12, 41), sg)
}

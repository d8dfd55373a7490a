// SPDX-License-Identifier: MIT

package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowacc/raster"
)

// TestDirection_Offsets pins the code layout: counter-clockwise from west.
func TestDirection_Offsets(t *testing.T) {
	want := map[raster.Direction][2]int{
		raster.NoFlow: {0, 0},
		raster.W:      {-1, 0},
		raster.NW:     {-1, -1},
		raster.N:      {0, -1},
		raster.NE:     {1, -1},
		raster.E:      {1, 0},
		raster.SE:     {1, 1},
		raster.S:      {0, 1},
		raster.SW:     {-1, 1},
	}
	for d, off := range want {
		x, y := d.Offset()
		assert.Equal(t, off, [2]int{x, y}, "Offset(%s)", d)
	}
	assert.Equal(t, 5*1+1, raster.SE.Shift(5))
	assert.Equal(t, -5, raster.N.Shift(5))
}

// TestDirection_Inverse checks that inverse offsets cancel out.
func TestDirection_Inverse(t *testing.T) {
	for _, d := range raster.Neighbors(raster.Conn8) {
		inv := d.Inverse()
		x1, y1 := d.Offset()
		x2, y2 := inv.Offset()
		assert.Equal(t, 0, x1+x2, "%s/%s", d, inv)
		assert.Equal(t, 0, y1+y2, "%s/%s", d, inv)
		assert.Equal(t, d, inv.Inverse())
	}
	assert.Equal(t, raster.NoFlow, raster.NoFlow.Inverse())
	assert.Equal(t, raster.NoFlow, raster.Direction(9).Inverse())
}

// TestDirection_Validity covers Valid, IsCardinal and Connectivity.Allows.
func TestDirection_Validity(t *testing.T) {
	assert.True(t, raster.NoFlow.Valid())
	assert.True(t, raster.SW.Valid())
	assert.False(t, raster.Direction(9).Valid())

	assert.Equal(t, []raster.Direction{raster.W, raster.N, raster.E, raster.S}, raster.Neighbors(raster.Conn4))
	assert.Len(t, raster.Neighbors(raster.Conn8), 8)
	assert.Equal(t, [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}, raster.NeighborOffsets(raster.Conn4))

	assert.True(t, raster.Conn4.Allows(raster.NoFlow))
	assert.True(t, raster.Conn4.Allows(raster.E))
	assert.False(t, raster.Conn4.Allows(raster.NE))
	assert.True(t, raster.Conn8.Allows(raster.NE))
	assert.False(t, raster.Conn8.Allows(raster.Direction(12)))
}

// TestParseDirection round-trips compass names.
func TestParseDirection(t *testing.T) {
	for d := raster.NoFlow; d <= raster.MaxDirection; d++ {
		got, err := raster.ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	got, err := raster.ParseDirection("se")
	require.NoError(t, err)
	assert.Equal(t, raster.SE, got)

	_, err = raster.ParseDirection("up")
	assert.ErrorIs(t, err, raster.ErrOutOfRange)
	assert.Equal(t, "Direction(42)", raster.Direction(42).String())
}

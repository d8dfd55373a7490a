// SPDX-License-Identifier: MIT

package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowacc/raster"
)

// TestProportions_SetAndShares checks slot addressing and share listing.
func TestProportions_SetAndShares(t *testing.T) {
	p, err := raster.NewProportions(3, 3)
	require.NoError(t, err)
	center := p.XYToI(1, 1)

	require.NoError(t, p.Set(center, raster.E, 0.25))
	require.NoError(t, p.Set(center, raster.S, 0.5))
	assert.Equal(t, float32(0.25), p.Fraction(center, raster.E))
	assert.Equal(t, float32(0), p.Fraction(center, raster.NoFlow))
	assert.InDelta(t, 0.75, p.Total(center), 1e-9)
	assert.Equal(t, []raster.Share{
		{Dir: raster.E, Fraction: 0.25},
		{Dir: raster.S, Fraction: 0.5},
	}, p.Shares(center))

	row := p.Row(center)
	assert.Len(t, row, 8)
	assert.Equal(t, float32(0.25), row[int(raster.E)-1])

	p.SetNoFlow(center)
	assert.Empty(t, p.Shares(center))
	assert.Zero(t, p.Total(center))
}

// TestProportions_Errors covers out-of-range writes and bad shapes.
func TestProportions_Errors(t *testing.T) {
	_, err := raster.NewProportions(0, 1)
	assert.ErrorIs(t, err, raster.ErrBadShape)

	p, err := raster.NewProportions(2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Set(4, raster.E, 1), raster.ErrOutOfRange)
	assert.ErrorIs(t, p.Set(0, raster.NoFlow, 1), raster.ErrOutOfRange)
	assert.ErrorIs(t, p.Set(0, raster.Direction(9), 1), raster.ErrOutOfRange)
}

// TestProportions_NoData checks the mask.
func TestProportions_NoData(t *testing.T) {
	p, err := raster.NewProportions(2, 2)
	require.NoError(t, err)
	p.SetNoData(3, true)
	assert.True(t, p.IsNoData(3))
	assert.Equal(t, 3, p.CountData())
	assert.Equal(t, raster.Shape{Width: 2, Height: 2}, p.Shape())
}

// SPDX-License-Identifier: MIT

package flowdir_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowacc/flowdir"
	"github.com/katalvlaran/flowacc/raster"
)

const nd = raster.DirectionNoData

// TestFromDirections maps D8 codes to unit fractions.
func TestFromDirections(t *testing.T) {
	dirs, err := raster.FromRows([][]uint8{
		{uint8(raster.E), uint8(raster.S)},
		{nd, uint8(raster.NoFlow)},
	}, nd)
	require.NoError(t, err)

	props, err := flowdir.FromDirections(dirs)
	require.NoError(t, err)
	assert.Equal(t, []raster.Share{{Dir: raster.E, Fraction: 1}}, props.Shares(0))
	assert.Equal(t, []raster.Share{{Dir: raster.S, Fraction: 1}}, props.Shares(1))
	assert.True(t, props.IsNoData(2))
	assert.Empty(t, props.Shares(3))
	assert.False(t, props.IsNoData(3))
}

// TestFromDirections_BadCode rejects codes outside 0..8.
func TestFromDirections_BadCode(t *testing.T) {
	dirs, err := raster.FromRows([][]uint8{{9}}, nd)
	require.NoError(t, err)
	_, err = flowdir.FromDirections(dirs)
	assert.ErrorIs(t, err, raster.ErrOutOfRange)
}

// TestStaticProviders checks shape validation and cancellation.
func TestStaticProviders(t *testing.T) {
	elev, err := raster.New[float64](2, 2, -9999)
	require.NoError(t, err)
	dirs, err := raster.New[uint8](2, 2, nd)
	require.NoError(t, err)
	props, err := raster.NewProportions(2, 2)
	require.NoError(t, err)
	wide, err := raster.New[float64](3, 2, -9999)
	require.NoError(t, err)

	ctx := context.Background()
	got, err := flowdir.StaticDirections(dirs).Directions(ctx, elev)
	require.NoError(t, err)
	assert.Same(t, dirs, got)

	gotP, err := flowdir.StaticProportions(props).Proportions(ctx, elev)
	require.NoError(t, err)
	assert.Same(t, props, gotP)

	_, err = flowdir.StaticDirections(dirs).Directions(ctx, wide)
	assert.ErrorIs(t, err, flowdir.ErrShapeMismatch)
	_, err = flowdir.StaticProportions(props).Proportions(ctx, wide)
	assert.ErrorIs(t, err, flowdir.ErrShapeMismatch)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = flowdir.StaticDirections(dirs).Directions(cancelled, elev)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestFuncAdapters verifies the adapters forward their arguments.
func TestFuncAdapters(t *testing.T) {
	elev, err := raster.New[float64](1, 1, -9999)
	require.NoError(t, err)

	var seen *raster.Grid[float64]
	var p flowdir.DirectionProvider = flowdir.DirectionFunc(func(_ context.Context, e *raster.Grid[float64]) (*raster.Grid[uint8], error) {
		seen = e
		return raster.New[uint8](1, 1, nd)
	})
	_, err = p.Directions(context.Background(), elev)
	require.NoError(t, err)
	assert.Same(t, elev, seen)

	var q flowdir.ProportionProvider = flowdir.ProportionFunc(func(_ context.Context, e *raster.Grid[float64]) (*raster.Proportions, error) {
		return raster.NewProportions(e.Width(), e.Height())
	})
	props, err := q.Proportions(context.Background(), elev)
	require.NoError(t, err)
	assert.Equal(t, 1, props.Size())
}

// SPDX-License-Identifier: MIT

package flowdir

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/flowacc/raster"
)

// ErrShapeMismatch indicates a precomputed field whose shape differs from the
// elevation grid it is paired with.
var ErrShapeMismatch = errors.New("flowdir: flow field shape does not match elevation grid")

// DirectionProvider derives a single-direction field from elevations. The
// result uses raster.DirectionNoData (or its own declared sentinel) for cells
// the model leaves undefined.
type DirectionProvider interface {
	Directions(ctx context.Context, elev *raster.Grid[float64]) (*raster.Grid[uint8], error)
}

// ProportionProvider derives a multiple-flow-direction field from elevations.
type ProportionProvider interface {
	Proportions(ctx context.Context, elev *raster.Grid[float64]) (*raster.Proportions, error)
}

// DirectionFunc adapts a function to DirectionProvider.
type DirectionFunc func(ctx context.Context, elev *raster.Grid[float64]) (*raster.Grid[uint8], error)

// Directions calls f.
func (f DirectionFunc) Directions(ctx context.Context, elev *raster.Grid[float64]) (*raster.Grid[uint8], error) {
	return f(ctx, elev)
}

// ProportionFunc adapts a function to ProportionProvider.
type ProportionFunc func(ctx context.Context, elev *raster.Grid[float64]) (*raster.Proportions, error)

// Proportions calls f.
func (f ProportionFunc) Proportions(ctx context.Context, elev *raster.Grid[float64]) (*raster.Proportions, error) {
	return f(ctx, elev)
}

// StaticDirections serves a precomputed direction grid, e.g. one decoded from
// disk. The elevation grid is only used to check the shape.
func StaticDirections(dirs *raster.Grid[uint8]) DirectionProvider {
	return DirectionFunc(func(ctx context.Context, elev *raster.Grid[float64]) (*raster.Grid[uint8], error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !dirs.Shape().Equal(elev.Shape()) {
			return nil, fmt.Errorf("%w: directions %s, elevation %s", ErrShapeMismatch, dirs.Shape(), elev.Shape())
		}

		return dirs, nil
	})
}

// StaticProportions serves a precomputed proportion field.
func StaticProportions(props *raster.Proportions) ProportionProvider {
	return ProportionFunc(func(ctx context.Context, elev *raster.Grid[float64]) (*raster.Proportions, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !props.Shape().Equal(elev.Shape()) {
			return nil, fmt.Errorf("%w: proportions %s, elevation %s", ErrShapeMismatch, props.Shape(), elev.Shape())
		}

		return props, nil
	})
}

// FromDirections converts a D8 field into the equivalent proportion field:
// every routed cell sends fraction 1 toward its single direction, NoFlow
// cells stay terminal and no-data cells stay no-data. Codes outside 0..8 on
// data cells yield raster.ErrOutOfRange.
// Complexity: O(W×H).
func FromDirections(dirs *raster.Grid[uint8]) (*raster.Proportions, error) {
	props, err := raster.NewProportions(dirs.Width(), dirs.Height())
	if err != nil {
		return nil, err
	}
	for i := 0; i < dirs.Size(); i++ {
		if dirs.IsNoData(i) {
			props.SetNoData(i, true)
			continue
		}
		d := raster.Direction(dirs.At(i))
		if d == raster.NoFlow {
			continue
		}
		if err = props.Set(i, d, 1); err != nil {
			return nil, fmt.Errorf("FromDirections: %w", err)
		}
	}

	return props, nil
}

// SPDX-License-Identifier: MIT

package accum

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowacc/raster"
)

// Validators run before any register is allocated, so a rejected input never
// leaves partial state behind. Each returns a sentinel wrapped with the
// offending cell.

// validateShape checks the input against the optional reference shape.
func validateShape(got raster.Shape, o Options) error {
	if o.reference != nil && !o.reference.Equal(got) {
		return fmt.Errorf("%w: input %s, reference %s", ErrDimensionMismatch, got, *o.reference)
	}

	return nil
}

// validateDirections checks every data cell holds a code legal under conn.
// Complexity: O(W×H).
func validateDirections(dirs *raster.Grid[uint8], conn raster.Connectivity) error {
	for i, v := range dirs.Data() {
		if dirs.IsNoData(i) {
			continue
		}
		if !conn.Allows(raster.Direction(v)) {
			x, y := dirs.IToXY(i)
			return fmt.Errorf("%w: cell (%d,%d) has code %d under %s", ErrInvalidDirection, x, y, v, conn)
		}
	}

	return nil
}

// validateProportions checks fractions are finite, in [0,1], sum to at most
// 1+eps, and use no diagonal under Conn4.
// Complexity: O(W×H×8).
func validateProportions(props *raster.Proportions, conn raster.Connectivity, eps float64) error {
	for i := 0; i < props.Size(); i++ {
		if props.IsNoData(i) {
			continue
		}
		var sum float64
		for k, f := range props.Row(i) {
			v := float64(f)
			d := raster.Direction(k + 1)
			if math.IsNaN(v) || v < 0 || v > 1 || (v > 0 && !conn.Allows(d)) {
				x, y := props.IToXY(i)
				return fmt.Errorf("%w: cell (%d,%d) sends %g toward %s under %s", ErrInvalidFraction, x, y, v, d, conn)
			}
			sum += v
		}
		if sum > 1+eps {
			x, y := props.IToXY(i)
			return fmt.Errorf("%w: cell (%d,%d) fractions sum to %g", ErrInvalidFraction, x, y, sum)
		}
	}

	return nil
}

// validateWeights checks the weight grid matches and is finite and
// non-negative on data cells, so no result can collide with WeightNoData.
func validateWeights(w *raster.Grid[float64], shape raster.Shape, isNoData func(int) bool) error {
	if w == nil {
		return nil
	}
	if !w.Shape().Equal(shape) {
		return fmt.Errorf("%w: weights %s, input %s", ErrDimensionMismatch, w.Shape(), shape)
	}
	for i, v := range w.Data() {
		if isNoData(i) {
			continue
		}
		if w.IsNoData(i) || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			x, y := w.IToXY(i)
			return fmt.Errorf("%w: cell (%d,%d) has weight %g", ErrInvalidWeight, x, y, v)
		}
	}

	return nil
}

// checkCountCapacity enforces the uint32 register bound of counting mode.
func checkCountCapacity(dataCells int) error {
	if int64(dataCells) > maxCountCells {
		return fmt.Errorf("%w: %d cells exceed uint32 counting capacity", ErrOverflowRisk, dataCells)
	}

	return nil
}

// checkWeightCapacity bounds weighting mode to exactly representable counts.
func checkWeightCapacity(dataCells int) error {
	if int64(dataCells) > maxWeightCells {
		return fmt.Errorf("%w: %d cells exceed float64 exact range", ErrOverflowRisk, dataCells)
	}

	return nil
}

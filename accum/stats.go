// SPDX-License-Identifier: MIT

package accum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flowacc/raster"
)

// Summary describes a finished accumulation.
type Summary struct {
	// Cells is the number of routed cells (nodes) under the border policy.
	Cells int `json:"cells"`
	// Terminals counts nodes with no deliverable outgoing edge: sinks, cells
	// draining off the grid, into no-data, or into an ignored border.
	Terminals int `json:"terminals"`
	// Outflow is the accumulation that leaves the network at terminals and
	// through fraction remainders. With unit contributions and fractions
	// summing to 0 or 1 it equals Cells.
	Outflow float64 `json:"outflow"`
	// Max is the largest accumulation of any node.
	Max float64 `json:"max"`
	// Total is the sum of accumulations over all nodes.
	Total float64 `json:"total"`
}

// Summarize derives a Summary from a single-direction field and the result
// FromDirections returned for it. Only WithBorder and WithConnectivity are
// consulted; they must match the run.
// Complexity: O(W×H).
func Summarize(dirs *raster.Grid[uint8], acc *raster.Grid[uint32], opts ...Option) (Summary, error) {
	if dirs == nil || acc == nil {
		return Summary{}, fmt.Errorf("Summarize: %w", ErrNilGrid)
	}
	if !dirs.Shape().Equal(acc.Shape()) {
		return Summary{}, fmt.Errorf("Summarize: %w: directions %s, result %s", ErrDimensionMismatch, dirs.Shape(), acc.Shape())
	}
	o := gatherOptions(opts...)
	t := newTopology(dirs.Shape(), o.border, dirs.IsNoData)

	values := make([]float64, 0, t.nodes)
	lost := make([]float64, 0, t.nodes)
	terminals := 0
	for i, code := range dirs.Data() {
		if t.skip[i] {
			continue
		}
		v := float64(acc.At(i))
		values = append(values, v)

		x, y := t.shape.IToXY(i)
		d := raster.Direction(code)
		if _, ok := t.target(x, y, d); d == raster.NoFlow || !ok {
			terminals++
			lost = append(lost, v)
		}
	}

	return summarize(values, lost, terminals), nil
}

// SummarizeProportional derives a Summary from a proportion field and the
// result FromProportions returned for it. A node is terminal when none of
// its fractions reach a deliverable target; every node loses
// accumulation×(1 − deliverable fraction sum) to Outflow.
// Complexity: O(W×H×8).
func SummarizeProportional(props *raster.Proportions, acc *raster.Grid[float64], opts ...Option) (Summary, error) {
	if props == nil || acc == nil {
		return Summary{}, fmt.Errorf("SummarizeProportional: %w", ErrNilGrid)
	}
	if !props.Shape().Equal(acc.Shape()) {
		return Summary{}, fmt.Errorf("SummarizeProportional: %w: proportions %s, result %s", ErrDimensionMismatch, props.Shape(), acc.Shape())
	}
	o := gatherOptions(opts...)
	t := newTopology(props.Shape(), o.border, props.IsNoData)

	values := make([]float64, 0, t.nodes)
	lost := make([]float64, 0, t.nodes)
	terminals := 0
	for i := 0; i < props.Size(); i++ {
		if t.skip[i] {
			continue
		}
		v := acc.At(i)
		values = append(values, v)

		x, y := t.shape.IToXY(i)
		var delivered float64
		for k, f := range props.Row(i) {
			if f == 0 {
				continue
			}
			if _, ok := t.target(x, y, raster.Direction(k+1)); ok {
				delivered += float64(f)
			}
		}
		if delivered == 0 {
			terminals++
		}
		if remainder := 1 - delivered; remainder > 0 {
			lost = append(lost, v*remainder)
		}
	}

	return summarize(values, lost, terminals), nil
}

func summarize(values, lost []float64, terminals int) Summary {
	s := Summary{Cells: len(values), Terminals: terminals}
	if len(values) == 0 {
		return s
	}
	s.Max = floats.Max(values)
	s.Total = floats.Sum(values)
	s.Outflow = floats.Sum(lost)

	return s
}

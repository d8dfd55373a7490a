// SPDX-License-Identifier: MIT

package accum_test

import (
	"fmt"

	"github.com/katalvlaran/flowacc/accum"
	"github.com/katalvlaran/flowacc/flowdir"
	"github.com/katalvlaran/flowacc/raster"
)

// ExampleFromDirections accumulates a 3×3 field in which every cell drains
// into the centre.
func ExampleFromDirections() {
	const (
		se, s, sw = uint8(raster.SE), uint8(raster.S), uint8(raster.SW)
		e, o, w   = uint8(raster.E), uint8(raster.NoFlow), uint8(raster.W)
		ne, n, nw = uint8(raster.NE), uint8(raster.N), uint8(raster.NW)
	)
	dirs, _ := raster.FromRows([][]uint8{
		{se, s, sw},
		{e, o, w},
		{ne, n, nw},
	}, raster.DirectionNoData)

	acc, err := accum.FromDirections(dirs)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range acc.Rows() {
		fmt.Println(row)
	}
	// Output:
	// [1 1 1]
	// [1 9 1]
	// [1 1 1]
}

// ExampleFromProportions splits the top-left cell's flow evenly east and
// south; both halves meet again in the bottom-right sink.
func ExampleFromProportions() {
	props, _ := raster.NewProportions(2, 2)
	_ = props.Set(0, raster.E, 0.5)
	_ = props.Set(0, raster.S, 0.5)
	_ = props.Set(1, raster.S, 1)
	_ = props.Set(2, raster.E, 1)

	acc, err := accum.FromProportions(props)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range acc.Rows() {
		fmt.Println(row)
	}
	// Output:
	// [1 1.5]
	// [1.5 4]
}

// ExampleCycleError shows the diagnostics of a rejected field.
func ExampleCycleError() {
	dirs, _ := raster.FromRows([][]uint8{{uint8(raster.E), uint8(raster.W)}}, raster.DirectionNoData)

	_, err := accum.FromDirections(dirs)
	fmt.Println(err)
	// Output:
	// FromDirections: accum: cycle detected: 2 cells unresolved, cycle [1 0]
}

// ExampleSummarize reports conservation: every cell leaves exactly once.
func ExampleSummarize() {
	dirs, _ := raster.FromRows([][]uint8{{uint8(raster.E), uint8(raster.E), uint8(raster.NoFlow)}}, raster.DirectionNoData)
	props, _ := flowdir.FromDirections(dirs)

	acc, _ := accum.FromProportions(props)
	s, _ := accum.SummarizeProportional(props, acc)
	fmt.Printf("cells=%d terminals=%d outflow=%g max=%g\n", s.Cells, s.Terminals, s.Outflow, s.Max)
	// Output:
	// cells=3 terminals=1 outflow=3 max=3
}

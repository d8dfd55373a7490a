// SPDX-License-Identifier: MIT

package accum

import "github.com/katalvlaran/flowacc/raster"

// pointsFunc reports whether cell src sends flow toward its neighbour in
// direction d. It encodes the flow field without committing to a model.
type pointsFunc func(src int, d raster.Direction) bool

// topology is the implicit flow graph over a grid: which cells are nodes,
// and where an edge from a cell lands. The dependency scan, the scheduler,
// the cycle search and Summarize all go through target, so counting and
// delivery can never disagree about an edge.
type topology struct {
	shape raster.Shape
	// skip marks cells that are not nodes: no-data cells, plus border cells
	// under BorderIgnore.
	skip  []bool
	nodes int
}

// newTopology builds the node mask from a no-data predicate and the policy.
// Complexity: O(W×H).
func newTopology(shape raster.Shape, border BorderPolicy, isNoData func(i int) bool) *topology {
	t := &topology{shape: shape, skip: make([]bool, shape.Size())}
	for i := range t.skip {
		skip := isNoData(i)
		if !skip && border == BorderIgnore {
			x, y := shape.IToXY(i)
			skip = shape.IsEdgeCell(x, y)
		}
		t.skip[i] = skip
		if !skip {
			t.nodes++
		}
	}

	return t
}

// target returns the index of the neighbour of (x,y) in direction d and
// whether the edge is deliverable: the neighbour is in the grid and is a node.
func (t *topology) target(x, y int, d raster.Direction) (int, bool) {
	ox, oy := d.Offset()
	nx, ny := x+ox, y+oy
	if !t.shape.InGrid(nx, ny) {
		return -1, false
	}
	ni := t.shape.XYToI(nx, ny)
	if t.skip[ni] {
		return -1, false
	}

	return ni, true
}

// inbound counts the nodes that deliver into node i.
func (t *topology) inbound(i int, points pointsFunc) uint8 {
	x, y := t.shape.IToXY(i)
	var n uint8
	for _, d := range raster.Neighbors(raster.Conn8) {
		// Neighbour in direction d delivers to i if it points back along d.Inverse().
		src, ok := t.target(x, y, d)
		if ok && points(src, d.Inverse()) {
			n++
		}
	}

	return n
}

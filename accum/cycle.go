// SPDX-License-Identifier: MIT

package accum

import "github.com/katalvlaran/flowacc/raster"

// findCycle isolates one cycle among the residual nodes of a drain that did
// not complete, returning its cells in flow order.
//
// A node is residual iff its counter is still positive. Every residual node
// has at least one residual predecessor (a finalized one would have
// delivered and decremented), so walking upstream from any residual node
// must eventually revisit a node on the current path: that segment is a
// cycle. Path positions play the role of the Gray colour in a DFS.
//
// Complexity: O(R×8) for R residual nodes.
func findCycle(t *topology, deps []uint8, points pointsFunc) []int {
	start := -1
	for i, n := range deps {
		if n > 0 && !t.skip[i] {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	pos := make(map[int]int)
	var path []int
	for cur := start; cur >= 0; cur = residualPredecessor(t, deps, points, cur) {
		if at, seen := pos[cur]; seen {
			// path runs upstream; reverse the loop into flow order.
			loop := path[at:]
			out := make([]int, len(loop))
			for i, c := range loop {
				out[len(loop)-1-i] = c
			}

			return out
		}
		pos[cur] = len(path)
		path = append(path, cur)
	}

	return nil
}

// residualPredecessor returns a residual node delivering into i, or -1.
func residualPredecessor(t *topology, deps []uint8, points pointsFunc, i int) int {
	x, y := t.shape.IToXY(i)
	for _, d := range raster.Neighbors(raster.Conn8) {
		src, ok := t.target(x, y, d)
		if ok && deps[src] > 0 && points(src, d.Inverse()) {
			return src
		}
	}

	return -1
}

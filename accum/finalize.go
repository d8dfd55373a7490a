// SPDX-License-Identifier: MIT

package accum

import "github.com/katalvlaran/flowacc/raster"

// finalize stamps the output sentinel onto every input no-data cell. It is
// the last mutation of a run and runs only after a clean drain. No-data cells
// are never nodes, so their registers are untouched; the sweep makes that a
// guarantee of the output rather than of the drain.
// Complexity: O(W×H).
func finalize[T raster.Number](out *raster.Grid[T], isNoData func(int) bool) {
	sentinel := out.NoData()
	data := out.Data()
	for i := range data {
		if isNoData(i) {
			data[i] = sentinel
		}
	}
}

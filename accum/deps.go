// SPDX-License-Identifier: MIT

package accum

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker oversubscribes the row bands so uneven no-data regions do
// not leave workers idle.
const bandsPerWorker = 4

// dependencies returns, for every node, the number of distinct upstream
// nodes that deliver into it. Non-nodes keep zero.
//
// The scan pulls instead of pushing: each target counts the neighbours that
// point at it. Every worker therefore writes only the rows of its own band
// and no atomics or merge step are needed.
//
// Complexity: O(W×H×8) time, O(W×H) memory.
func dependencies(ctx context.Context, t *topology, points pointsFunc, workers int) ([]uint8, error) {
	deps := make([]uint8, t.shape.Size())
	w, h := t.shape.Width, t.shape.Height

	band := h / (workers * bandsPerWorker)
	if band < 1 {
		band = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < h; y0 += band {
		y0 := y0
		y1 := min(y0+band, h)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := y0 * w; i < y1*w; i++ {
				if !t.skip[i] {
					deps[i] = t.inbound(i, points)
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return deps, nil
}

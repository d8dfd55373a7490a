// SPDX-License-Identifier: MIT

package accum

import (
	"context"

	"github.com/katalvlaran/flowacc/raster"
)

// cancelCheckMask sets how often the drain polls the context: every 4096
// dequeues.
const cancelCheckMask = 1<<12 - 1

// drainer holds the transient state of one Kahn drain: the dependency
// counters and the ready queue. Each node is enqueued exactly once, when its
// counter reaches zero, so a queue with capacity nodes never reallocates and
// the head cursor alone gives FIFO order.
type drainer struct {
	ctx      context.Context
	topo     *topology
	deps     []uint8
	queue    []int
	progress ProgressFunc
}

func newDrainer(ctx context.Context, t *topology, deps []uint8, progress ProgressFunc) *drainer {
	return &drainer{
		ctx:      ctx,
		topo:     t,
		deps:     deps,
		queue:    make([]int, 0, t.nodes),
		progress: progress,
	}
}

// seed enqueues every node with no upstream contributors (headwaters) and
// returns how many there were.
func (dr *drainer) seed() int {
	for i, n := range dr.deps {
		if n == 0 && !dr.topo.skip[i] {
			dr.queue = append(dr.queue, i)
		}
	}

	return len(dr.queue)
}

// release records one delivered edge into ni and enqueues ni once all of
// its upstream edges have been delivered.
func (dr *drainer) release(ni int) {
	dr.deps[ni]--
	if dr.deps[ni] == 0 {
		dr.queue = append(dr.queue, ni)
	}
}

// tick runs before each dequeue: it polls the context periodically.
func (dr *drainer) tick(head int) error {
	if head&cancelCheckMask == 0 {
		return dr.ctx.Err()
	}

	return nil
}

// residual returns the number of nodes never finalized.
func (dr *drainer) residual() int {
	return dr.topo.nodes - len(dr.queue)
}

// drainDirections accumulates a single-direction field. acc must be zeroed.
// Returns the residual node count, or the context error on cancellation.
//
// Per dequeue of c:
//  1. acc[c]++ (self-contribution, only now that every upstream delivery
//     has landed);
//  2. NoFlow, off-grid and no-data targets end the path;
//  3. otherwise acc[c] is added to the target and the target released.
//
// Complexity: O(W×H) time.
func (dr *drainer) drainDirections(dirs []uint8, acc []uint32) (int, error) {
	w := dr.topo.shape.Width
	for head := 0; head < len(dr.queue); head++ {
		if err := dr.tick(head); err != nil {
			return 0, err
		}
		c := dr.queue[head]
		acc[c]++
		dr.progress(head+1, dr.topo.nodes)

		d := raster.Direction(dirs[c])
		if d == raster.NoFlow {
			continue
		}
		ni, ok := dr.topo.target(c%w, c/w, d)
		if !ok {
			continue
		}
		acc[ni] += acc[c]
		dr.release(ni)
	}

	return dr.residual(), nil
}

// drainProportions accumulates a multiple-flow-direction field. acc must be
// zeroed. weights, if non-nil, replaces the unit self-contribution.
// Control flow matches drainDirections; the only difference is the fan-out
// to up to eight targets, each receiving acc[c]*fraction.
func (dr *drainer) drainProportions(props *raster.Proportions, weights []float64, acc []float64) (int, error) {
	w := dr.topo.shape.Width
	for head := 0; head < len(dr.queue); head++ {
		if err := dr.tick(head); err != nil {
			return 0, err
		}
		c := dr.queue[head]
		if weights != nil {
			acc[c] += weights[c]
		} else {
			acc[c]++
		}
		dr.progress(head+1, dr.topo.nodes)

		v := acc[c]
		x, y := c%w, c/w
		for k, f := range props.Row(c) {
			if f == 0 {
				continue
			}
			ni, ok := dr.topo.target(x, y, raster.Direction(k+1))
			if !ok {
				continue
			}
			acc[ni] += v * float64(f)
			dr.release(ni)
		}
	}

	return dr.residual(), nil
}

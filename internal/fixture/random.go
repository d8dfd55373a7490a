// SPDX-License-Identifier: MIT
//
// random.go - acyclic random fields.
//
// Each cell draws a distinct random priority (a permutation of 0..n-1); flow
// only moves toward strictly lower priorities, so no cycle can form. Cells
// with no lower neighbour are sinks.
//
// Determinism: identical seeds yield identical fields.

package fixture

import (
	"fmt"

	"github.com/katalvlaran/flowacc/raster"
)

// RandomAcyclic builds a w×h single-direction field in which every cell
// flows to its lowest-priority neighbour under conn, if that is lower than
// itself. Requires WithSeed.
func RandomAcyclic(w, h int, conn raster.Connectivity, opts ...Option) (*raster.Grid[uint8], error) {
	cfg := newConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("RandomAcyclic: %w", ErrNeedRandSource)
	}
	g, err := raster.New[uint8](w, h, cfg.noData)
	if err != nil {
		return nil, fmt.Errorf("RandomAcyclic: %w", err)
	}
	prio := cfg.rng.Perm(g.Size())
	for i := range prio {
		x, y := g.IToXY(i)
		best, bestPrio := raster.NoFlow, prio[i]
		for _, d := range raster.Neighbors(conn) {
			ox, oy := d.Offset()
			if !g.InGrid(x+ox, y+oy) {
				continue
			}
			if p := prio[g.XYToI(x+ox, y+oy)]; p < bestPrio {
				best, bestPrio = d, p
			}
		}
		g.Set(i, uint8(best))
	}

	return g, nil
}

// RandomProportions builds a w×h proportion field in which every cell splits
// its outflow equally among all lower-priority neighbours under conn.
// Requires WithSeed.
func RandomProportions(w, h int, conn raster.Connectivity, opts ...Option) (*raster.Proportions, error) {
	cfg := newConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("RandomProportions: %w", ErrNeedRandSource)
	}
	props, err := raster.NewProportions(w, h)
	if err != nil {
		return nil, fmt.Errorf("RandomProportions: %w", err)
	}
	prio := cfg.rng.Perm(props.Size())
	lower := make([]raster.Direction, 0, 8)
	for i := range prio {
		x, y := props.IToXY(i)
		lower = lower[:0]
		for _, d := range raster.Neighbors(conn) {
			ox, oy := d.Offset()
			if props.InGrid(x+ox, y+oy) && prio[props.XYToI(x+ox, y+oy)] < prio[i] {
				lower = append(lower, d)
			}
		}
		for _, d := range lower {
			if err = props.Set(i, d, 1/float32(len(lower))); err != nil {
				return nil, fmt.Errorf("RandomProportions: %w", err)
			}
		}
	}

	return props, nil
}

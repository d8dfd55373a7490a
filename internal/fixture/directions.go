// SPDX-License-Identifier: MIT
//
// directions.go - single-direction generators with closed-form results.
//
// Expected accumulation (BorderRoute, Conn8):
//   - Star(n):     the centre holds n².
//   - Chain(n):    cell k holds k+1.
//   - FromPath(p): cell p[k] holds k+1; off-path cells hold 1.

package fixture

import (
	"fmt"

	"github.com/katalvlaran/flowacc/raster"
)

const (
	minStarSize  = 3
	minChainSize = 1
)

// towards returns the direction of the unit step (dx,dy), NoFlow for (0,0).
func towards(dx, dy int) raster.Direction {
	for _, d := range raster.Neighbors(raster.Conn8) {
		if ox, oy := d.Offset(); ox == dx && oy == dy {
			return d
		}
	}

	return raster.NoFlow
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Star builds an n×n field (n odd, n ≥ 3) in which every cell steps toward
// the centre, which is a sink. The centre accumulates n².
func Star(n int, opts ...Option) (*raster.Grid[uint8], error) {
	if n < minStarSize || n%2 == 0 {
		return nil, fmt.Errorf("Star: n=%d must be odd and >= %d: %w", n, minStarSize, ErrTooSmall)
	}
	cfg := newConfig(opts...)
	g, err := raster.New[uint8](n, n, cfg.noData)
	if err != nil {
		return nil, fmt.Errorf("Star: %w", err)
	}
	c := n / 2
	for i := 0; i < g.Size(); i++ {
		x, y := g.IToXY(i)
		g.Set(i, uint8(towards(sign(c-x), sign(c-y))))
	}

	return g, nil
}

// Chain builds an n×1 field flowing east into a sink at the last cell.
func Chain(n int, opts ...Option) (*raster.Grid[uint8], error) {
	if n < minChainSize {
		return nil, fmt.Errorf("Chain: n=%d < min=%d: %w", n, minChainSize, ErrTooSmall)
	}
	path := make([]int, n)
	for i := range path {
		path[i] = i
	}

	return FromPath(n, 1, path, opts...)
}

// Snake builds a w×h field whose single flow path visits every cell row by
// row, alternating east and west (boustrophedon).
func Snake(w, h int, opts ...Option) (*raster.Grid[uint8], error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("Snake: %dx%d: %w", w, h, ErrTooSmall)
	}

	return FromPath(w, h, SnakePath(w, h), opts...)
}

// Spiral builds a w×h field whose single flow path winds clockwise from the
// top-left corner to the middle.
func Spiral(w, h int, opts ...Option) (*raster.Grid[uint8], error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("Spiral: %dx%d: %w", w, h, ErrTooSmall)
	}

	return FromPath(w, h, SpiralPath(w, h), opts...)
}

// SnakePath lists the cells of a w×h grid in boustrophedon order.
func SnakePath(w, h int) []int {
	path := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for k := 0; k < w; k++ {
			x := k
			if y%2 == 1 {
				x = w - 1 - k
			}
			path = append(path, y*w+x)
		}
	}

	return path
}

// SpiralPath lists the cells of a w×h grid in clockwise spiral order.
func SpiralPath(w, h int) []int {
	path := make([]int, 0, w*h)
	left, right, top, bottom := 0, w-1, 0, h-1
	for left <= right && top <= bottom {
		for x := left; x <= right; x++ {
			path = append(path, top*w+x)
		}
		for y := top + 1; y <= bottom; y++ {
			path = append(path, y*w+right)
		}
		if top < bottom {
			for x := right - 1; x >= left; x-- {
				path = append(path, bottom*w+x)
			}
		}
		if left < right {
			for y := bottom - 1; y > top; y-- {
				path = append(path, y*w+left)
			}
		}
		left, right, top, bottom = left+1, right-1, top+1, bottom-1
	}

	return path
}

// FromPath builds a w×h field in which path[k] flows into path[k+1] and the
// last path cell is a sink. Cells not on the path are sinks too.
// Returns ErrNotAdjacent if two consecutive cells are not neighbours.
func FromPath(w, h int, path []int, opts ...Option) (*raster.Grid[uint8], error) {
	cfg := newConfig(opts...)
	g, err := raster.New[uint8](w, h, cfg.noData)
	if err != nil {
		return nil, fmt.Errorf("FromPath: %w", err)
	}
	for k := 0; k+1 < len(path); k++ {
		x0, y0 := g.IToXY(path[k])
		x1, y1 := g.IToXY(path[k+1])
		dx, dy := x1-x0, y1-y0
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			return nil, fmt.Errorf("FromPath: %d -> %d: %w", path[k], path[k+1], ErrNotAdjacent)
		}
		g.Set(path[k], uint8(towards(dx, dy)))
	}

	return g, nil
}

// Cycle returns the 2×1 field E, W: two cells draining into each other.
func Cycle(opts ...Option) *raster.Grid[uint8] {
	cfg := newConfig(opts...)
	g, _ := raster.FromRows([][]uint8{{uint8(raster.E), uint8(raster.W)}}, cfg.noData)

	return g
}

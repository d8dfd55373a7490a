// SPDX-License-Identifier: MIT

package raster

import "fmt"

// Grid is a dense W×H raster of T stored row-major in a flat slice, with one
// designated no-data sentinel. A Grid is owned by its creator and must not be
// mutated from several goroutines at once.
type Grid[T Number] struct {
	shape  Shape
	noData T
	data   []T // len == Width*Height
}

// New allocates a width×height grid filled with zeros.
// Returns ErrBadShape if either dimension is not positive.
// Complexity: O(W×H).
func New[T Number](width, height int, noData T) (*Grid[T], error) {
	return NewFilled(width, height, 0, noData)
}

// NewFilled allocates a width×height grid with every cell set to fill.
// Complexity: O(W×H).
func NewFilled[T Number](width, height int, fill, noData T) (*Grid[T], error) {
	s := Shape{Width: width, Height: height}
	if err := s.validate(); err != nil {
		return nil, err
	}
	g := &Grid[T]{shape: s, noData: noData, data: make([]T, s.Size())}
	if fill != 0 {
		g.Fill(fill)
	}

	return g, nil
}

// NewLike allocates a grid with the same shape as template but a different
// element type, filled with fill. It mirrors "make from template" in raster
// toolkits and never fails because template already has a valid shape.
func NewLike[T, S Number](template *Grid[S], fill, noData T) *Grid[T] {
	g := &Grid[T]{shape: template.shape, noData: noData, data: make([]T, template.shape.Size())}
	if fill != 0 {
		g.Fill(fill)
	}

	return g
}

// FromRows builds a grid from a non-empty rectangular [][]T, deep-copying
// the input. rows[y][x] becomes cell (x,y).
// Returns ErrBadShape for empty input and ErrNonRectangular for ragged rows.
func FromRows[T Number](rows [][]T, noData T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid[T]{shape: Shape{Width: w, Height: h}, noData: noData, data: make([]T, w*h)}
	for y := 0; y < h; y++ {
		copy(g.data[y*w:(y+1)*w], rows[y])
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.shape.Width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.shape.Height }

// Size returns Width*Height.
func (g *Grid[T]) Size() int { return len(g.data) }

// Shape returns the grid dimensions.
func (g *Grid[T]) Shape() Shape { return g.shape }

// NoData returns the no-data sentinel.
func (g *Grid[T]) NoData() T { return g.noData }

// SetNoData changes the sentinel. Cells are not rewritten.
func (g *Grid[T]) SetNoData(v T) { g.noData = v }

// At returns the value of cell i. It panics if i is out of range, like a
// slice index would; callers iterate over [0, Size()).
func (g *Grid[T]) At(i int) T { return g.data[i] }

// Set assigns v to cell i.
func (g *Grid[T]) Set(i int, v T) { g.data[i] = v }

// AtXY returns the value at (x,y), or ErrOutOfRange.
func (g *Grid[T]) AtXY(x, y int) (T, error) {
	if !g.shape.InGrid(x, y) {
		var zero T
		return zero, fmt.Errorf("Grid.AtXY(%d,%d): %w", x, y, ErrOutOfRange)
	}

	return g.data[g.shape.XYToI(x, y)], nil
}

// SetXY assigns v at (x,y), or returns ErrOutOfRange.
func (g *Grid[T]) SetXY(x, y int, v T) error {
	if !g.shape.InGrid(x, y) {
		return fmt.Errorf("Grid.SetXY(%d,%d): %w", x, y, ErrOutOfRange)
	}
	g.data[g.shape.XYToI(x, y)] = v

	return nil
}

// XYToI maps (x,y) to its linear index.
func (g *Grid[T]) XYToI(x, y int) int { return g.shape.XYToI(x, y) }

// IToXY maps a linear index to (x,y).
func (g *Grid[T]) IToXY(i int) (x, y int) { return g.shape.IToXY(i) }

// InGrid reports whether (x,y) lies inside the grid.
func (g *Grid[T]) InGrid(x, y int) bool { return g.shape.InGrid(x, y) }

// IsEdgeCell reports whether (x,y) lies on the grid border.
func (g *Grid[T]) IsEdgeCell(x, y int) bool { return g.shape.IsEdgeCell(x, y) }

// IsNoData reports whether cell i holds the sentinel. A NaN sentinel on a
// floating-point grid matches NaN cells.
func (g *Grid[T]) IsNoData(i int) bool {
	v := g.data[i]
	if v != v { // NaN
		return g.noData != g.noData
	}

	return v == g.noData
}

// IsNoDataXY is IsNoData addressed by coordinates.
func (g *Grid[T]) IsNoDataXY(x, y int) bool { return g.IsNoData(g.shape.XYToI(x, y)) }

// CountData returns the number of cells that are not no-data.
func (g *Grid[T]) CountData() int {
	n := 0
	for i := range g.data {
		if !g.IsNoData(i) {
			n++
		}
	}

	return n
}

// Data exposes the backing row-major slice. Writes through it mutate the grid.
func (g *Grid[T]) Data() []T { return g.data }

// Rows returns a deep copy of the grid as [][]T, rows[y][x].
func (g *Grid[T]) Rows() [][]T {
	w := g.shape.Width
	out := make([][]T, g.shape.Height)
	for y := range out {
		out[y] = make([]T, w)
		copy(out[y], g.data[y*w:(y+1)*w])
	}

	return out
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)

	return &Grid[T]{shape: g.shape, noData: g.noData, data: data}
}

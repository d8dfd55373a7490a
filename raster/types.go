// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Sentinel errors for raster operations.
var (
	// ErrBadShape indicates a non-positive width or height.
	ErrBadShape = errors.New("raster: width and height must be > 0")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrOutOfRange indicates a cell index or direction outside its domain.
	ErrOutOfRange = errors.New("raster: index out of range")
)

// Number is the set of element types a Grid may hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Shape is the width and height of a grid.
type Shape struct {
	Width, Height int
}

// Size returns the number of cells, Width*Height.
func (s Shape) Size() int {
	return s.Width * s.Height
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(o Shape) bool {
	return s.Width == o.Width && s.Height == o.Height
}

// String renders the shape as "WxH".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// XYToI maps (x,y) to its row-major index y*Width + x.
func (s Shape) XYToI(x, y int) int {
	return y*s.Width + x
}

// IToXY converts a row-major index back to (x,y).
func (s Shape) IToXY(i int) (x, y int) {
	return i % s.Width, i / s.Width
}

// InGrid reports whether (x,y) lies within the shape.
func (s Shape) InGrid(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// IsEdgeCell reports whether (x,y) lies on the outermost ring of cells.
func (s Shape) IsEdgeCell(x, y int) bool {
	return x == 0 || y == 0 || x == s.Width-1 || y == s.Height-1
}

// validate returns ErrBadShape unless both dimensions are positive.
func (s Shape) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: got %s", ErrBadShape, s)
	}

	return nil
}

// Connectivity selects the neighbour set: orthogonal (Conn4) or including
// diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses W, N, E, S.
	Conn4 Connectivity = iota
	// Conn8 uses all eight neighbours.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn4 {
		return "conn4"
	}

	return "conn8"
}

// SPDX-License-Identifier: MIT

package raster

import "fmt"

// slots is the number of fraction slots stored per cell, one per D8 neighbour.
const slots = 8

// Share is one (direction, fraction) pair of a proportion set.
type Share struct {
	Dir      Direction
	Fraction float32
}

// Proportions is a multiple-flow-direction field: for every cell, the
// fraction of its outflow sent to each of the eight neighbours. A cell whose
// fractions are all zero is terminal. Fractions summing to less than one
// model loss to an unmodelled sink.
//
// Storage is a flat [cells × 8]float32 table; slot k of a row holds the
// fraction for Direction(k+1).
type Proportions struct {
	shape  Shape
	frac   []float32
	noData []bool
}

// NewProportions allocates an all-terminal field of the given shape.
func NewProportions(width, height int) (*Proportions, error) {
	s := Shape{Width: width, Height: height}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return &Proportions{
		shape:  s,
		frac:   make([]float32, s.Size()*slots),
		noData: make([]bool, s.Size()),
	}, nil
}

// Shape returns the field dimensions.
func (p *Proportions) Shape() Shape { return p.shape }

// Width returns the number of columns.
func (p *Proportions) Width() int { return p.shape.Width }

// Height returns the number of rows.
func (p *Proportions) Height() int { return p.shape.Height }

// Size returns the number of cells.
func (p *Proportions) Size() int { return len(p.noData) }

// XYToI maps (x,y) to its linear index.
func (p *Proportions) XYToI(x, y int) int { return p.shape.XYToI(x, y) }

// IToXY maps a linear index to (x,y).
func (p *Proportions) IToXY(i int) (x, y int) { return p.shape.IToXY(i) }

// InGrid reports whether (x,y) lies inside the field.
func (p *Proportions) InGrid(x, y int) bool { return p.shape.InGrid(x, y) }

// IsEdgeCell reports whether (x,y) lies on the border.
func (p *Proportions) IsEdgeCell(x, y int) bool { return p.shape.IsEdgeCell(x, y) }

// Set stores fraction f for the edge i→d. The value is not validated here;
// the engine checks the proportion invariants before a run.
func (p *Proportions) Set(i int, d Direction, f float32) error {
	if i < 0 || i >= p.Size() || d == NoFlow || d > MaxDirection {
		return fmt.Errorf("Proportions.Set(%d,%s): %w", i, d, ErrOutOfRange)
	}
	p.frac[i*slots+int(d)-1] = f

	return nil
}

// Fraction returns the fraction stored for i→d, zero for NoFlow.
func (p *Proportions) Fraction(i int, d Direction) float32 {
	if d == NoFlow || d > MaxDirection {
		return 0
	}

	return p.frac[i*slots+int(d)-1]
}

// Row returns the eight fraction slots of cell i as a view into the table.
func (p *Proportions) Row(i int) []float32 {
	return p.frac[i*slots : (i+1)*slots : (i+1)*slots]
}

// SetNoFlow clears every fraction of cell i, making it terminal.
func (p *Proportions) SetNoFlow(i int) {
	row := p.Row(i)
	for k := range row {
		row[k] = 0
	}
}

// Total returns the sum of cell i's fractions.
func (p *Proportions) Total(i int) float64 {
	var sum float64
	for _, f := range p.Row(i) {
		sum += float64(f)
	}

	return sum
}

// Shares lists the non-zero (direction, fraction) pairs of cell i in code order.
func (p *Proportions) Shares(i int) []Share {
	var out []Share
	for k, f := range p.Row(i) {
		if f != 0 {
			out = append(out, Share{Dir: Direction(k + 1), Fraction: f})
		}
	}

	return out
}

// SetNoData marks or unmarks cell i as no-data.
func (p *Proportions) SetNoData(i int, v bool) { p.noData[i] = v }

// IsNoData reports whether cell i is no-data.
func (p *Proportions) IsNoData(i int) bool { return p.noData[i] }

// CountData returns the number of cells that are not no-data.
func (p *Proportions) CountData() int {
	n := 0
	for _, nd := range p.noData {
		if !nd {
			n++
		}
	}

	return n
}

// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"strings"
)

// Direction is a D8 flow-direction code. NoFlow marks a terminal cell
// (sink, flat or outlet); 1..8 name a neighbour counter-clockwise from west.
type Direction uint8

const (
	NoFlow Direction = iota // terminal
	W                       // (-1, 0)
	NW                      // (-1,-1)
	N                       // ( 0,-1)
	NE                      // ( 1,-1)
	E                       // ( 1, 0)
	SE                      // ( 1, 1)
	S                       // ( 0, 1)
	SW                      // (-1, 1)
)

// DirectionNoData is the conventional no-data sentinel for uint8 direction
// grids. Any value outside 0..8 works; 255 is what the codecs emit.
const DirectionNoData uint8 = 255

// MaxDirection is the largest valid neighbour code.
const MaxDirection = SW

var (
	dx = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}
	dy = [9]int{0, 0, -1, -1, -1, 0, 1, 1, 1}

	directionNames = [9]string{"NoFlow", "W", "NW", "N", "NE", "E", "SE", "S", "SW"}

	conn4 = []Direction{W, N, E, S}
	conn8 = []Direction{W, NW, N, NE, E, SE, S, SW}
)

// Valid reports whether d is NoFlow or one of the eight neighbour codes.
func (d Direction) Valid() bool {
	return d <= MaxDirection
}

// IsCardinal reports whether d is one of W, N, E, S.
func (d Direction) IsCardinal() bool {
	return d != NoFlow && d <= MaxDirection && d%2 == 1
}

// Offset returns the (dx, dy) step for d. NoFlow and invalid codes return (0,0).
func (d Direction) Offset() (int, int) {
	if d > MaxDirection {
		return 0, 0
	}

	return dx[d], dy[d]
}

// Shift returns the linear-index delta of d on a grid of the given width.
func (d Direction) Shift(width int) int {
	x, y := d.Offset()

	return y*width + x
}

// Inverse returns the direction pointing back, e.g. W↔E, NW↔SE.
// NoFlow and invalid codes map to NoFlow.
func (d Direction) Inverse() Direction {
	if d == NoFlow || d > MaxDirection {
		return NoFlow
	}

	return (d+3)%8 + 1
}

// String returns the compass name of d.
func (d Direction) String() string {
	if d > MaxDirection {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}

	return directionNames[d]
}

// ParseDirection maps a compass name ("ne", "NoFlow", ...) to its code.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if strings.EqualFold(n, name) {
			return Direction(i), nil
		}
	}

	return NoFlow, fmt.Errorf("ParseDirection(%q): %w", name, ErrOutOfRange)
}

// Neighbors returns the neighbour codes for the connectivity, in code order.
// The returned slice is shared and must not be modified.
func Neighbors(c Connectivity) []Direction {
	if c == Conn4 {
		return conn4
	}

	return conn8
}

// NeighborOffsets returns the (dx,dy) pairs for the connectivity, in the
// same order as Neighbors.
func NeighborOffsets(c Connectivity) [][2]int {
	dirs := Neighbors(c)
	out := make([][2]int, len(dirs))
	for i, d := range dirs {
		out[i][0], out[i][1] = d.Offset()
	}

	return out
}

// Allows reports whether d is a legal flow code under c. NoFlow is always
// legal; Conn4 only admits cardinal directions.
func (c Connectivity) Allows(d Direction) bool {
	if d == NoFlow {
		return true
	}
	if !d.Valid() {
		return false
	}

	return c == Conn8 || d.IsCardinal()
}

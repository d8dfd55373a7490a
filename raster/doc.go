// SPDX-License-Identifier: MIT

// Package raster provides the dense grid primitives the flow-accumulation
// engine is built on.
//
// What:
//
//   - Grid[T] stores a W×H raster in one row-major slice with a single
//     no-data sentinel. Cells are addressed either by (x,y) or by the linear
//     index i = y*W + x; every algorithm in this module works on the linear
//     index so that the grid graph stays implicit.
//   - Direction encodes the eight D8 neighbours (1..8) plus NoFlow (0).
//     Codes run counter-clockwise from west:
//
//     2 3 4
//     1 · 5
//     8 7 6
//
//   - Proportions stores, for every cell, the fraction of its outflow that
//     goes to each of the eight neighbours (multiple-flow-direction fields).
//
// Complexity:
//
//   - Index conversions, bounds and no-data predicates: O(1).
//   - Construction, Clone, Fill, CountData: O(W×H).
//
// Errors:
//
//   - ErrBadShape: width or height is not positive.
//   - ErrNonRectangular: rows of differing lengths in FromRows.
//   - ErrOutOfRange: index or direction outside its domain.
package raster

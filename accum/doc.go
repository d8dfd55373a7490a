// SPDX-License-Identifier: MIT

// Package accum computes flow accumulation over raster grids.
//
// A flow field (one D8 code per cell, or a set of outflow fractions per
// cell) defines an implicit directed graph: each cell is a node with an edge
// to every neighbour it sends flow to. Accumulation at a cell is the cell's
// own contribution plus everything delivered from upstream, so values can be
// computed in topological order. The engine does exactly that:
//
//  1. count, for every cell, how many neighbours deliver into it;
//  2. seed a FIFO with the cells nobody delivers into (headwaters);
//  3. pop a cell, add its own contribution, forward its value to its
//     targets and enqueue each target whose count drops to zero (Kahn);
//  4. if cells remain unfinished, the field has a cycle and the run fails;
//  5. stamp the no-data sentinel onto every no-data input cell.
//
// Both modes are O(W×H) in time and memory and never recurse, so grids of
// hundreds of millions of cells are bounded only by RAM.
//
// Single direction:
//
//	acc, err := accum.FromDirections(dirs, accum.WithBorder(accum.BorderIgnore))
//
// Proportional, with rainfall weights:
//
//	acc, err := accum.FromProportions(props, accum.WithWeights(rain))
//
// Errors are sentinels matched with errors.Is: ErrPrecondition (and its
// specific children), ErrCycleDetected (carried by *CycleError) and
// ErrOverflowRisk. A cancelled context yields ctx.Err(). No result is ever
// returned alongside an error.
package accum

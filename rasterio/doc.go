// SPDX-License-Identifier: MIT

// Package rasterio reads and writes flowacc grids.
//
// Two formats are supported:
//
//   - ESRI ASCII grids (.asc) for elevations, direction codes and results;
//   - proportion documents, YAML or JSON, for multiple-flow-direction fields.
//
// Decoding never guesses: unknown header keys, short bodies and values that
// do not fit the target type are errors wrapping ErrBadHeader or ErrBadValue.
package rasterio

// SPDX-License-Identifier: MIT

// Package flowdir defines how flow fields enter the accumulation engine.
//
// A flow field is produced from an elevation grid by some routing model:
// a single-direction model (D8, D4, Rho8, ...) yields one Direction per cell,
// a multiple-flow-direction model (D-infinity, Freeman, Holmgren, Quinn, ...)
// yields a Proportions table. The engine does not care how a field was
// derived; it only needs structural conformance and acyclicity. This
// package therefore only provides the two capability interfaces, function
// adapters for them, static providers for precomputed fields, and the
// conversion of a D8 field into its degenerate proportional form.
//
// Providers are chosen at configuration time and passed to
// accum.FromElevation / accum.FromElevationProportional.
package flowdir

// SPDX-License-Identifier: MIT

// Package fixture builds deterministic flow fields for tests and benchmarks.
//
// Every generator returns a fresh grid whose expected accumulation is known
// in closed form (Star, Chain, Snake, Spiral) or guaranteed acyclic by
// construction (RandomAcyclic, RandomProportions, which route each cell only
// toward strictly lower random priorities). Cycle returns the smallest
// illegal field. Random generators require WithSeed so runs are
// reproducible.
package fixture

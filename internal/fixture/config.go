// SPDX-License-Identifier: MIT
//
// config.go - generator options with deterministic defaults.
//
// Defaults:
//   - rng    = nil                   (random generators refuse to run)
//   - noData = raster.DirectionNoData

package fixture

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/flowacc/raster"
)

// Sentinel errors.
var (
	// ErrTooSmall indicates dimensions below a generator's minimum.
	ErrTooSmall = errors.New("fixture: dimensions too small")

	// ErrNeedRandSource indicates a random generator called without WithSeed.
	ErrNeedRandSource = errors.New("fixture: random source required")

	// ErrNotAdjacent indicates consecutive path cells that are not neighbours.
	ErrNotAdjacent = errors.New("fixture: path cells are not adjacent")
)

// Option configures a generator.
type Option func(*config)

type config struct {
	rng    *rand.Rand
	noData uint8
}

func newConfig(opts ...Option) config {
	cfg := config{noData: raster.DirectionNoData}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed installs a seeded source for the random generators.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNoData sets the no-data sentinel of generated direction grids.
func WithNoData(v uint8) Option {
	return func(c *config) {
		c.noData = v
	}
}

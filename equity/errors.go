// SPDX-License-Identifier: MIT

package equity

import (
	"errors"
	"fmt"
)

// ErrEquity is the category sentinel of this package.
var ErrEquity = errors.New("equity: allocation error")

var (
	// ErrNilRand indicates NewAllocator or Demands called without a random
	// source.
	ErrNilRand = fmt.Errorf("%w: nil random source", ErrEquity)

	// ErrSectorCount indicates a demand, allocation or weight slice whose
	// length differs from the sector count.
	ErrSectorCount = fmt.Errorf("%w: sector count mismatch", ErrEquity)

	// ErrInvalidAmount indicates a negative or non-finite supply or demand.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrEquity)

	// ErrInvalidSector indicates a sector with a loss outside [0,100] or a
	// negative population.
	ErrInvalidSector = fmt.Errorf("%w: invalid sector", ErrEquity)

	// ErrUnknownScenario indicates a scenario name outside the known set.
	ErrUnknownScenario = fmt.Errorf("%w: unknown scenario", ErrEquity)

	// ErrInvalidHour indicates an hour outside [0,23].
	ErrInvalidHour = fmt.Errorf("%w: hour out of range", ErrEquity)

	// ErrInvalidEpochs indicates Train called with epochs < 1.
	ErrInvalidEpochs = fmt.Errorf("%w: epochs must be >= 1", ErrEquity)

	// ErrInvalidRate indicates a non-positive learning rate.
	ErrInvalidRate = fmt.Errorf("%w: learning rate must be > 0", ErrEquity)

	// ErrSourceMismatch indicates a source missing from the topology, not a
	// source node there, or with a capacity outside the node's flow range.
	ErrSourceMismatch = fmt.Errorf("%w: source does not match topology", ErrEquity)
)

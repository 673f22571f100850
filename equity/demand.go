// SPDX-License-Identifier: MIT

package equity

import (
	"fmt"
	"math/rand"
)

// Jitter is the half-width of the random demand factor drawn by Demands.
const Jitter = 0.1

// HourFactor scales mean demand by the time of day. Demand peaks at 06-08
// and 18-20 and is lowest from midnight to 05.
func HourFactor(hour int) float64 {
	switch {
	case hour >= 6 && hour <= 8:
		return 1.4
	case hour >= 18 && hour <= 20:
		return 1.3
	case hour >= 0 && hour <= 5:
		return 0.6
	case hour >= 22:
		return 0.7
	}

	return 1
}

// BaseDemands returns Demand × HourFactor(hour) for every sector.
func BaseDemands(sectors []Sector, hour int) ([]float64, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("BaseDemands: %d: %w", hour, ErrInvalidHour)
	}
	f := HourFactor(hour)
	out := make([]float64, len(sectors))
	for i, s := range sectors {
		out[i] = s.Demand * f
	}

	return out, nil
}

// Demands is BaseDemands with each entry scaled by a factor drawn
// uniformly from [1-Jitter, 1+Jitter).
func Demands(sectors []Sector, hour int, rng *rand.Rand) ([]float64, error) {
	if rng == nil {
		return nil, fmt.Errorf("Demands: %w", ErrNilRand)
	}
	out, err := BaseDemands(sectors, hour)
	if err != nil {
		return nil, fmt.Errorf("Demands: %w", err)
	}
	for i := range out {
		out[i] *= 1 - Jitter + 2*Jitter*rng.Float64()
	}

	return out, nil
}

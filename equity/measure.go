// SPDX-License-Identifier: MIT

package equity

import (
	"fmt"
	"math"
	"sort"
)

// Measures scores one allocation against its demands. Satisfaction holds
// allocation/demand in percent; a sector with zero demand scores 100.
type Measures struct {
	Satisfaction []float64
	Mean         float64
	StdDev       float64 // population standard deviation
	CV           float64 // StdDev/Mean, percent
	Gini         float64
	Index        float64 // max(0, 100 - CV)
}

// Measure computes the equity measures of alloc. An allocation that
// satisfies no sector at all has Mean 0, CV 0, Gini 0 and Index 0.
func Measure(alloc, demands []float64) (Measures, error) {
	if len(alloc) != len(demands) || len(alloc) == 0 {
		return Measures{}, fmt.Errorf("Measure: %d allocations for %d demands: %w", len(alloc), len(demands), ErrSectorCount)
	}
	n := float64(len(alloc))
	m := Measures{Satisfaction: make([]float64, len(alloc))}
	var sum float64
	for i, d := range demands {
		if !validAmount(d) || !validAmount(alloc[i]) {
			return Measures{}, fmt.Errorf("Measure: sector %d: %w", i, ErrInvalidAmount)
		}
		m.Satisfaction[i] = 100
		if d > 0 {
			m.Satisfaction[i] = alloc[i] / d * 100
		}
		sum += m.Satisfaction[i]
	}
	m.Mean = sum / n
	if sum == 0 {
		return m, nil
	}

	var ss float64
	for _, r := range m.Satisfaction {
		ss += (r - m.Mean) * (r - m.Mean)
	}
	m.StdDev = math.Sqrt(ss / n)
	m.CV = m.StdDev / m.Mean * 100
	m.Index = math.Max(0, 100-m.CV)

	sorted := append([]float64(nil), m.Satisfaction...)
	sort.Float64s(sorted)
	var g float64
	for i, r := range sorted {
		g += float64(2*(i+1)-len(sorted)-1) * r
	}
	m.Gini = math.Abs(g / (n * sum))

	return m, nil
}

// Snapshot compares the proportional split with the allocator's split for
// one hour of demand.
type Snapshot struct {
	Hour         int
	Supply       Supply
	Demands      []float64
	Proportional []float64
	Optimized    []float64
	Before       Measures // of Proportional
	After        Measures // of Optimized
}

// Compare builds a Snapshot. Until the allocator is trained, Optimized is
// the proportional split.
func (a *Allocator) Compare(hour int, sup Supply, demands []float64) (Snapshot, error) {
	if err := a.check(sup.Total, demands); err != nil {
		return Snapshot{}, fmt.Errorf("Compare: %w", err)
	}
	s := Snapshot{Hour: hour, Supply: sup, Demands: append([]float64(nil), demands...)}
	var err error
	if s.Proportional, err = Proportional(sup.Total, demands); err != nil {
		return Snapshot{}, fmt.Errorf("Compare: %w", err)
	}
	s.Optimized = s.Proportional
	if a.trained {
		if s.Optimized, err = a.Predict(sup.Total, demands); err != nil {
			return Snapshot{}, fmt.Errorf("Compare: %w", err)
		}
	}
	if s.Before, err = Measure(s.Proportional, demands); err != nil {
		return Snapshot{}, fmt.Errorf("Compare: %w", err)
	}
	if s.After, err = Measure(s.Optimized, demands); err != nil {
		return Snapshot{}, fmt.Errorf("Compare: %w", err)
	}

	return s, nil
}

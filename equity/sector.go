// SPDX-License-Identifier: MIT

package equity

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/aquanet/network"
)

// Sector is one distribution zone served from the network sink.
type Sector struct {
	ID         int
	Name       string
	Population int
	Loss       float64 // unaccounted-for water, percent of supply
	Demand     float64 // mean demand, L/s
}

func (s Sector) validate() error {
	switch {
	case s.Population < 0:
		return fmt.Errorf("sector %d: population %d: %w", s.ID, s.Population, ErrInvalidSector)
	case !(s.Loss >= 0 && s.Loss <= 100):
		return fmt.Errorf("sector %d: loss %v: %w", s.ID, s.Loss, ErrInvalidSector)
	case !validAmount(s.Demand):
		return fmt.Errorf("sector %d: demand %v: %w", s.ID, s.Demand, ErrInvalidAmount)
	}

	return nil
}

// SogamosoSectors returns the ten sectors of the Sogamoso distribution
// network.
func SogamosoSectors() []Sector {
	return []Sector{
		{ID: 1, Name: "Sector 1 (Sur)", Population: 10000, Loss: 71, Demand: 60},
		{ID: 2, Name: "Sector 2", Population: 6000, Loss: 4, Demand: 35},
		{ID: 3, Name: "Sector 3 (Centro)", Population: 30000, Loss: 41, Demand: 88},
		{ID: 4, Name: "Sector 4", Population: 25000, Loss: 26, Demand: 75},
		{ID: 5, Name: "Sector 5 (Mode Rural)", Population: 4000, Loss: 62, Demand: 15},
		{ID: 6, Name: "Sector 6", Population: 2000, Loss: 43, Demand: 9},
		{ID: 7, Name: "Sector 7", Population: 2000, Loss: 9, Demand: 10},
		{ID: 8, Name: "Sector 8 (Norte)", Population: 22000, Loss: 38, Demand: 72},
		{ID: 9, Name: "Sector 9", Population: 7000, Loss: 44, Demand: 20},
		{ID: 10, Name: "Sector 10 (Santa Bárbara)", Population: 3000, Loss: 39, Demand: 11},
	}
}

// MeanDemands returns the Demand of each sector.
func MeanDemands(sectors []Sector) []float64 {
	out := make([]float64, len(sectors))
	for i, s := range sectors {
		out[i] = s.Demand
	}

	return out
}

// Source is a capture source with its nominal capacity in L/s. ID names a
// source node of the network.
type Source struct {
	ID       string
	Name     string
	Capacity float64
}

// SogamosoSources returns the nominal capacities of the three capture
// sources. Each lies inside the flow range of its network node.
func SogamosoSources() []Source {
	return []Source{
		{ID: network.LagoTota, Name: "Lago Tota", Capacity: 250},
		{ID: network.RioTejar, Name: "Río Tejar", Capacity: 15},
		{ID: network.PozoProfundo, Name: "Pozo Profundo", Capacity: 10},
	}
}

// CheckSources verifies that every source is a Source node of topo whose
// flow range contains the capacity.
func CheckSources(topo *network.Topology, sources []Source) error {
	for _, src := range sources {
		i, ok := topo.Index(src.ID)
		if !ok {
			return fmt.Errorf("CheckSources: %q not in topology: %w", src.ID, ErrSourceMismatch)
		}
		node := topo.Node(i)
		if node.Category != network.Source {
			return fmt.Errorf("CheckSources: %q is a %s: %w", src.ID, node.Category, ErrSourceMismatch)
		}
		if !node.Flow.Contains(src.Capacity) {
			return fmt.Errorf("CheckSources: %q capacity %v outside [%v, %v]: %w",
				src.ID, src.Capacity, node.Flow.Lo, node.Flow.Hi, ErrSourceMismatch)
		}
	}

	return nil
}

// Scenario scales the capacity of the sources.
type Scenario uint8

const (
	// Normal runs every source at capacity.
	Normal Scenario = iota
	// Drought lowers Lago Tota to 70% and Río Tejar to 50%.
	Drought
	// Peak keeps every source at capacity; the stress is on demand.
	Peak
	// Failure halves Lago Tota and takes Río Tejar offline.
	Failure
)

var scenarioNames = [...]string{"normal", "drought", "peak", "failure"}

// Scenarios lists every scenario in declaration order.
func Scenarios() []Scenario { return []Scenario{Normal, Drought, Peak, Failure} }

func (s Scenario) String() string {
	if int(s) < len(scenarioNames) {
		return scenarioNames[s]
	}

	return fmt.Sprintf("scenario(%d)", uint8(s))
}

// ParseScenario accepts the names written by String.
func ParseScenario(name string) (Scenario, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range scenarioNames {
		if n == s {
			return Scenario(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// scenarioFactors maps a scenario to per-source capacity factors. Sources
// not listed run at capacity.
var scenarioFactors = map[Scenario]map[string]float64{
	Drought: {network.LagoTota: 0.7, network.RioTejar: 0.5},
	Failure: {network.LagoTota: 0.5, network.RioTejar: 0},
}

// Supply is the flow each source delivers under a scenario.
type Supply struct {
	Scenario Scenario
	BySource map[string]float64
	Total    float64
}

// Available applies sc to sources.
func Available(sources []Source, sc Scenario) (Supply, error) {
	if int(sc) >= len(scenarioNames) {
		return Supply{}, fmt.Errorf("Available: %w: %v", ErrUnknownScenario, sc)
	}
	sup := Supply{Scenario: sc, BySource: make(map[string]float64, len(sources))}
	for _, src := range sources {
		if !validAmount(src.Capacity) {
			return Supply{}, fmt.Errorf("Available: %q capacity %v: %w", src.ID, src.Capacity, ErrInvalidAmount)
		}
		f, ok := scenarioFactors[sc][src.ID]
		if !ok {
			f = 1
		}
		sup.BySource[src.ID] = src.Capacity * f
		sup.Total += src.Capacity * f
	}

	return sup, nil
}

func validAmount(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }

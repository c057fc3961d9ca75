// Package architecture lays out planetary orbits and masses.
//
// Each archetype names one Strategy. A strategy fills parallel arrays of
// orbital elements for n planets around a host of a given mass, using
// Kepler's third law to keep periods and semi-major axes consistent. Every
// layout is returned sorted by semi-major axis, innermost first.
package architecture

import (
	"sort"

	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

// Layout is the output of a strategy.
type Layout struct {
	Periods        []units.Days
	SemiMajorAxes  []units.AU
	Eccentricities []float64
	Inclinations   []units.Degrees
	Masses         []units.EarthMass
	Types          []system.PlanetType
	// Ratios is set only by the resonant chain, one entry per adjacent pair.
	Ratios [][2]int
}

// Len returns the planet count.
func (l *Layout) Len() int {
	return len(l.SemiMajorAxes)
}

// Strategy builds a layout for n planets.
type Strategy interface {
	Kind() registry.Architecture
	Layout(src rng.Source, n int, host units.SolarMass) Layout
}

var strategies = map[registry.Architecture]Strategy{
	registry.ArchitectureCompact:           Compact{},
	registry.ArchitectureResonantChain:     ResonantChain{},
	registry.ArchitectureGasGiantDominated: GasGiantDominated{},
	registry.ArchitectureRockyDominated:    RockyDominated{},
	registry.ArchitectureStandard:          Standard{},
}

// For returns the strategy for an architecture, falling back to Standard.
func For(kind registry.Architecture) Strategy {
	if s, ok := strategies[kind]; ok {
		return s
	}
	return Standard{}
}

func newLayout(n int) Layout {
	return Layout{
		Periods:        make([]units.Days, n),
		SemiMajorAxes:  make([]units.AU, n),
		Eccentricities: make([]float64, n),
		Inclinations:   make([]units.Degrees, n),
		Masses:         make([]units.EarthMass, n),
		Types:          make([]system.PlanetType, n),
	}
}

func between(src rng.Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Classify fills Types from masses and axes.
func (l *Layout) Classify() {
	for i := range l.Types {
		l.Types[i] = system.ClassifyPlanet(l.Masses[i], l.SemiMajorAxes[i])
	}
}

// SortByAxis reorders every array by increasing semi-major axis.
func (l *Layout) SortByAxis() {
	idx := make([]int, l.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return l.SemiMajorAxes[idx[i]] < l.SemiMajorAxes[idx[j]]
	})

	sorted := newLayout(len(idx))
	for to, from := range idx {
		sorted.Periods[to] = l.Periods[from]
		sorted.SemiMajorAxes[to] = l.SemiMajorAxes[from]
		sorted.Eccentricities[to] = l.Eccentricities[from]
		sorted.Inclinations[to] = l.Inclinations[from]
		sorted.Masses[to] = l.Masses[from]
		sorted.Types[to] = l.Types[from]
	}
	sorted.Ratios = l.Ratios
	*l = sorted
}

// Rescale multiplies every semi-major axis by k and recomputes periods
// for the given host mass. Period ratios are preserved.
func (l *Layout) Rescale(k float64, host units.SolarMass) {
	for i := range l.SemiMajorAxes {
		l.SemiMajorAxes[i] = units.AU(float64(l.SemiMajorAxes[i]) * k)
		l.Periods[i] = units.PeriodFromAxis(l.SemiMajorAxes[i], host)
	}
	l.Classify()
}

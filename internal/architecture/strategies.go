package architecture

import (
	"math"

	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/units"
)

// Compact packs planets on short periods with geometric spacing.
type Compact struct{}

const compactBasePeriod units.Days = 1.5

func (Compact) Kind() registry.Architecture { return registry.ArchitectureCompact }

func (Compact) Layout(src rng.Source, n int, host units.SolarMass) Layout {
	l := newLayout(n)
	period := compactBasePeriod
	for i := 0; i < n; i++ {
		if i > 0 {
			period *= units.Days(between(src, 1.5, 1.8))
		}
		l.Periods[i] = period
		l.SemiMajorAxes[i] = units.AxisFromPeriod(period, host)
		l.Eccentricities[i] = between(src, 0, 0.05)
		l.Inclinations[i] = units.Degrees(between(src, 0, 2))
		l.Masses[i] = units.EarthMass(between(src, 0.3, 3))
	}
	l.Classify()
	return l
}

// ResonantChain links each planet to the next through a fixed cycle of
// mean-motion resonances.
type ResonantChain struct{}

// ChainCycle is the ratio sequence, outer:inner, applied pair by pair.
var ChainCycle = [][2]int{{3, 2}, {4, 3}, {5, 4}, {6, 5}, {7, 6}}

func (ResonantChain) Kind() registry.Architecture { return registry.ArchitectureResonantChain }

func (ResonantChain) Layout(src rng.Source, n int, host units.SolarMass) Layout {
	l := newLayout(n)
	if n > 1 {
		l.Ratios = make([][2]int, 0, n-1)
	}
	period := units.Days(between(src, 1.5, 4))
	for i := 0; i < n; i++ {
		if i > 0 {
			ratio := ChainCycle[(i-1)%len(ChainCycle)]
			period *= units.Days(float64(ratio[0]) / float64(ratio[1]))
			l.Ratios = append(l.Ratios, ratio)
		}
		l.Periods[i] = period
		l.SemiMajorAxes[i] = units.AxisFromPeriod(period, host)
		l.Eccentricities[i] = between(src, 0, 0.02)
		l.Inclinations[i] = units.Degrees(between(src, 0, 1))
		l.Masses[i] = units.EarthMass(between(src, 1, 10))
	}
	l.Classify()
	return l
}

// GasGiantDominated scatters planets widely with giants on the inner half.
type GasGiantDominated struct{}

func (GasGiantDominated) Kind() registry.Architecture {
	return registry.ArchitectureGasGiantDominated
}

func (GasGiantDominated) Layout(src rng.Source, n int, host units.SolarMass) Layout {
	l := newLayout(n)
	for i := 0; i < n; i++ {
		l.SemiMajorAxes[i] = units.AU(between(src, 0.5, 20))
		l.Eccentricities[i] = between(src, 0, 0.3)
		l.Inclinations[i] = units.Degrees(between(src, 0, 5))
	}
	l.SortByAxis()

	giants := (n + 1) / 2
	for i := 0; i < n; i++ {
		if i < giants {
			l.Masses[i] = units.EarthMass(between(src, 50, 500))
		} else {
			l.Masses[i] = units.EarthMass(between(src, 0.5, 5))
		}
		l.Periods[i] = units.PeriodFromAxis(l.SemiMajorAxes[i], host)
	}
	l.Classify()
	return l
}

// RockyDominated keeps small planets within a few AU.
type RockyDominated struct{}

func (RockyDominated) Kind() registry.Architecture { return registry.ArchitectureRockyDominated }

func (RockyDominated) Layout(src rng.Source, n int, host units.SolarMass) Layout {
	l := newLayout(n)
	for i := 0; i < n; i++ {
		l.SemiMajorAxes[i] = units.AU(between(src, 0.3, 3))
		l.Eccentricities[i] = between(src, 0, 0.1)
		l.Inclinations[i] = units.Degrees(between(src, 0, 3))
		l.Masses[i] = units.EarthMass(between(src, 0.1, 8))
	}
	l.SortByAxis()
	for i := 0; i < n; i++ {
		l.Periods[i] = units.PeriodFromAxis(l.SemiMajorAxes[i], host)
	}
	l.Classify()
	return l
}

// Standard spaces planets on a Titius-Bode-like ladder, a = 0.4·1.7^i,
// with terrestrial masses inside 2 AU and giants beyond.
type Standard struct{}

const snowLine units.AU = 2

func (Standard) Kind() registry.Architecture { return registry.ArchitectureStandard }

func (Standard) Layout(src rng.Source, n int, host units.SolarMass) Layout {
	l := newLayout(n)
	for i := 0; i < n; i++ {
		a := units.AU(0.4 * math.Pow(1.7, float64(i)))
		l.SemiMajorAxes[i] = a
		l.Periods[i] = units.PeriodFromAxis(a, host)
		l.Eccentricities[i] = between(src, 0, 0.2)
		l.Inclinations[i] = units.Degrees(between(src, 0, 5))
		if a < snowLine {
			l.Masses[i] = units.EarthMass(between(src, 0.05, 2))
		} else {
			l.Masses[i] = units.EarthMass(math.Pow(10, between(src, 1, math.Log10(400))))
		}
	}
	l.Classify()
	return l
}

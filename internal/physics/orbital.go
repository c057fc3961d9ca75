package physics

import (
	"math"
	"sort"

	"stellar-forge/internal/units"
)

const (
	// ResonanceTolerance is the largest relative deviation still counted
	// as a mean-motion resonance.
	ResonanceTolerance = 0.05

	// StabilityThreshold separates stable from unstable Hill factors.
	StabilityThreshold = 3.0

	// isolatedFactor is reported when there is no adjacent pair to test.
	isolatedFactor = 100.0

	hillSpacing = 2.4
)

// resonanceTable lists the recognised period ratios, outer:inner.
var resonanceTable = [][2]int{
	{2, 1}, {3, 2}, {4, 3}, {5, 4}, {5, 3}, {7, 4}, {3, 1}, {4, 1}, {5, 1},
}

// Resonance is the best table match for a period pair.
type Resonance struct {
	Ratio     [2]int  `json:"ratio"`
	Strength  float64 `json:"strength"`
	Deviation float64 `json:"deviation"`
}

// IsResonant reports whether a table entry matched.
func (r Resonance) IsResonant() bool {
	return r.Ratio != [2]int{1, 1}
}

// OrbitalResonance matches P2/P1 (inverted when below 1) against the
// resonance table. The closest entry within 5% wins and its strength is
// max(0, 1 - 20·deviation). No match returns ratio 1:1 with strength 0.
func OrbitalResonance(p1, p2 units.Days) Resonance {
	none := Resonance{Ratio: [2]int{1, 1}}
	if p1 <= 0 || p2 <= 0 {
		return none
	}

	ratio := float64(p2 / p1)
	if ratio < 1 {
		ratio = 1 / ratio
	}

	best := none
	bestDev := math.Inf(1)
	for _, entry := range resonanceTable {
		target := float64(entry[0]) / float64(entry[1])
		dev := math.Abs(ratio-target) / target
		if dev < bestDev {
			bestDev = dev
			best = Resonance{Ratio: entry, Deviation: dev}
		}
	}

	if bestDev >= ResonanceTolerance {
		return none
	}
	best.Strength = math.Max(0, 1-20*bestDev)
	return best
}

// Orbit is the minimum a Hill test needs to know about a planet.
type Orbit struct {
	SemiMajorAxis units.AU
	Mass          units.EarthMass
}

// HillResult is the verdict of a Hill stability test.
type HillResult struct {
	Factor      float64   `json:"factor"`      // minimum over adjacent pairs
	Stable      bool      `json:"stable"`      // Factor > 3
	PairFactors []float64 `json:"pairFactors"` // by increasing semi-major axis
}

// HillStability measures each adjacent pair's separation in mutual Hill
// radii, r_H = ā·((m₁+m₂)/3M★)^⅓, and reports Δa/(2.4·r_H). Orbits are
// sorted by semi-major axis first. Fewer than two planets are trivially stable.
func HillStability(orbits []Orbit, stellarMass units.SolarMass) HillResult {
	if len(orbits) < 2 {
		return HillResult{Factor: isolatedFactor, Stable: true, PairFactors: []float64{}}
	}
	if stellarMass <= 0 {
		return HillResult{PairFactors: []float64{}}
	}

	sorted := append([]Orbit(nil), orbits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SemiMajorAxis < sorted[j].SemiMajorAxis
	})

	pairs := make([]float64, 0, len(sorted)-1)
	min := math.Inf(1)
	for i := 0; i < len(sorted)-1; i++ {
		f := pairFactor(sorted[i], sorted[i+1], stellarMass)
		pairs = append(pairs, f)
		min = math.Min(min, f)
	}

	return HillResult{
		Factor:      min,
		Stable:      min > StabilityThreshold,
		PairFactors: pairs,
	}
}

// MutualHillRadius returns r_H for a pair of orbits.
func MutualHillRadius(inner, outer Orbit, stellarMass units.SolarMass) units.AU {
	if stellarMass <= 0 {
		return 0
	}
	mean := (inner.SemiMajorAxis + outer.SemiMajorAxis) / 2
	pairMass := float64((inner.Mass + outer.Mass).SolarMass())
	if pairMass <= 0 {
		return 0
	}
	return mean * units.AU(math.Cbrt(pairMass/(3*float64(stellarMass))))
}

func pairFactor(inner, outer Orbit, stellarMass units.SolarMass) float64 {
	rh := MutualHillRadius(inner, outer, stellarMass)
	if rh <= 0 {
		return isolatedFactor
	}
	return float64(outer.SemiMajorAxis-inner.SemiMajorAxis) / (hillSpacing * float64(rh))
}

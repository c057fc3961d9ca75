// Package dynamics analyses the orbital architecture of a generated system:
// mean-motion resonances, Hill stability, pairwise interaction strengths and
// qualitative evolution predictions. It is deterministic and draws no
// random numbers.
package dynamics

import (
	"fmt"
	"math"

	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	// MinResonanceStrength is the weakest resonance kept in the report.
	MinResonanceStrength = 0.1

	// MaxTimescale caps stability estimates.
	MaxTimescale units.Years = 1e10

	highEccentricity = 0.3
	youngAge         = 0.01 // Gyr

	// Chambers et al. (1996) fit, log10(t/P_inner) = b·Δ + c
	chambersSlope     = 1.176
	chambersIntercept = -1.663
	hillSpacing       = 2.4
)

// OrbitalElements is one row of the element matrix.
type OrbitalElements struct {
	SemiMajorAxis       units.AU      `json:"a"`
	Eccentricity        float64       `json:"e"`
	Inclination         units.Degrees `json:"i"`
	AscendingNode       units.Degrees `json:"omega"`
	ArgumentOfPeriapsis units.Degrees `json:"w"`
	MeanAnomaly         units.Degrees `json:"m"`
}

// ResonancePair is a detected mean-motion resonance between two planets.
type ResonancePair struct {
	Inner    int     `json:"inner"`
	Outer    int     `json:"outer"`
	Ratio    [2]int  `json:"ratio"`
	Strength float64 `json:"strength"`
}

// Stability is the system-wide verdict.
type Stability struct {
	Stable      bool        `json:"stable"`
	Factor      float64     `json:"factor"`
	Timescale   units.Years `json:"timescale"`
	PairFactors []float64   `json:"pairFactors"`
	Factors     []string    `json:"factors"`
}

// Data is the complete dynamics report.
type Data struct {
	Elements     []OrbitalElements `json:"elements"`
	Resonances   []ResonancePair   `json:"resonances"`
	Stability    Stability         `json:"stability"`
	Interactions [][]float64       `json:"interactions"`
	Predictions  []string          `json:"predictions"`
}

// Analyze builds the dynamics report for a config. chaos is the archetype's
// secular chaos parameter in [0,1].
func Analyze(cfg *system.Config, chaos float64) Data {
	n := cfg.NumberOfPlanets
	d := Data{
		Elements:     elementMatrix(cfg),
		Resonances:   findResonances(cfg),
		Interactions: interactionMatrix(cfg),
	}

	orbits := make([]physics.Orbit, n)
	for i := 0; i < n; i++ {
		orbits[i] = physics.Orbit{SemiMajorAxis: cfg.SemiMajorAxes[i], Mass: cfg.PlanetMasses[i]}
	}
	hill := physics.HillStability(orbits, cfg.HostMass())

	d.Stability = Stability{
		Stable:      hill.Stable,
		Factor:      hill.Factor,
		Timescale:   timescale(hill.Factor, innermostPeriod(cfg)),
		PairFactors: hill.PairFactors,
		Factors:     stabilityFactors(cfg, hill, d.Resonances),
	}
	d.Predictions = predictions(cfg, chaos, d)
	return d
}

func elementMatrix(cfg *system.Config) []OrbitalElements {
	rows := make([]OrbitalElements, cfg.NumberOfPlanets)
	for i := range rows {
		rows[i] = OrbitalElements{
			SemiMajorAxis:       cfg.SemiMajorAxes[i],
			Eccentricity:        cfg.Eccentricities[i],
			Inclination:         cfg.Inclinations[i],
			AscendingNode:       cfg.AscendingNodes[i],
			ArgumentOfPeriapsis: cfg.ArgumentsOfPeriapsis[i],
			MeanAnomaly:         cfg.MeanAnomalies[i],
		}
	}
	return rows
}

func findResonances(cfg *system.Config) []ResonancePair {
	pairs := []ResonancePair{}
	for i := 0; i < cfg.NumberOfPlanets; i++ {
		for j := i + 1; j < cfg.NumberOfPlanets; j++ {
			r := physics.OrbitalResonance(cfg.Periods[i], cfg.Periods[j])
			if r.Strength > MinResonanceStrength {
				pairs = append(pairs, ResonancePair{Inner: i, Outer: j, Ratio: r.Ratio, Strength: r.Strength})
			}
		}
	}
	return pairs
}

// interactionMatrix returns I[i][j] = m_i·m_j / Δa² in M⊕²/AU², zero on the
// diagonal and for coincident orbits.
func interactionMatrix(cfg *system.Config) [][]float64 {
	n := cfg.NumberOfPlanets
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			da := float64(cfg.SemiMajorAxes[j] - cfg.SemiMajorAxes[i])
			if da == 0 {
				continue
			}
			v := float64(cfg.PlanetMasses[i]) * float64(cfg.PlanetMasses[j]) / (da * da)
			m[i][j], m[j][i] = v, v
		}
	}
	return m
}

func innermostPeriod(cfg *system.Config) units.Days {
	var min units.Days
	for i, p := range cfg.Periods {
		if i == 0 || p < min {
			min = p
		}
	}
	return min
}

// timescale converts a Hill factor to an instability estimate in years.
func timescale(factor float64, innerPeriod units.Days) units.Years {
	if innerPeriod <= 0 {
		return MaxTimescale
	}
	delta := factor * hillSpacing
	exponent := math.Min(chambersSlope*delta+chambersIntercept, 20)
	t := units.Years(math.Pow(10, exponent)) * innerPeriod.Years()
	if t > MaxTimescale {
		return MaxTimescale
	}
	return t
}

func stabilityFactors(cfg *system.Config, hill physics.HillResult, resonances []ResonancePair) []string {
	factors := []string{}
	n := cfg.NumberOfPlanets

	for i, f := range hill.PairFactors {
		if f <= physics.StabilityThreshold {
			factors = append(factors, fmt.Sprintf(
				"planets %d and %d are separated by only %.1f mutual Hill radii", i+1, i+2, f*hillSpacing))
		}
	}

	for i := 0; i+1 < n; i++ {
		apo := float64(cfg.SemiMajorAxes[i]) * (1 + cfg.Eccentricities[i])
		peri := float64(cfg.SemiMajorAxes[i+1]) * (1 - cfg.Eccentricities[i+1])
		if apo > peri {
			factors = append(factors, fmt.Sprintf("orbits of planets %d and %d cross", i+1, i+2))
		}
	}

	for i := 0; i < n; i++ {
		if e := cfg.Eccentricities[i]; e > highEccentricity {
			factors = append(factors, fmt.Sprintf("planet %d has a high eccentricity (%.2f)", i+1, e))
		}
	}

	if b := cfg.Binary; b != nil && n > 0 {
		limit := b.StabilityLimit()
		switch b.Variant {
		case system.STypeOrbit:
			if outer := cfg.SemiMajorAxes[n-1]; outer > limit {
				factors = append(factors, fmt.Sprintf(
					"planet %d orbits beyond the S-type limit of %.2f AU", n, float64(limit)))
			}
		case system.PTypeOrbit:
			if inner := cfg.SemiMajorAxes[0]; inner < limit {
				factors = append(factors, fmt.Sprintf(
					"planet 1 orbits inside the P-type limit of %.2f AU", float64(limit)))
			}
		}
	}

	if len(resonances) > 0 {
		factors = append(factors, fmt.Sprintf(
			"%d mean-motion resonances may protect close pairs", len(resonances)))
	}
	return factors
}

func predictions(cfg *system.Config, chaos float64, d Data) []string {
	out := []string{}
	age := cfg.Age()

	switch {
	case cfg.NumberOfPlanets == 0:
		out = append(out, "No planets: dynamical evolution is limited to circumstellar material")
	case chaos > 0.5:
		out = append(out, "Strong secular chaos: eccentricities are likely to diffuse over Gyr timescales")
	case chaos > 0.2:
		out = append(out, "Moderate secular perturbations will slowly exchange eccentricity between planets")
	default:
		out = append(out, "Secular evolution is quiescent")
	}

	if cfg.NumberOfPlanets > 1 {
		if d.Stability.Stable {
			out = append(out, "Planetary orbits should remain stable for "+FormatYears(d.Stability.Timescale)+" or longer")
		} else {
			out = append(out, "Close encounters are expected within "+FormatYears(d.Stability.Timescale))
		}
	}

	if len(d.Resonances) > 0 {
		out = append(out, fmt.Sprintf("%d resonant pairs will lock period ratios while migration is damped", len(d.Resonances)))
	}

	switch cfg.Remnant {
	case registry.RemnantWhiteDwarf:
		out = append(out, "The host is a white dwarf: inner planets were engulfed or scattered during the giant phase")
	case registry.RemnantNeutronStar:
		out = append(out, "The host is a neutron star: surviving planets formed from supernova fallback material")
	default:
		if len(cfg.StellarMasses) > 0 {
			lifetime := physics.MainSequenceLifetime(cfg.StellarMasses[0])
			if age > lifetime*0.9 {
				out = append(out, "The primary is leaving the main sequence: inner planets face engulfment")
			} else {
				remaining := (lifetime - age).Years()
				out = append(out, "The primary has "+FormatYears(remaining)+" of main-sequence life remaining")
			}
		}
	}

	if age > 0 && age < youngAge {
		out = append(out, "Young system: disk-driven migration and accretion are still active")
	}
	return out
}

// FormatYears renders a duration with a human scale.
func FormatYears(y units.Years) string {
	v := float64(y)
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1f Gyr", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1f Myr", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1f kyr", v/1e3)
	default:
		return fmt.Sprintf("%.0f yr", v)
	}
}

// Package statistics reduces a generated system to summary metrics.
// Compute is a pure projection of its input and can be rerun at any time.
package statistics

import (
	"math"

	"stellar-forge/internal/dynamics"
	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	rvConstant       = 28.4329 // m/s, Jupiter around the Sun at 1 yr
	observerDistance = 10.0    // pc
	geometricAlbedo  = 0.3
)

// Input is everything the aggregator reads.
type Input struct {
	Config       *system.Config
	Architecture registry.Architecture
	Stars        []system.Star
	Planets      []system.Planet
	Disks        []system.Disk
	Dynamics     dynamics.Data
}

// Statistics is the aggregate view of one system.
type Statistics struct {
	// composition
	StarCount              int                   `json:"starCount"`
	PlanetCount            int                   `json:"planetCount"`
	DiskCount              int                   `json:"diskCount"`
	TotalStellarMass       units.SolarMass       `json:"totalStellarMass"`
	TotalStellarLuminosity units.SolarLuminosity `json:"totalStellarLuminosity"`
	TotalPlanetMass        units.EarthMass       `json:"totalPlanetMass"`
	TotalDiskMass          units.EarthMass       `json:"totalDiskMass"`
	PlanetToStarMassRatio  float64               `json:"planetToStarMassRatio"`
	MostMassivePlanet      units.EarthMass       `json:"mostMassivePlanet"`
	RockyPlanets           int                   `json:"rockyPlanets"`
	IceGiants              int                   `json:"iceGiants"`
	GasGiants              int                   `json:"gasGiants"`
	TotalMoons             int                   `json:"totalMoons"`
	RingedPlanets          int                   `json:"ringedPlanets"`

	// orbital architecture
	InnermostOrbit        units.AU      `json:"innermostOrbit"`
	OutermostOrbit        units.AU      `json:"outermostOrbit"`
	ShortestPeriod        units.Days    `json:"shortestPeriod"`
	LongestPeriod         units.Days    `json:"longestPeriod"`
	MeanSpacingRatio      float64       `json:"meanSpacingRatio"`
	MinSpacingRatio       float64       `json:"minSpacingRatio"`
	MaxSpacingRatio       float64       `json:"maxSpacingRatio"`
	MeanEccentricity      float64       `json:"meanEccentricity"`
	MaxEccentricity       float64       `json:"maxEccentricity"`
	MeanInclination       units.Degrees `json:"meanInclination"`
	InclinationDispersion units.Degrees `json:"inclinationDispersion"`

	// resonances and stability
	ResonantPairs         int         `json:"resonantPairs"`
	MeanResonanceStrength float64     `json:"meanResonanceStrength"`
	StrongestResonance    [2]int      `json:"strongestResonance"`
	Stable                bool        `json:"stable"`
	StabilityFactor       float64     `json:"stabilityFactor"`
	StabilityTimescale    units.Years `json:"stabilityTimescale"`

	// habitability
	HabitabilityScore     float64               `json:"habitabilityScore"`
	MeanHabitability      float64               `json:"meanHabitability"`
	HabitableZonePlanets  int                   `json:"habitableZonePlanets"`
	PlanetsWithAtmosphere int                   `json:"planetsWithAtmosphere"`
	TidallyLockedPlanets  int                   `json:"tidallyLockedPlanets"`
	HabitableZone         physics.HabitableZone `json:"habitableZone"`

	// timescales
	SystemAge          units.Gyr   `json:"systemAge"`
	RemainingLifetime  units.Gyr   `json:"remainingLifetime"`
	FormationTimescale units.Years `json:"formationTimescale"`
	MigrationTimescale units.Years `json:"migrationTimescale"`

	// observability
	TransitProbability   float64 `json:"transitProbability"`
	MaxRVSemiAmplitude   float64 `json:"maxRvSemiAmplitude"`   // m/s
	MaxAstrometricSignal float64 `json:"maxAstrometricSignal"` // μas at 10 pc
	MaxReflectedContrast float64 `json:"maxReflectedContrast"` // planet/star flux
	DetectionDifficulty  float64 `json:"detectionDifficulty"`  // 0 easy .. 1 hard

	// generation metadata
	Class         registry.SystemClass  `json:"class"`
	Seed          uint64                `json:"seed"`
	Architecture  registry.Architecture `json:"architecture"`
	BinaryVariant system.BinaryVariant  `json:"binaryVariant,omitempty"`
	Migrated      bool                  `json:"migrated"`
}

// Compute aggregates the input.
func Compute(in Input) Statistics {
	cfg := in.Config
	s := Statistics{
		StarCount:     len(in.Stars),
		PlanetCount:   len(in.Planets),
		DiskCount:     len(in.Disks),
		Class:         cfg.Class,
		Seed:          cfg.Seed,
		Architecture:  in.Architecture,
		Migrated:      cfg.Migration.Occurred,
		SystemAge:     cfg.Age(),
		HabitableZone: cfg.HabitableZone,
	}
	if cfg.Binary != nil {
		s.BinaryVariant = cfg.Binary.Variant
	}

	composition(&s, in)
	orbits(&s, in.Planets)
	resonance(&s, in.Dynamics)
	habitability(&s, in.Planets)
	timescales(&s, in)
	observability(&s, in)
	return s
}

func composition(s *Statistics, in Input) {
	for _, st := range in.Stars {
		s.TotalStellarMass += st.Mass
		s.TotalStellarLuminosity += st.Luminosity
	}
	for _, d := range in.Disks {
		s.TotalDiskMass += d.Mass
	}
	for _, p := range in.Planets {
		s.TotalPlanetMass += p.Mass
		s.MostMassivePlanet = units.EarthMass(math.Max(float64(s.MostMassivePlanet), float64(p.Mass)))
		s.TotalMoons += p.Moons
		if p.HasRings {
			s.RingedPlanets++
		}
		switch {
		case p.Type.IsRocky():
			s.RockyPlanets++
		case p.Type.IsIceGiant():
			s.IceGiants++
		case p.Type.IsGiant():
			s.GasGiants++
		}
	}
	if s.TotalStellarMass > 0 {
		s.PlanetToStarMassRatio = float64(s.TotalPlanetMass.SolarMass() / s.TotalStellarMass)
	}
}

func orbits(s *Statistics, planets []system.Planet) {
	n := len(planets)
	if n == 0 {
		return
	}

	s.InnermostOrbit, s.OutermostOrbit = planets[0].SemiMajorAxis, planets[0].SemiMajorAxis
	s.ShortestPeriod, s.LongestPeriod = planets[0].Period, planets[0].Period

	var eSum, iSum float64
	for _, p := range planets {
		if p.SemiMajorAxis < s.InnermostOrbit {
			s.InnermostOrbit = p.SemiMajorAxis
		}
		if p.SemiMajorAxis > s.OutermostOrbit {
			s.OutermostOrbit = p.SemiMajorAxis
		}
		if p.Period < s.ShortestPeriod {
			s.ShortestPeriod = p.Period
		}
		if p.Period > s.LongestPeriod {
			s.LongestPeriod = p.Period
		}
		eSum += p.Eccentricity
		iSum += float64(p.Inclination)
		s.MaxEccentricity = math.Max(s.MaxEccentricity, p.Eccentricity)
	}
	s.MeanEccentricity = eSum / float64(n)
	meanInc := iSum / float64(n)
	s.MeanInclination = units.Degrees(meanInc)

	var variance float64
	for _, p := range planets {
		d := float64(p.Inclination) - meanInc
		variance += d * d
	}
	s.InclinationDispersion = units.Degrees(math.Sqrt(variance / float64(n)))

	if n < 2 {
		return
	}
	var ratioSum float64
	s.MinSpacingRatio = math.Inf(1)
	for i := 1; i < n; i++ {
		r := float64(planets[i].SemiMajorAxis / planets[i-1].SemiMajorAxis)
		ratioSum += r
		s.MinSpacingRatio = math.Min(s.MinSpacingRatio, r)
		s.MaxSpacingRatio = math.Max(s.MaxSpacingRatio, r)
	}
	s.MeanSpacingRatio = ratioSum / float64(n-1)
}

func resonance(s *Statistics, d dynamics.Data) {
	s.ResonantPairs = len(d.Resonances)
	s.StrongestResonance = [2]int{1, 1}
	best := 0.0
	var sum float64
	for _, r := range d.Resonances {
		sum += r.Strength
		if r.Strength > best {
			best = r.Strength
			s.StrongestResonance = r.Ratio
		}
	}
	if len(d.Resonances) > 0 {
		s.MeanResonanceStrength = sum / float64(len(d.Resonances))
	}
	s.Stable = d.Stability.Stable
	s.StabilityFactor = d.Stability.Factor
	s.StabilityTimescale = d.Stability.Timescale
}

func habitability(s *Statistics, planets []system.Planet) {
	var sum float64
	for _, p := range planets {
		sum += p.Habitability
		s.HabitabilityScore = math.Max(s.HabitabilityScore, p.Habitability)
		if p.InHabitableZone {
			s.HabitableZonePlanets++
		}
		if p.HasAtmosphere {
			s.PlanetsWithAtmosphere++
		}
		if p.TidallyLocked {
			s.TidallyLockedPlanets++
		}
	}
	if len(planets) > 0 {
		s.MeanHabitability = sum / float64(len(planets))
	}
}

// timescales estimates formation and migration times. Core accretion slows
// as a^1.5 and speeds up with metallicity; type I migration scales inversely
// with planet mass.
func timescales(s *Statistics, in Input) {
	cfg := in.Config
	if len(in.Stars) > 0 && in.Stars[0].Remnant == registry.RemnantNone {
		if remaining := in.Stars[0].MainSequenceLifetime - in.Stars[0].Age; remaining > 0 {
			s.RemainingLifetime = remaining
		}
	}

	if len(in.Planets) == 0 {
		return
	}
	outer := math.Max(float64(s.OutermostOrbit), 0.1)
	s.FormationTimescale = units.Years(1e6 * math.Pow(outer, 1.5) * math.Pow(10, -cfg.Metallicity))

	if s.MostMassivePlanet > 0 {
		inner := math.Max(float64(s.InnermostOrbit), 0.01)
		s.MigrationTimescale = units.Years(1e5 * (units.EarthMassesPerJupiter / float64(s.MostMassivePlanet)) * math.Sqrt(inner))
	}
}

func observability(s *Statistics, in Input) {
	if len(in.Stars) == 0 || len(in.Planets) == 0 {
		s.DetectionDifficulty = 1
		return
	}
	host := in.Stars[0]
	hostMass := float64(in.Config.HostMass())
	starRadius := float64(host.Radius.AU())

	for _, p := range in.Planets {
		a := float64(p.SemiMajorAxis)
		if a <= 0 || hostMass <= 0 {
			continue
		}
		ecc := 1 - p.Eccentricity*p.Eccentricity

		transit := math.Min(1, starRadius/(a*ecc))
		s.TransitProbability = math.Max(s.TransitProbability, transit)

		years := float64(p.Period.Years())
		if years > 0 {
			k := rvConstant * (float64(p.Mass) / units.EarthMassesPerJupiter) *
				math.Pow(hostMass, -2.0/3) * math.Pow(years, -1.0/3) / math.Sqrt(ecc)
			s.MaxRVSemiAmplitude = math.Max(s.MaxRVSemiAmplitude, k)
		}

		astro := 1e6 * float64(p.Mass.SolarMass()) / hostMass * a / observerDistance
		s.MaxAstrometricSignal = math.Max(s.MaxAstrometricSignal, astro)

		rp := float64(p.Radius.AU())
		s.MaxReflectedContrast = math.Max(s.MaxReflectedContrast, geometricAlbedo*(rp/a)*(rp/a))
	}

	easiest := math.Max(
		math.Min(1, s.TransitProbability/0.1),
		math.Max(math.Min(1, s.MaxRVSemiAmplitude/10), math.Min(1, s.MaxAstrometricSignal/100)),
	)
	s.DetectionDifficulty = 1 - easiest
}

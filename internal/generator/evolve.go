package generator

import (
	"math"

	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	// gas disks dissipate after about 10 Myr
	diskDissipationAge units.Gyr = 0.01
	debrisMassFraction           = 0.01

	neutronStarProgenitor units.SolarMass = 8
	neutronStarMass       units.SolarMass = 1.4

	// giant-branch envelope reaches roughly 1 AU per solar mass
	engulfmentRadiusPerMass = 1.0
)

// EvolveConfig advances a config by dt. Stars age, gas disks older than
// 10 Myr turn into debris disks, eccentricities damp by tidal
// circularisation and a primary past its main-sequence lifetime collapses
// into a remnant, engulfing close planets and releasing the rest onto
// wider orbits. The input is not modified.
func EvolveConfig(cfg *system.Config, dt units.Years) (*system.Config, error) {
	if cfg == nil {
		return nil, apperrors.EvolutionInputf("config is nil")
	}
	if err := physics.CheckPositive("time step", float64(dt)); err != nil {
		return nil, apperrors.WrapEvolutionInput("cannot evolve", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.WrapEvolutionInput("cannot evolve malformed config", err)
	}

	out := cfg.Clone()
	out.Elapsed += dt
	oldAge := out.Age()
	step := dt.Gyr()
	for i := range out.StellarAges {
		out.StellarAges[i] += step
	}
	newAge := out.Age()

	evolveDisk(out, oldAge, newAge)
	dampEccentricities(out, dt)
	if out.Remnant == registry.RemnantNone && newAge > physics.MainSequenceLifetime(out.StellarMasses[0]) {
		collapsePrimary(out)
	}
	return out, nil
}

// Evolve advances a result by dt and derives the evolved system.
func (g *Generator) Evolve(result *SystemResult, dt units.Years) (*SystemResult, error) {
	if result == nil {
		return nil, apperrors.EvolutionInputf("result is nil")
	}
	cfg, err := EvolveConfig(result.Config, dt)
	if err != nil {
		return nil, err
	}
	return g.GenerateFromConfig(cfg)
}

func evolveDisk(cfg *system.Config, oldAge, newAge units.Gyr) {
	switch {
	case cfg.HasProtoplanetaryDisk && newAge > diskDissipationAge:
		cfg.HasProtoplanetaryDisk = false
		cfg.HasDebrisDisk = true
		cfg.DiskMass *= debrisMassFraction
	case cfg.HasDebrisDisk && oldAge > 0:
		// collisional grinding, mass ∝ 1/t
		cfg.DiskMass *= units.EarthMass(oldAge / newAge)
	}
}

func dampEccentricities(cfg *system.Config, dt units.Years) {
	host := cfg.HostMass()
	for i := 0; i < cfg.NumberOfPlanets; i++ {
		m := cfg.PlanetMasses[i]
		tau := physics.CircularizationTime(m, physics.MassToRadius(m), cfg.SemiMajorAxes[i], host, physics.DefaultTidalQ)
		cfg.Eccentricities[i] *= math.Exp(-float64(dt / tau))
	}
}

// collapsePrimary turns the primary into a remnant. Mass loss is slow
// compared to the orbits, so surviving planets expand adiabatically by
// the ratio of initial to final mass.
func collapsePrimary(cfg *system.Config) {
	initial := cfg.StellarMasses[0]
	final := neutronStarMass
	cfg.Remnant = registry.RemnantNeutronStar
	if initial < neutronStarProgenitor {
		final = min(initial, 0.109*initial+0.394) // initial-final mass relation
		cfg.Remnant = registry.RemnantWhiteDwarf
	}
	hostBefore := cfg.HostMass()
	cfg.StellarMasses[0] = final
	hostAfter := cfg.HostMass()
	expansion := units.AU(hostBefore / hostAfter)

	if b := cfg.Binary; b != nil {
		pair := cfg.StellarMasses[0] + cfg.StellarMasses[1]
		b.Separation *= units.AU((initial + cfg.StellarMasses[1]) / pair)
		b.Period = units.PeriodFromAxis(b.Separation, pair)
		b.MassRatio = float64(cfg.StellarMasses[1] / cfg.StellarMasses[0])
	}

	engulfed := units.AU(engulfmentRadiusPerMass * float64(initial))
	keep := make([]int, 0, cfg.NumberOfPlanets)
	for i := 0; i < cfg.NumberOfPlanets; i++ {
		if cfg.SemiMajorAxes[i] > engulfed {
			keep = append(keep, i)
		}
	}
	if len(keep) < cfg.NumberOfPlanets {
		cfg.ResonanceChain = nil
	}

	survivors := len(keep)
	periods := make([]units.Days, survivors)
	axes := make([]units.AU, survivors)
	eccs := make([]float64, survivors)
	incs := make([]units.Degrees, survivors)
	nodes := make([]units.Degrees, survivors)
	peris := make([]units.Degrees, survivors)
	anomalies := make([]units.Degrees, survivors)
	masses := make([]units.EarthMass, survivors)
	types := make([]system.PlanetType, survivors)
	for to, from := range keep {
		axes[to] = cfg.SemiMajorAxes[from] * expansion
		periods[to] = units.PeriodFromAxis(axes[to], hostAfter)
		eccs[to] = cfg.Eccentricities[from]
		incs[to] = cfg.Inclinations[from]
		nodes[to] = cfg.AscendingNodes[from]
		peris[to] = cfg.ArgumentsOfPeriapsis[from]
		anomalies[to] = cfg.MeanAnomalies[from]
		masses[to] = cfg.PlanetMasses[from]
		types[to] = system.ClassifyPlanet(masses[to], axes[to])
	}

	cfg.NumberOfPlanets = survivors
	cfg.Periods = periods
	cfg.SemiMajorAxes = axes
	cfg.Eccentricities = eccs
	cfg.Inclinations = incs
	cfg.AscendingNodes = nodes
	cfg.ArgumentsOfPeriapsis = peris
	cfg.MeanAnomalies = anomalies
	cfg.PlanetMasses = masses
	cfg.PlanetTypes = types

	if cfg.HasDebrisDisk || cfg.HasProtoplanetaryDisk {
		cfg.DiskInnerRadius *= expansion
		cfg.DiskOuterRadius *= expansion
	}
}

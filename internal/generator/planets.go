package generator

import (
	"math"

	"stellar-forge/internal/architecture"
	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	giantMass        units.EarthMass = 50
	snowLine         units.AU        = 2
	maxScatteredEcc                  = 0.9
	scatterThreshold                 = 0.3
	sTypeMargin                      = 0.95
	pTypeMargin                      = 1.05
)

var romanNumerals = []string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"XI", "XII", "XIII", "XIV", "XV",
}

// drawPlanetary lays out the planets of a config with the archetype's
// strategy, then applies migration, scattering and binary limits.
func drawPlanetary(r *rng.Lehmer, def registry.TypeDefinition, over overrides, cfg *system.Config) {
	n := r.IntRange(def.NumberOfPlanets.Min, def.NumberOfPlanets.Max)
	if over.planets > 0 {
		n = clampInt(over.planets, def.NumberOfPlanets.Min, def.NumberOfPlanets.Max)
	}

	host := cfg.HostMass()
	layout := architecture.For(def.Architecture).Layout(r, n, host)

	cfg.Migration = migrate(r, &layout, def, host)
	cfg.Migration.Scattered = scatter(r, &layout, def.Orbital.ChaosParameter)
	fitBinary(&layout, cfg.Binary, host)

	cfg.NumberOfPlanets = n
	cfg.Periods = layout.Periods
	cfg.SemiMajorAxes = layout.SemiMajorAxes
	cfg.Eccentricities = layout.Eccentricities
	cfg.Inclinations = layout.Inclinations
	cfg.PlanetMasses = layout.Masses
	cfg.PlanetTypes = layout.Types
	if len(layout.Ratios) > 0 {
		cfg.ResonanceChain = &system.ResonanceChain{Ratios: layout.Ratios}
	}

	cfg.AscendingNodes = make([]units.Degrees, n)
	cfg.ArgumentsOfPeriapsis = make([]units.Degrees, n)
	cfg.MeanAnomalies = make([]units.Degrees, n)
	for i := 0; i < n; i++ {
		cfg.AscendingNodes[i] = units.Degrees(r.Range(0, 360))
		cfg.ArgumentsOfPeriapsis[i] = units.Degrees(r.Range(0, 360))
		cfg.MeanAnomalies[i] = units.Degrees(r.Range(0, 360))
	}

	cfg.Features = system.Features{
		Moons:        true,
		Rings:        true,
		AsteroidBelt: outerGiant(cfg) >= 0 && r.Chance(0.4),
		KuiperBelt:   n > 0 && r.Chance(0.5),
	}
}

// migrate moves the innermost giant inward to a period drawn from the
// bottom decade of the archetype's period range.
func migrate(r *rng.Lehmer, l *architecture.Layout, def registry.TypeDefinition, host units.SolarMass) system.Migration {
	if l.Len() == 0 || !r.Chance(def.Orbital.MigrationProbability) {
		return system.Migration{}
	}

	giant := -1
	for i, m := range l.Masses {
		if m >= giantMass {
			giant = i
			break
		}
	}
	if giant < 0 {
		return system.Migration{}
	}

	lo := def.PeriodLog10.Min
	hi := math.Min(lo+1, def.PeriodLog10.Max)
	target := units.AxisFromPeriod(units.Days(math.Pow(10, r.Range(lo, hi))), host)
	from := l.SemiMajorAxes[giant]
	if target <= 0 || target >= from {
		return system.Migration{}
	}

	l.SemiMajorAxes[giant] = target
	l.Periods[giant] = units.PeriodFromAxis(target, host)
	l.SortByAxis()
	l.Classify()
	return system.Migration{Occurred: true, Mode: "disk", Shift: from - target}
}

// scatter pumps giant eccentricities in chaotic archetypes.
func scatter(r *rng.Lehmer, l *architecture.Layout, chaos float64) bool {
	if chaos <= scatterThreshold || !r.Chance(chaos) {
		return false
	}
	scattered := false
	for i, m := range l.Masses {
		if m < giantMass {
			continue
		}
		l.Eccentricities[i] = math.Min(maxScatteredEcc, l.Eccentricities[i]+r.Range(0, 0.3))
		scattered = true
	}
	return scattered
}

// fitBinary rescales the layout uniformly so it respects the binary's
// stability limit: inside it for S-type orbits, outside for P-type.
func fitBinary(l *architecture.Layout, b *system.BinaryOrbit, host units.SolarMass) {
	n := l.Len()
	if b == nil || n == 0 {
		return
	}
	limit := b.StabilityLimit()
	switch b.Variant {
	case system.STypeOrbit:
		if outer := l.SemiMajorAxes[n-1]; outer > limit {
			l.Rescale(sTypeMargin*float64(limit/outer), host)
		}
	case system.PTypeOrbit:
		if inner := l.SemiMajorAxes[0]; inner < limit {
			l.Rescale(pTypeMargin*float64(limit/inner), host)
		}
	}
}

// derivePlanets computes the physical planets of a config.
func derivePlanets(cfg *system.Config, hostLum units.SolarLuminosity, detail rng.Source, systemName string) []system.Planet {
	hz := cfg.HabitableZone
	host := cfg.HostMass()
	age := cfg.Age()

	planets := make([]system.Planet, cfg.NumberOfPlanets)
	for i := range planets {
		m := cfg.PlanetMasses[i]
		a := cfg.SemiMajorAxes[i]
		temp := physics.EquilibriumTemperature(a, hostLum, physics.DefaultAlbedo)
		radius := physics.MassToRadius(m)
		atmosphere := physics.HasAtmosphere(m, temp)
		lock := physics.TidalLockingTime(m, radius, a, host, physics.DefaultTidalQ)

		p := system.Planet{
			Index:               i,
			Name:                planetName(systemName, i),
			Type:                cfg.PlanetTypes[i],
			Mass:                m,
			Radius:              radius,
			SemiMajorAxis:       a,
			Period:              cfg.Periods[i],
			Eccentricity:        cfg.Eccentricities[i],
			Inclination:         cfg.Inclinations[i],
			AscendingNode:       cfg.AscendingNodes[i],
			ArgumentOfPeriapsis: cfg.ArgumentsOfPeriapsis[i],
			MeanAnomaly:         cfg.MeanAnomalies[i],
			Temperature:         temp,
			Density:             physics.Density(m, radius),
			SurfaceGravity:      physics.SurfaceGravity(m, radius),
			EscapeVelocity:      physics.EscapeVelocity(m, radius),
			HasAtmosphere:       atmosphere,
			Habitability:        physics.HabitabilityScore(m, a, temp, atmosphere, hz),
			InHabitableZone:     hz.Contains(a),
			TidallyLocked:       physics.IsTidallyLocked(lock, age),
			TidalLockingTime:    lock,
		}
		if cfg.Features.Moons {
			p.Moons = physics.MoonCount(m, detail)
		}
		if cfg.Features.Rings {
			p.HasRings = physics.HasRings(m, detail)
		}
		planets[i] = p
	}
	return planets
}

// outerGiant returns the index of the first giant beyond the snow line, or -1.
func outerGiant(cfg *system.Config) int {
	for i := 0; i < cfg.NumberOfPlanets; i++ {
		if cfg.PlanetMasses[i] >= giantMass && cfg.SemiMajorAxes[i] >= snowLine {
			return i
		}
	}
	return -1
}

func planetName(systemName string, index int) string {
	if index < len(romanNumerals) {
		return systemName + " " + romanNumerals[index]
	}
	return systemName + " " + string(rune('A'+index))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

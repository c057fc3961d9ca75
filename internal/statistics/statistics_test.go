package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stellar-forge/internal/dynamics"
	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

func solarSystemInput() Input {
	cfg := &system.Config{
		Class:         registry.ClassSolarAnalog,
		Seed:          7,
		NumberOfStars: 1,
		StellarMasses: []units.SolarMass{1},
		StellarAges:   []units.Gyr{4.6},
		HabitableZone: physics.ComputeHabitableZone(1),
		Migration:     system.Migration{Occurred: true, Mode: "disk"},
	}
	return Input{
		Config:       cfg,
		Architecture: registry.ArchitectureStandard,
		Stars: []system.Star{{
			Mass: 1, Luminosity: 1, Radius: 1, Age: 4.6, MainSequenceLifetime: 10,
		}},
		Planets: []system.Planet{
			{
				Type: system.EarthLike, Mass: 1, Radius: 1, SemiMajorAxis: 1, Period: 365.25,
				Habitability: 0.9, HasAtmosphere: true, InHabitableZone: true, Moons: 1,
			},
			{
				Type: system.JupiterLike, Mass: 318, Radius: physics.MassToRadius(318),
				SemiMajorAxis: 5.2, Period: units.PeriodFromAxis(5.2, 1), Eccentricity: 0.05,
				Inclination: 2, Habitability: 0.1, HasAtmosphere: true, HasRings: true, Moons: 79,
			},
		},
		Disks: []system.Disk{{Type: system.DiskAsteroidBelt, Mass: 0.0005}},
		Dynamics: dynamics.Data{
			Resonances: []dynamics.ResonancePair{
				{Inner: 0, Outer: 1, Ratio: [2]int{2, 1}, Strength: 0.6},
				{Inner: 0, Outer: 1, Ratio: [2]int{3, 2}, Strength: 0.9},
			},
			Stability: dynamics.Stability{Stable: true, Factor: 12, Timescale: 1e10},
		},
	}
}

func TestCompute_Composition(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.Equal(t, 1, s.StarCount)
	assert.Equal(t, 2, s.PlanetCount)
	assert.Equal(t, 1, s.DiskCount)
	assert.Equal(t, units.EarthMass(319), s.TotalPlanetMass)
	assert.Equal(t, units.EarthMass(318), s.MostMassivePlanet)
	assert.Equal(t, 1, s.RockyPlanets)
	assert.Equal(t, 1, s.GasGiants)
	assert.Equal(t, 0, s.IceGiants)
	assert.Equal(t, 80, s.TotalMoons)
	assert.Equal(t, 1, s.RingedPlanets)
	assert.InDelta(t, 319/units.EarthMassesPerSolar, s.PlanetToStarMassRatio, 1e-12)
}

func TestCompute_Orbits(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.Equal(t, units.AU(1), s.InnermostOrbit)
	assert.Equal(t, units.AU(5.2), s.OutermostOrbit)
	assert.Equal(t, units.Days(365.25), s.ShortestPeriod)
	assert.InDelta(t, 5.2, s.MeanSpacingRatio, 1e-12)
	assert.Equal(t, s.MinSpacingRatio, s.MaxSpacingRatio)
	assert.InDelta(t, 0.025, s.MeanEccentricity, 1e-12)
	assert.Equal(t, 0.05, s.MaxEccentricity)
	assert.InDelta(t, 1.0, float64(s.MeanInclination), 1e-12)
	assert.InDelta(t, 1.0, float64(s.InclinationDispersion), 1e-12)
}

func TestCompute_ResonanceAndStability(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.Equal(t, 2, s.ResonantPairs)
	assert.InDelta(t, 0.75, s.MeanResonanceStrength, 1e-12)
	assert.Equal(t, [2]int{3, 2}, s.StrongestResonance)
	assert.True(t, s.Stable)
	assert.Equal(t, 12.0, s.StabilityFactor)
}

func TestCompute_Habitability(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.Equal(t, 0.9, s.HabitabilityScore)
	assert.InDelta(t, 0.5, s.MeanHabitability, 1e-12)
	assert.Equal(t, 1, s.HabitableZonePlanets)
	assert.Equal(t, 2, s.PlanetsWithAtmosphere)
	assert.Equal(t, units.AU(1), s.HabitableZone.Optimal)
}

func TestCompute_Timescales(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.InDelta(t, 5.4, float64(s.RemainingLifetime), 1e-9)
	assert.Greater(t, float64(s.FormationTimescale), 1e6)
	assert.Greater(t, float64(s.MigrationTimescale), 0.0)
	assert.Equal(t, units.Gyr(4.6), s.SystemAge)
}

func TestCompute_Observability(t *testing.T) {
	s := Compute(solarSystemInput())

	// Jupiter induces about 12.5 m/s on the Sun
	assert.InDelta(t, 12.5, s.MaxRVSemiAmplitude, 0.5)
	// and about 500 μas at 10 pc
	assert.InDelta(t, 497, s.MaxAstrometricSignal, 5)
	// Earth's transit probability is R☉/1 AU
	assert.InDelta(t, units.AUPerSolarRadius, s.TransitProbability, 1e-6)
	assert.Greater(t, s.MaxReflectedContrast, 0.0)
	assert.Equal(t, 0.0, s.DetectionDifficulty)
}

func TestCompute_Metadata(t *testing.T) {
	s := Compute(solarSystemInput())

	assert.Equal(t, registry.ClassSolarAnalog, s.Class)
	assert.Equal(t, uint64(7), s.Seed)
	assert.Equal(t, registry.ArchitectureStandard, s.Architecture)
	assert.True(t, s.Migrated)
	assert.Empty(t, s.BinaryVariant)
}

func TestCompute_EmptySystem(t *testing.T) {
	in := solarSystemInput()
	in.Planets = nil
	in.Dynamics = dynamics.Data{}

	s := Compute(in)
	assert.Equal(t, 0, s.PlanetCount)
	assert.Equal(t, 1.0, s.DetectionDifficulty)
	assert.Equal(t, [2]int{1, 1}, s.StrongestResonance)
	assert.Zero(t, s.MeanSpacingRatio)
	assert.Zero(t, s.FormationTimescale)
}

func TestCompute_Deterministic(t *testing.T) {
	assert.Equal(t, Compute(solarSystemInput()), Compute(solarSystemInput()))
}

package generator

import (
	"math"

	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	minCompanionMass units.SolarMass = 0.08 // hydrogen burning limit
	tightBinaryLimit units.AU        = 1    // below this planets circle both stars
	tertiaryDistance                 = 10   // × inner separation
	maxAgeFraction                   = 0.95 // of the main-sequence lifetime
)

var starSuffixes = []string{"A", "B", "C"}

// drawStellar draws the stellar part of a config: masses, a shared age,
// metallicity and, for multiples, the binary orbit.
func drawStellar(r *rng.Lehmer, def registry.TypeDefinition, over overrides) *system.Config {
	sp := def.Stellar
	cfg := &system.Config{
		Class:         def.Class,
		NumberOfStars: def.StellarMultiplicity,
		Remnant:       sp.Remnant,
	}
	if over.remnant != registry.RemnantNone {
		cfg.Remnant = over.remnant
	}

	primary := units.SolarMass(r.Range(sp.MassRange.Min, sp.MassRange.Max))
	age := units.Gyr(r.Range(sp.AgeRange.Min, sp.AgeRange.Max))
	cfg.Metallicity = r.Range(sp.MetallicityRange.Min, sp.MetallicityRange.Max)

	// main-sequence hosts cannot be older than their lifetime
	if cfg.Remnant == registry.RemnantNone {
		if limit := physics.MainSequenceLifetime(primary) * maxAgeFraction; age > limit {
			age = limit
		}
	}

	cfg.StellarMasses = []units.SolarMass{primary}
	cfg.StellarAges = []units.Gyr{age}
	for i := 1; i < cfg.NumberOfStars; i++ {
		m := primary * units.SolarMass(r.Range(0.3, 1.0))
		m = units.SolarMass(math.Min(float64(primary), math.Max(float64(m), float64(minCompanionMass))))
		cfg.StellarMasses = append(cfg.StellarMasses, m)
		cfg.StellarAges = append(cfg.StellarAges, age)
	}

	if cfg.NumberOfStars > 1 {
		sep := units.AU(r.Range(sp.BinarySeparation.Min, sp.BinarySeparation.Max))
		variant := system.STypeOrbit
		if sep < tightBinaryLimit {
			variant = system.PTypeOrbit
		}
		if over.variant != "" {
			variant = over.variant
		}
		pair := cfg.StellarMasses[0] + cfg.StellarMasses[1]
		cfg.Binary = &system.BinaryOrbit{
			Variant:      variant,
			Separation:   sep,
			Eccentricity: r.Range(0, 0.5),
			Period:       units.PeriodFromAxis(sep, pair),
			MassRatio:    float64(cfg.StellarMasses[1] / cfg.StellarMasses[0]),
		}
	}
	return cfg
}

// deriveStars computes the physical stars of a config.
func deriveStars(cfg *system.Config, systemName string) []system.Star {
	stars := make([]system.Star, 0, cfg.NumberOfStars)
	for i, m := range cfg.StellarMasses {
		age := cfg.StellarAges[i]

		var st system.Star
		if i == 0 && cfg.Remnant != registry.RemnantNone {
			st = remnantStar(cfg.Remnant, m, age)
		} else {
			st = mainSequenceStar(m, age)
		}
		st.Name = systemName + " " + starSuffixes[i%len(starSuffixes)]
		st.OrbitRadius = orbitRadius(cfg, i)
		stars = append(stars, st)
	}
	return stars
}

func mainSequenceStar(m units.SolarMass, age units.Gyr) system.Star {
	temp := physics.MassToTemperature(m)
	kind := physics.ClassifyStar(temp)
	return system.Star{
		Mass:                 m,
		Radius:               physics.StellarRadius(m),
		Luminosity:           physics.MassToLuminosity(m),
		Temperature:          temp,
		Age:                  age,
		SpectralClass:        kind.Class,
		Description:          kind.Description,
		Color:                kind.Color,
		MainSequenceLifetime: physics.MainSequenceLifetime(m),
	}
}

func remnantStar(remnant registry.Remnant, m units.SolarMass, age units.Gyr) system.Star {
	var (
		lum    units.SolarLuminosity
		radius units.SolarRadius
	)
	neutron := remnant == registry.RemnantNeutronStar
	if neutron {
		lum = physics.NeutronStarLuminosity(age)
		radius = physics.NeutronStarRadius()
	} else {
		lum = physics.WhiteDwarfLuminosity(m, age)
		radius = physics.WhiteDwarfRadius(m)
	}
	kind := physics.RemnantStarType(neutron)
	return system.Star{
		Mass:          m,
		Radius:        radius,
		Luminosity:    lum,
		Temperature:   physics.EffectiveTemperature(lum, radius),
		Age:           age,
		SpectralClass: kind.Class,
		Description:   kind.Description,
		Color:         kind.Color,
		Remnant:       remnant,
	}
}

// orbitRadius places stars around the barycentre of the inner pair.
// A third star sits on a wide hierarchical orbit.
func orbitRadius(cfg *system.Config, i int) units.AU {
	b := cfg.Binary
	if b == nil || len(cfg.StellarMasses) < 2 {
		return 0
	}
	m0, m1 := cfg.StellarMasses[0], cfg.StellarMasses[1]
	switch i {
	case 0:
		return b.Separation * units.AU(m1/(m0+m1))
	case 1:
		return b.Separation * units.AU(m0/(m0+m1))
	default:
		return b.Separation * tertiaryDistance
	}
}

// hostLuminosity is the light planets receive: the sum over every star,
// whichever of them the planets orbit.
func hostLuminosity(stars []system.Star) units.SolarLuminosity {
	var total units.SolarLuminosity
	for _, st := range stars {
		total += st.Luminosity
	}
	return total
}

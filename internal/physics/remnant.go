package physics

import (
	"math"

	"stellar-forge/internal/units"
)

// Remnant radii, in solar radii.
const (
	whiteDwarfRadiusScale = 0.0128   // at 1 M☉, scales as M^-1/3
	neutronStarRadius     = 1.437e-5 // 10 km
)

// WhiteDwarfLuminosity follows Mestel cooling, L ∝ M·t^-1.4, normalised to
// 10^-3 L☉ for a 1 M☉ dwarf after 1 Gyr. age is the system age, taken as
// the cooling time since the progenitor's lifetime is unknown. Very young
// dwarfs are capped at 0.1 L☉.
func WhiteDwarfLuminosity(m units.SolarMass, age units.Gyr) units.SolarLuminosity {
	if m <= 0 || age <= 0 {
		return 0
	}
	l := 1e-3 * float64(m) * math.Pow(float64(age), -1.4)
	return units.SolarLuminosity(math.Min(l, 0.1))
}

// WhiteDwarfRadius shrinks with mass, R ∝ M^-1/3.
func WhiteDwarfRadius(m units.SolarMass) units.SolarRadius {
	if m <= 0 {
		return 0
	}
	return units.SolarRadius(whiteDwarfRadiusScale * math.Cbrt(1/float64(m)))
}

// NeutronStarLuminosity is the residual thermal output of a cooling neutron
// star, about 10^-5 L☉ at 1 Myr and falling as t^-0.5.
func NeutronStarLuminosity(age units.Gyr) units.SolarLuminosity {
	if age <= 0 {
		return 0
	}
	myr := float64(age) * 1000
	return units.SolarLuminosity(1e-5 * math.Pow(math.Max(myr, 1), -0.5))
}

// NeutronStarRadius is a fixed 10 km.
func NeutronStarRadius() units.SolarRadius {
	return neutronStarRadius
}

// EffectiveTemperature inverts L = R²T⁴ in solar units.
func EffectiveTemperature(l units.SolarLuminosity, r units.SolarRadius) units.Kelvin {
	if l <= 0 || r <= 0 {
		return 0
	}
	return SolarTemperature * units.Kelvin(math.Pow(float64(l)/(float64(r)*float64(r)), 0.25))
}

// RemnantStarType returns the display class for a compact remnant.
func RemnantStarType(neutron bool) StarType {
	if neutron {
		return neutronStar
	}
	return whiteDwarf
}

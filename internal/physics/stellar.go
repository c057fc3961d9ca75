// Package physics holds the closed-form astrophysical relations used by the
// generator. Every function is pure and total over its documented domain:
// non-positive inputs return zero values instead of NaN so a result can always
// be serialised.
package physics

import (
	"math"

	"stellar-forge/internal/units"
)

// SolarTemperature is the effective temperature of the Sun.
const SolarTemperature units.Kelvin = 5778

// MassToLuminosity is the piecewise main-sequence mass-luminosity relation.
// The branches are not continuous: at 0.43 M☉ the low-mass branch gives
// 0.0329 L☉ while the solar branch gives 0.0342 L☉.
func MassToLuminosity(m units.SolarMass) units.SolarLuminosity {
	mass := float64(m)
	switch {
	case mass <= 0:
		return 0
	case mass < 0.43:
		return units.SolarLuminosity(0.23 * math.Pow(mass, 2.3))
	case mass < 2:
		return units.SolarLuminosity(math.Pow(mass, 4))
	case mass < 20:
		return units.SolarLuminosity(1.4 * math.Pow(mass, 3.5))
	default:
		return units.SolarLuminosity(32000 * mass)
	}
}

// MassToTemperature scales the solar effective temperature by √M.
func MassToTemperature(m units.SolarMass) units.Kelvin {
	if m <= 0 {
		return 0
	}
	return SolarTemperature * units.Kelvin(math.Sqrt(float64(m)))
}

// StellarRadius is the main-sequence mass-radius relation, R = M^0.8.
func StellarRadius(m units.SolarMass) units.SolarRadius {
	if m <= 0 {
		return 0
	}
	return units.SolarRadius(math.Pow(float64(m), 0.8))
}

// MainSequenceLifetime is 10 Gyr scaled by M^-2.5.
func MainSequenceLifetime(m units.SolarMass) units.Gyr {
	if m <= 0 {
		return 0
	}
	return units.Gyr(10 * math.Pow(float64(m), -2.5))
}

// StarType describes how a star looks to an observer.
type StarType struct {
	Class       string `json:"class"`       // O, B, A, F, G, K, M, L, D (white dwarf), N (neutron star)
	Description string `json:"description"` // human readable
	Color       string `json:"color"`       // hex
}

var mainSequence = []struct {
	minTemp units.Kelvin
	star    StarType
}{
	{30000, StarType{"O", "Blue Supergiant", "#9bb0ff"}},
	{10000, StarType{"B", "Blue Giant", "#aabfff"}},
	{7500, StarType{"A", "White Star", "#cad7ff"}},
	{6000, StarType{"F", "Yellow-White Star", "#f8f7ff"}},
	{5200, StarType{"G", "Yellow Dwarf", "#fff4ea"}},
	{3700, StarType{"K", "Orange Dwarf", "#ffd2a1"}},
	{2400, StarType{"M", "Red Dwarf", "#ffcc6f"}},
}

var (
	brownDwarf  = StarType{"L", "Brown Dwarf", "#a0522d"}
	whiteDwarf  = StarType{"D", "White Dwarf", "#f0f0ff"}
	neutronStar = StarType{"N", "Neutron Star", "#e0e8ff"}
)

// ClassifyStar maps an effective temperature to its spectral class.
func ClassifyStar(t units.Kelvin) StarType {
	for _, band := range mainSequence {
		if t >= band.minTemp {
			return band.star
		}
	}
	return brownDwarf
}

// SpectralClass returns only the class letter for a temperature.
func SpectralClass(t units.Kelvin) string {
	return ClassifyStar(t).Class
}

// HabitableZone is the liquid-water band around a host, in AU.
type HabitableZone struct {
	Inner   units.AU `json:"inner"`
	Optimal units.AU `json:"optimal"`
	Outer   units.AU `json:"outer"`
}

// Contains reports whether a lies inside the band.
func (hz HabitableZone) Contains(a units.AU) bool {
	return a >= hz.Inner && a <= hz.Outer
}

// Width returns Outer - Inner.
func (hz HabitableZone) Width() units.AU {
	return hz.Outer - hz.Inner
}

// ComputeHabitableZone places the band at 0.95√L .. 1.37√L with the optimum
// at √L, so a 1 L☉ host reproduces the solar values.
func ComputeHabitableZone(l units.SolarLuminosity) HabitableZone {
	if l <= 0 {
		return HabitableZone{}
	}
	root := math.Sqrt(float64(l))
	return HabitableZone{
		Inner:   units.AU(0.95 * root),
		Optimal: units.AU(root),
		Outer:   units.AU(1.37 * root),
	}
}

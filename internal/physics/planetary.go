package physics

import (
	"math"

	"stellar-forge/internal/rng"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/units"
)

const (
	// DefaultAlbedo is the Bond albedo used when none is given.
	DefaultAlbedo = 0.3

	// DefaultTidalQ is the tidal dissipation factor of a rocky planet.
	DefaultTidalQ = 100

	jeansFactor       = 6.0
	loveNumber        = 0.3
	initialSpinPeriod = 12 * 3600 // seconds
	earthDensity      = 5.51      // g/cm³
)

// MassToRadius is the planetary mass-radius relation in Earth units.
// The gas-giant branch has a negative exponent, so radius drops from
// 100^0.58 ≈ 14.5 R⊕ to 100^-0.04 ≈ 0.83 R⊕ across the 100 M⊕ boundary.
// That jump is kept as-is for compatibility with existing catalogues.
func MassToRadius(m units.EarthMass) units.EarthRadius {
	mass := float64(m)
	switch {
	case mass <= 0:
		return 0
	case mass < 2:
		return units.EarthRadius(math.Pow(mass, 0.27))
	case mass < 100:
		return units.EarthRadius(math.Pow(mass, 0.58))
	default:
		return units.EarthRadius(math.Pow(mass, -0.04))
	}
}

// EquilibriumTemperature balances absorbed starlight against blackbody
// emission: T = ((1-A)·L / (16π·σ·a²))^¼.
func EquilibriumTemperature(a units.AU, l units.SolarLuminosity, albedo float64) units.Kelvin {
	if a <= 0 || l <= 0 {
		return 0
	}
	d := a.Meters()
	flux := (1 - albedo) * l.Watts() / (16 * math.Pi * units.StefanBoltzmann * d * d)
	return units.Kelvin(math.Pow(flux, 0.25))
}

// EscapeVelocity returns √(2GM/R) in m/s.
func EscapeVelocity(m units.EarthMass, r units.EarthRadius) float64 {
	if m <= 0 || r <= 0 {
		return 0
	}
	return math.Sqrt(2 * units.GravitationalConstant * m.Kilograms() / r.Meters())
}

// ThermalVelocity is the RMS speed of molecular hydrogen, √(3kT/m), in m/s.
func ThermalVelocity(t units.Kelvin) float64 {
	if t <= 0 {
		return 0
	}
	return math.Sqrt(3 * units.Boltzmann * float64(t) / units.HydrogenMoleculeKg)
}

// HasAtmosphere applies the Jeans criterion: a planet keeps its atmosphere
// when escape velocity exceeds six times the thermal velocity of H₂.
func HasAtmosphere(m units.EarthMass, t units.Kelvin) bool {
	vEsc := EscapeVelocity(m, MassToRadius(m))
	if vEsc == 0 {
		return false
	}
	return vEsc > jeansFactor*ThermalVelocity(t)
}

// HabitabilityScore combines four weighted terms:
//
//	0.4  distance from the HZ optimum, falling linearly to 0 at half the zone width
//	0.3  mass, 1 - |log10 M|/2
//	0.2  liquid water temperature, 273 K < T < 373 K
//	0.1  atmosphere present
//
// The result is clamped to [0,1].
func HabitabilityScore(m units.EarthMass, a units.AU, t units.Kelvin, atmosphere bool, hz HabitableZone) float64 {
	if m <= 0 || a <= 0 {
		return 0
	}

	score := 0.0

	if halfWidth := float64(hz.Width()) / 2; halfWidth > 0 {
		distance := math.Abs(float64(a - hz.Optimal))
		score += 0.4 * math.Max(0, 1-distance/halfWidth)
	}

	score += 0.3 * math.Max(0, 1-math.Abs(math.Log10(float64(m)))/2)

	if t > 273 && t < 373 {
		score += 0.2
	}
	if atmosphere {
		score += 0.1
	}

	return clamp01(score)
}

// MoonCount draws a moon count from the planet's mass band.
func MoonCount(m units.EarthMass, src rng.Source) int {
	var max int
	switch {
	case m < 0.1:
		return 0
	case m < 1:
		max = 1
	case m < 10:
		max = 3
	case m < 100:
		max = 20
	default:
		max = 80
	}
	n := int(src.Float64() * float64(max+1))
	if n > max {
		n = max
	}
	return n
}

// HasRings is true for planets above 10 M⊕ with 30% probability.
// Lighter planets consume no draw.
func HasRings(m units.EarthMass, src rng.Source) bool {
	if m <= 10 {
		return false
	}
	return src.Float64() < 0.3
}

// TidalLockingTime is the Gladman et al. despinning timescale
//
//	t = ω·a⁶·I·Q / (3·G·M★²·k₂·R⁵),  I = 0.4·m·R²
//
// with an initial 12 h spin and k₂ = 0.3.
func TidalLockingTime(m units.EarthMass, r units.EarthRadius, a units.AU, stellarMass units.SolarMass, q float64) units.Years {
	if m <= 0 || r <= 0 || a <= 0 || stellarMass <= 0 || q <= 0 {
		return units.Years(math.MaxFloat64)
	}
	omega := 2 * math.Pi / initialSpinPeriod
	radius := r.Meters()
	star := stellarMass.Kilograms()
	inertia := 0.4 * m.Kilograms() * radius * radius

	seconds := omega * math.Pow(a.Meters(), 6) * inertia * q /
		(3 * units.GravitationalConstant * star * star * loveNumber * math.Pow(radius, 5))
	return units.Years(seconds / units.SecondsPerYear)
}

// IsTidallyLocked reports whether despinning finished within the system age.
func IsTidallyLocked(lockTime units.Years, age units.Gyr) bool {
	return lockTime < age.Years()
}

// Density returns bulk density in g/cm³.
func Density(m units.EarthMass, r units.EarthRadius) float64 {
	if m <= 0 || r <= 0 {
		return 0
	}
	rr := float64(r)
	return earthDensity * float64(m) / (rr * rr * rr)
}

// SurfaceGravity returns gravity in Earth g.
func SurfaceGravity(m units.EarthMass, r units.EarthRadius) float64 {
	if m <= 0 || r <= 0 {
		return 0
	}
	return float64(m) / (float64(r) * float64(r))
}

// CheckPositive rejects non-positive or non-finite inputs to a formula.
func CheckPositive(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.NumericDomainf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// CircularizationTime is the Goldreich and Soter eccentricity damping
// timescale
//
//	τe = (4/63)·Q·(m/M★)·(a/R)⁵ / n
//
// where n is the mean motion.
func CircularizationTime(m units.EarthMass, r units.EarthRadius, a units.AU, stellarMass units.SolarMass, q float64) units.Years {
	if m <= 0 || r <= 0 || a <= 0 || stellarMass <= 0 || q <= 0 {
		return units.Years(math.MaxFloat64)
	}
	period := units.PeriodFromAxis(a, stellarMass).Years().Seconds()
	n := 2 * math.Pi / period
	seconds := 4.0 / 63.0 * q * (m.Kilograms() / stellarMass.Kilograms()) *
		math.Pow(a.Meters()/r.Meters(), 5) / n
	return units.Years(seconds / units.SecondsPerYear)
}

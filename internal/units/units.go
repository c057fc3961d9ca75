// Package units defines the physical quantities used by the generator.
//
// Every quantity that crosses a package boundary carries its unit in its type,
// so orbital periods in days can never be mixed with evolution steps in years.
package units

import "math"

// SI constants
const (
	GravitationalConstant = 6.674e-11      // m³ kg⁻¹ s⁻²
	StefanBoltzmann       = 5.670374419e-8 // W m⁻² K⁻⁴
	Boltzmann             = 1.380649e-23   // J K⁻¹
	HydrogenMoleculeKg    = 3.3474e-27     // H₂

	MetersPerAU          = 1.495978707e11
	KilogramsPerSolar    = 1.98847e30
	KilogramsPerEarth    = 5.9722e24
	MetersPerEarthRadius = 6.371e6
	MetersPerSolarRadius = 6.957e8
	WattsPerSolarLum     = 3.828e26

	EarthMassesPerSolar   = KilogramsPerSolar / KilogramsPerEarth
	EarthMassesPerJupiter = 317.83
	AUPerSolarRadius      = MetersPerSolarRadius / MetersPerAU
	AUPerEarthRadius      = MetersPerEarthRadius / MetersPerAU

	DaysPerYear    = 365.25
	SecondsPerYear = DaysPerYear * 86400
	YearsPerGyr    = 1e9
)

type (
	AU              float64 // astronomical units
	Days            float64
	Years           float64
	Gyr             float64 // billions of years
	SolarMass       float64
	EarthMass       float64
	EarthRadius     float64
	SolarRadius     float64
	SolarLuminosity float64
	Kelvin          float64
	Degrees         float64
)

func (a AU) Meters() float64 { return float64(a) * MetersPerAU }

func (d Days) Years() Years { return Years(float64(d) / DaysPerYear) }

func (y Years) Days() Days { return Days(float64(y) * DaysPerYear) }

func (y Years) Gyr() Gyr { return Gyr(float64(y) / YearsPerGyr) }

func (y Years) Seconds() float64 { return float64(y) * SecondsPerYear }

func (g Gyr) Years() Years { return Years(float64(g) * YearsPerGyr) }

func (m EarthMass) Kilograms() float64 { return float64(m) * KilogramsPerEarth }

func (m EarthMass) SolarMass() SolarMass { return SolarMass(float64(m) / EarthMassesPerSolar) }

func (m SolarMass) Kilograms() float64 { return float64(m) * KilogramsPerSolar }

func (m SolarMass) EarthMass() EarthMass { return EarthMass(float64(m) * EarthMassesPerSolar) }

func (r EarthRadius) Meters() float64 { return float64(r) * MetersPerEarthRadius }

func (r EarthRadius) AU() AU { return AU(float64(r) * AUPerEarthRadius) }

func (r SolarRadius) AU() AU { return AU(float64(r) * AUPerSolarRadius) }

func (l SolarLuminosity) Watts() float64 { return float64(l) * WattsPerSolarLum }

func (d Degrees) Radians() float64 { return float64(d) * math.Pi / 180 }

// PeriodFromAxis applies Kepler's third law, P[yr]² = a[AU]³ / M★.
func PeriodFromAxis(a AU, stellarMass SolarMass) Days {
	if a <= 0 || stellarMass <= 0 {
		return 0
	}
	years := math.Sqrt(math.Pow(float64(a), 3) / float64(stellarMass))
	return Years(years).Days()
}

// AxisFromPeriod is the inverse of PeriodFromAxis.
func AxisFromPeriod(p Days, stellarMass SolarMass) AU {
	if p <= 0 || stellarMass <= 0 {
		return 0
	}
	years := float64(p.Years())
	return AU(math.Cbrt(years * years * float64(stellarMass)))
}

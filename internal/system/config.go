// Package system defines the data model of one generated solar system: the
// concrete configuration drawn from an archetype and the bodies derived
// from it. Values carry no behaviour beyond validation and classification.
package system

import (
	"math"
	"slices"

	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/units"
)

// MaxStars is the largest supported stellar multiplicity.
const MaxStars = 3

// BinaryVariant tags how planets orbit a multiple-star system.
type BinaryVariant string

const (
	// STypeOrbit planets orbit the primary only.
	STypeOrbit BinaryVariant = "S-type"
	// PTypeOrbit planets circle the whole stellar pair.
	PTypeOrbit BinaryVariant = "P-type"
)

// BinaryOrbit is the mutual orbit of the primary and its companions.
type BinaryOrbit struct {
	Variant      BinaryVariant `json:"variant"`
	Separation   units.AU      `json:"separation"`
	Eccentricity float64       `json:"eccentricity"`
	Period       units.Days    `json:"period"`
	MassRatio    float64       `json:"massRatio"` // secondary / primary
}

// StabilityLimit returns the orbital boundary planets must respect:
// the outer limit for S-type and the inner limit for P-type orbits.
func (b BinaryOrbit) StabilityLimit() units.AU {
	if b.Variant == PTypeOrbit {
		return b.Separation * 2.4
	}
	return b.Separation / 3
}

// Migration records the dynamical history applied during layout.
type Migration struct {
	Occurred  bool     `json:"occurred"`
	Mode      string   `json:"mode,omitempty"`  // disk
	Shift     units.AU `json:"shift,omitempty"` // inward distance travelled
	Scattered bool     `json:"scattered"`       // giants pumped by planet-planet scattering
}

// Features toggles optional derived detail.
type Features struct {
	Moons        bool `json:"moons"`
	Rings        bool `json:"rings"`
	AsteroidBelt bool `json:"asteroidBelt"`
	KuiperBelt   bool `json:"kuiperBelt"`
}

// ResonanceChain is the ratio sequence a chain was built from.
type ResonanceChain struct {
	Ratios [][2]int `json:"ratios"`
}

// Config is the concrete instance of an archetype drawn from a seed.
// Per-planet slices are parallel and share one index.
type Config struct {
	Class    registry.SystemClass `json:"class"`
	Seed     uint64               `json:"seed"`
	Sequence uint64               `json:"sequence"` // generation call on the seed's stream

	// Elapsed is the time evolved since generation. Evolved systems may
	// have lost planets to an expanding host, so they are no longer held
	// to the archetype's planet range.
	Elapsed units.Years `json:"elapsed,omitempty"`

	NumberOfStars int               `json:"numberOfStars"`
	StellarMasses []units.SolarMass `json:"stellarMasses"`
	StellarAges   []units.Gyr       `json:"stellarAges"`
	Remnant       registry.Remnant  `json:"remnant,omitempty"`
	Metallicity   float64           `json:"metallicity"`
	Binary        *BinaryOrbit      `json:"binary,omitempty"`

	NumberOfPlanets      int               `json:"numberOfPlanets"`
	Periods              []units.Days      `json:"periods"`
	SemiMajorAxes        []units.AU        `json:"semiMajorAxes"`
	Eccentricities       []float64         `json:"eccentricities"`
	Inclinations         []units.Degrees   `json:"inclinations"`
	AscendingNodes       []units.Degrees   `json:"ascendingNodes"`
	ArgumentsOfPeriapsis []units.Degrees   `json:"argumentsOfPeriapsis"`
	MeanAnomalies        []units.Degrees   `json:"meanAnomalies"`
	PlanetMasses         []units.EarthMass `json:"planetMasses"`
	PlanetTypes          []PlanetType      `json:"planetTypes"`

	HasProtoplanetaryDisk bool            `json:"hasProtoplanetaryDisk"`
	HasDebrisDisk         bool            `json:"hasDebrisDisk"`
	DiskMass              units.EarthMass `json:"diskMass"`
	DiskInnerRadius       units.AU        `json:"diskInnerRadius"`
	DiskOuterRadius       units.AU        `json:"diskOuterRadius"`

	HabitableZone  physics.HabitableZone `json:"habitableZone"`
	ResonanceChain *ResonanceChain       `json:"resonanceChain,omitempty"`
	Migration      Migration             `json:"migration"`
	Features       Features              `json:"features"`
}

// Age returns the shared age of the stars.
func (c *Config) Age() units.Gyr {
	if len(c.StellarAges) == 0 {
		return 0
	}
	return c.StellarAges[0]
}

// TotalStellarMass sums every star.
func (c *Config) TotalStellarMass() units.SolarMass {
	var total units.SolarMass
	for _, m := range c.StellarMasses {
		total += m
	}
	return total
}

// HostMass is the mass planets orbit: the inner pair for P-type orbits,
// the primary otherwise.
func (c *Config) HostMass() units.SolarMass {
	if len(c.StellarMasses) == 0 {
		return 0
	}
	if c.Binary != nil && c.Binary.Variant == PTypeOrbit && len(c.StellarMasses) > 1 {
		return c.StellarMasses[0] + c.StellarMasses[1]
	}
	return c.StellarMasses[0]
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.StellarMasses = slices.Clone(c.StellarMasses)
	out.StellarAges = slices.Clone(c.StellarAges)
	out.Periods = slices.Clone(c.Periods)
	out.SemiMajorAxes = slices.Clone(c.SemiMajorAxes)
	out.Eccentricities = slices.Clone(c.Eccentricities)
	out.Inclinations = slices.Clone(c.Inclinations)
	out.AscendingNodes = slices.Clone(c.AscendingNodes)
	out.ArgumentsOfPeriapsis = slices.Clone(c.ArgumentsOfPeriapsis)
	out.MeanAnomalies = slices.Clone(c.MeanAnomalies)
	out.PlanetMasses = slices.Clone(c.PlanetMasses)
	out.PlanetTypes = slices.Clone(c.PlanetTypes)
	if c.Binary != nil {
		b := *c.Binary
		out.Binary = &b
	}
	if c.ResonanceChain != nil {
		out.ResonanceChain = &ResonanceChain{Ratios: slices.Clone(c.ResonanceChain.Ratios)}
	}
	return &out
}

// Validate checks the structural invariants every config must hold.
func (c *Config) Validate() error {
	if c.NumberOfStars < 1 || c.NumberOfStars > MaxStars {
		return apperrors.InvalidConfigf("numberOfStars %d outside [1,%d]", c.NumberOfStars, MaxStars)
	}
	if len(c.StellarMasses) != c.NumberOfStars || len(c.StellarAges) != c.NumberOfStars {
		return apperrors.InvalidConfigf("expected %d stellar masses and ages, got %d and %d",
			c.NumberOfStars, len(c.StellarMasses), len(c.StellarAges))
	}
	for i, m := range c.StellarMasses {
		if !positive(float64(m)) {
			return apperrors.InvalidConfigf("star %d mass must be positive, got %v", i, m)
		}
		if !positive(float64(c.StellarAges[i])) {
			return apperrors.InvalidConfigf("star %d age must be positive, got %v", i, c.StellarAges[i])
		}
	}
	if c.NumberOfStars > 1 {
		if c.Binary == nil {
			return apperrors.InvalidConfigf("%d stars require a binary orbit", c.NumberOfStars)
		}
		if c.Binary.Variant != STypeOrbit && c.Binary.Variant != PTypeOrbit {
			return apperrors.InvalidConfigf("unknown binary variant %q", c.Binary.Variant)
		}
		if !positive(float64(c.Binary.Separation)) {
			return apperrors.InvalidConfigf("binary separation must be positive, got %v", c.Binary.Separation)
		}
	}

	n := c.NumberOfPlanets
	if n < 0 {
		return apperrors.InvalidConfigf("numberOfPlanets must not be negative, got %d", n)
	}
	lengths := map[string]int{
		"periods":              len(c.Periods),
		"semiMajorAxes":        len(c.SemiMajorAxes),
		"eccentricities":       len(c.Eccentricities),
		"inclinations":         len(c.Inclinations),
		"ascendingNodes":       len(c.AscendingNodes),
		"argumentsOfPeriapsis": len(c.ArgumentsOfPeriapsis),
		"meanAnomalies":        len(c.MeanAnomalies),
		"planetMasses":         len(c.PlanetMasses),
		"planetTypes":          len(c.PlanetTypes),
	}
	for _, name := range []string{
		"periods", "semiMajorAxes", "eccentricities", "inclinations", "ascendingNodes",
		"argumentsOfPeriapsis", "meanAnomalies", "planetMasses", "planetTypes",
	} {
		if lengths[name] != n {
			return apperrors.InvalidConfigf("%s has %d entries, want %d", name, lengths[name], n)
		}
	}
	for i := 0; i < n; i++ {
		if e := c.Eccentricities[i]; e < 0 || e >= 1 || math.IsNaN(e) {
			return apperrors.InvalidConfigf("planet %d eccentricity %v outside [0,1)", i, e)
		}
		if !positive(float64(c.PlanetMasses[i])) {
			return apperrors.InvalidConfigf("planet %d mass must be positive, got %v", i, c.PlanetMasses[i])
		}
		if !positive(float64(c.SemiMajorAxes[i])) || !positive(float64(c.Periods[i])) {
			return apperrors.InvalidConfigf("planet %d orbit must be positive", i)
		}
	}

	if c.DiskMass < 0 {
		return apperrors.InvalidConfigf("disk mass must not be negative, got %v", c.DiskMass)
	}
	if (c.HasProtoplanetaryDisk || c.HasDebrisDisk) && c.DiskOuterRadius <= c.DiskInnerRadius {
		return apperrors.InvalidConfigf("disk outer radius %v must exceed inner radius %v",
			c.DiskOuterRadius, c.DiskInnerRadius)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

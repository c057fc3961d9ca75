package system

import "stellar-forge/internal/units"

// PlanetType is the coarse class of a planet.
type PlanetType string

const (
	MercuryLike PlanetType = "mercury_like"
	MarsLike    PlanetType = "mars_like"
	VenusLike   PlanetType = "venus_like"
	EarthLike   PlanetType = "earth_like"
	SuperEarth  PlanetType = "super_earth"
	NeptuneLike PlanetType = "neptune_like"
	SaturnLike  PlanetType = "saturn_like"
	JupiterLike PlanetType = "jupiter_like"
	HotJupiter  PlanetType = "hot_jupiter"
)

// ClassifyPlanet assigns a type from mass and orbital distance.
func ClassifyPlanet(m units.EarthMass, a units.AU) PlanetType {
	switch {
	case m < 0.2:
		if a < 0.5 {
			return MercuryLike
		}
		return MarsLike
	case m < 2:
		if a < 0.8 {
			return VenusLike
		}
		return EarthLike
	case m < 10:
		return SuperEarth
	case m >= 50 && a < 0.1:
		return HotJupiter
	case m < 50:
		return NeptuneLike
	case m < 200:
		return SaturnLike
	default:
		return JupiterLike
	}
}

// IsRocky reports terrestrial classes, super-Earths included.
func (t PlanetType) IsRocky() bool {
	switch t {
	case MercuryLike, MarsLike, VenusLike, EarthLike, SuperEarth:
		return true
	}
	return false
}

// IsGiant reports gas and ice giants.
func (t PlanetType) IsGiant() bool {
	switch t {
	case SaturnLike, JupiterLike, HotJupiter:
		return true
	}
	return false
}

// IsIceGiant reports Neptune-class planets.
func (t PlanetType) IsIceGiant() bool {
	return t == NeptuneLike
}

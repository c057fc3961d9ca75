package system

import (
	"stellar-forge/internal/registry"
	"stellar-forge/internal/units"
)

// Star is a derived stellar body.
type Star struct {
	Name                 string                `json:"name"`
	Mass                 units.SolarMass       `json:"mass"`
	Radius               units.SolarRadius     `json:"radius"`
	Luminosity           units.SolarLuminosity `json:"luminosity"`
	Temperature          units.Kelvin          `json:"temperature"`
	Age                  units.Gyr             `json:"age"`
	SpectralClass        string                `json:"spectralClass"`
	Description          string                `json:"description"`
	Color                string                `json:"color"`
	Remnant              registry.Remnant      `json:"remnant,omitempty"`
	MainSequenceLifetime units.Gyr             `json:"mainSequenceLifetime"`
	OrbitRadius          units.AU              `json:"orbitRadius"` // from the barycentre
}

// Planet is a derived planetary body.
type Planet struct {
	Index               int               `json:"index"`
	Name                string            `json:"name"`
	Type                PlanetType        `json:"type"`
	Mass                units.EarthMass   `json:"mass"`
	Radius              units.EarthRadius `json:"radius"`
	SemiMajorAxis       units.AU          `json:"semiMajorAxis"`
	Period              units.Days        `json:"period"`
	Eccentricity        float64           `json:"eccentricity"`
	Inclination         units.Degrees     `json:"inclination"`
	AscendingNode       units.Degrees     `json:"ascendingNode"`
	ArgumentOfPeriapsis units.Degrees     `json:"argumentOfPeriapsis"`
	MeanAnomaly         units.Degrees     `json:"meanAnomaly"`
	Temperature         units.Kelvin      `json:"temperature"`
	Density             float64           `json:"density"`        // g/cm³
	SurfaceGravity      float64           `json:"surfaceGravity"` // Earth g
	EscapeVelocity      float64           `json:"escapeVelocity"` // m/s
	HasAtmosphere       bool              `json:"hasAtmosphere"`
	Habitability        float64           `json:"habitability"`
	InHabitableZone     bool              `json:"inHabitableZone"`
	Moons               int               `json:"moons"`
	HasRings            bool              `json:"hasRings"`
	TidallyLocked       bool              `json:"tidallyLocked"`
	TidalLockingTime    units.Years       `json:"tidalLockingTime"`
}

// DiskType names a kind of circumstellar material.
type DiskType string

const (
	DiskProtoplanetary DiskType = "protoplanetary"
	DiskDebris         DiskType = "debris"
	DiskAsteroidBelt   DiskType = "asteroid_belt"
	DiskKuiperBelt     DiskType = "kuiper_belt"
)

// Disk is a derived ring of gas or dust.
type Disk struct {
	Type             DiskType        `json:"type"`
	Mass             units.EarthMass `json:"mass"`
	InnerRadius      units.AU        `json:"innerRadius"`
	OuterRadius      units.AU        `json:"outerRadius"`
	InnerTemperature units.Kelvin    `json:"innerTemperature"`
	OuterTemperature units.Kelvin    `json:"outerTemperature"`
}

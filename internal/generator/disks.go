package generator

import (
	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

const (
	asteroidBeltMass units.EarthMass = 5e-4
	kuiperBeltMass   units.EarthMass = 0.02
	diskAlbedo                       = 0.1
)

// drawDisks decides whether the system still carries a primordial or
// debris disk and draws its extent.
func drawDisks(r *rng.Lehmer, def registry.TypeDefinition, over overrides, cfg *system.Config) {
	d := def.Disk
	switch {
	case over.protoDisk || r.Chance(d.ProtoplanetaryProbability):
		cfg.HasProtoplanetaryDisk = true
	case r.Chance(d.DebrisProbability):
		cfg.HasDebrisDisk = true
	default:
		return
	}

	cfg.DiskMass = units.EarthMass(r.Range(d.DiskMassRange.Min, d.DiskMassRange.Max))
	inner := units.AU(r.Range(d.InnerRadius.Min, d.InnerRadius.Max))
	outer := units.AU(r.Range(d.OuterRadius.Min, d.OuterRadius.Max))
	if inner <= 0 {
		inner = 0.1
	}
	if outer <= inner {
		outer = 2 * inner
	}
	cfg.DiskInnerRadius = inner
	cfg.DiskOuterRadius = outer
}

// deriveDisks builds the disks and belts of a config.
func deriveDisks(cfg *system.Config, hostLum units.SolarLuminosity) []system.Disk {
	disks := make([]system.Disk, 0, 3)

	switch {
	case cfg.HasProtoplanetaryDisk:
		disks = append(disks, newDisk(system.DiskProtoplanetary, cfg.DiskMass, cfg.DiskInnerRadius, cfg.DiskOuterRadius, hostLum))
	case cfg.HasDebrisDisk:
		disks = append(disks, newDisk(system.DiskDebris, cfg.DiskMass, cfg.DiskInnerRadius, cfg.DiskOuterRadius, hostLum))
	}

	if cfg.Features.AsteroidBelt {
		if g := outerGiant(cfg); g >= 0 {
			a := cfg.SemiMajorAxes[g]
			disks = append(disks, newDisk(system.DiskAsteroidBelt, asteroidBeltMass, a*0.5, a*0.8, hostLum))
		}
	}
	if cfg.Features.KuiperBelt && cfg.NumberOfPlanets > 0 {
		a := cfg.SemiMajorAxes[cfg.NumberOfPlanets-1]
		disks = append(disks, newDisk(system.DiskKuiperBelt, kuiperBeltMass, a*1.5, a*2.5, hostLum))
	}
	return disks
}

func newDisk(kind system.DiskType, m units.EarthMass, inner, outer units.AU, l units.SolarLuminosity) system.Disk {
	return system.Disk{
		Type:             kind,
		Mass:             m,
		InnerRadius:      inner,
		OuterRadius:      outer,
		InnerTemperature: physics.EquilibriumTemperature(inner, l, diskAlbedo),
		OuterTemperature: physics.EquilibriumTemperature(outer, l, diskAlbedo),
	}
}

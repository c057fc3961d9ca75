package generator

import (
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/system"
)

// GenerateBinarySystem builds a two-star system. S-type planets orbit the
// primary; P-type planets circle the pair. An empty variant lets the
// drawn separation decide.
func (g *Generator) GenerateBinarySystem(variant system.BinaryVariant) (*SystemResult, error) {
	class := registry.ClassBinaryStar
	switch variant {
	case "", system.STypeOrbit:
	case system.PTypeOrbit:
		class = registry.ClassCircumbinary
	default:
		return nil, apperrors.InvalidConfigf("unknown binary variant %q", variant)
	}
	return g.run(newPipeline(g, class, overrides{variant: variant}))
}

// GenerateCompactSystem builds a tightly packed inner system.
func (g *Generator) GenerateCompactSystem() (*SystemResult, error) {
	return g.run(newPipeline(g, registry.ClassCompactMulti, overrides{}))
}

// GenerateResonantChain builds a mean-motion resonant chain. A positive
// planets value fixes the chain length within the archetype's range.
func (g *Generator) GenerateResonantChain(planets int) (*SystemResult, error) {
	return g.run(newPipeline(g, registry.ClassResonantChain, overrides{planets: planets}))
}

// GenerateProtoplanetarySystem builds a young system that always keeps
// its gas disk.
func (g *Generator) GenerateProtoplanetarySystem() (*SystemResult, error) {
	return g.run(newPipeline(g, registry.ClassProtoplanetary, overrides{protoDisk: true}))
}

// GeneratePostStellarSystem builds a system around a stellar remnant.
// RemnantNone defaults to a white dwarf.
func (g *Generator) GeneratePostStellarSystem(remnant registry.Remnant) (*SystemResult, error) {
	switch remnant {
	case registry.RemnantNone, registry.RemnantWhiteDwarf:
		return g.run(newPipeline(g, registry.ClassWhiteDwarf, overrides{remnant: registry.RemnantWhiteDwarf}))
	case registry.RemnantNeutronStar:
		return g.run(newPipeline(g, registry.ClassPulsar, overrides{remnant: registry.RemnantNeutronStar}))
	default:
		return nil, apperrors.InvalidConfigf("unknown remnant %q", remnant)
	}
}

// GenerateFromConfig derives a full result from an explicit config
// without drawing from the stream. Feeding back the Config of a previous
// result reproduces that result exactly.
func (g *Generator) GenerateFromConfig(cfg *system.Config) (*SystemResult, error) {
	if cfg == nil {
		return nil, apperrors.InvalidConfigf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := newPipeline(g, cfg.Class, overrides{})
	p.fixed = cfg
	return g.run(p)
}

package generator

import (
	"stellar-forge/internal/dynamics"
	"stellar-forge/internal/physics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/statistics"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

// overrides are the post-adjustments applied by the convenience wrappers.
type overrides struct {
	variant   system.BinaryVariant
	planets   int
	protoDisk bool
	remnant   registry.Remnant
}

// pipeline carries the state of one generation call.
type pipeline struct {
	gen      *Generator
	class    registry.SystemClass
	over     overrides
	fixed    *system.Config // set when deriving from an explicit config
	sequence uint64

	def    registry.TypeDefinition
	cfg    *system.Config
	detail *rng.Lehmer // moons and rings
	id     identity

	hostLuminosity units.SolarLuminosity
	stars          []system.Star
	planets        []system.Planet
	disks          []system.Disk
	dynamics       dynamics.Data
	stats          statistics.Statistics
}

func newPipeline(g *Generator, class registry.SystemClass, over overrides) *pipeline {
	return &pipeline{gen: g, class: class, over: over}
}

func (p *pipeline) selectType() error {
	if p.fixed != nil {
		def, err := p.gen.registry.ByClass(p.fixed.Class)
		if err != nil {
			return err
		}
		if err := fitsArchetype(p.fixed, def); err != nil {
			return err
		}
		p.def = def
		p.cfg = p.fixed.Clone()
		return nil
	}

	if p.class == "" {
		p.def = p.gen.registry.Random(p.gen.rng)
		return nil
	}
	def, err := p.gen.registry.ByClass(p.class)
	if err != nil {
		return err
	}
	p.def = def
	return nil
}

func (p *pipeline) generateStellar() error {
	if p.cfg == nil {
		p.cfg = drawStellar(p.gen.rng, p.def, p.over)
		p.cfg.Seed = p.gen.seed
		p.cfg.Sequence = p.sequence
	}

	p.id = newIdentity(p.cfg)
	p.detail = rng.New(detailSeed(p.cfg.Seed, p.cfg.Sequence))
	p.stars = deriveStars(p.cfg, p.id.name)
	p.hostLuminosity = hostLuminosity(p.stars)
	p.cfg.HabitableZone = physics.ComputeHabitableZone(p.hostLuminosity)
	return nil
}

func (p *pipeline) generatePlanetary() error {
	if p.fixed == nil {
		drawPlanetary(p.gen.rng, p.def, p.over, p.cfg)
	}
	p.planets = derivePlanets(p.cfg, p.hostLuminosity, p.detail, p.id.name)
	return nil
}

func (p *pipeline) generateDisks() error {
	if p.fixed == nil {
		drawDisks(p.gen.rng, p.def, p.over, p.cfg)
	}
	p.disks = deriveDisks(p.cfg, p.hostLuminosity)
	return nil
}

func (p *pipeline) computeDynamics() error {
	p.dynamics = dynamics.Analyze(p.cfg, p.def.Orbital.ChaosParameter)
	return nil
}

func (p *pipeline) computeStatistics() error {
	p.stats = statistics.Compute(statistics.Input{
		Config:       p.cfg,
		Architecture: p.def.Architecture,
		Stars:        p.stars,
		Planets:      p.planets,
		Disks:        p.disks,
		Dynamics:     p.dynamics,
	})
	return nil
}

func (p *pipeline) result() *SystemResult {
	return &SystemResult{
		ID:         p.id.uuid,
		Name:       p.id.name,
		Seed:       p.cfg.Seed,
		Sequence:   p.cfg.Sequence,
		Version:    currentVersion(),
		Config:     p.cfg,
		SystemType: p.def,
		Stars:      p.stars,
		Planets:    p.planets,
		Disks:      p.disks,
		Dynamics:   p.dynamics,
		Statistics: p.stats,
	}
}

// fitsArchetype checks an explicit config against the archetype it names.
// Star count always has to match; the planet range only binds configs that
// have not been evolved.
func fitsArchetype(cfg *system.Config, def registry.TypeDefinition) error {
	if cfg.NumberOfStars != def.StellarMultiplicity {
		return apperrors.InvalidConfigf("%s has %d stars, config has %d",
			def.Class, def.StellarMultiplicity, cfg.NumberOfStars)
	}
	if cfg.Elapsed == 0 && !def.NumberOfPlanets.Contains(cfg.NumberOfPlanets) {
		return apperrors.InvalidConfigf("%s allows %d-%d planets, config has %d",
			def.Class, def.NumberOfPlanets.Min, def.NumberOfPlanets.Max, cfg.NumberOfPlanets)
	}
	return nil
}

// detailSeed derives the secondary stream used for moons and rings, so a
// config alone is enough to rebuild every derived body.
func detailSeed(seed, sequence uint64) uint64 {
	return seed ^ ((sequence + 1) * 0x9E3779B97F4A7C15)
}

// Package generator turns an archetype and a seed into a complete solar
// system.
//
// A Generator owns one deterministic random stream. Each Generate call runs
// a fixed sequence of stages (type selection, stars, planets, disks,
// dynamics, statistics) and either returns a complete result or an error;
// there are no partial results. Independent Generators share nothing but
// the read-only registry, so they may run in parallel freely.
package generator

import (
	"fmt"
	"log/slog"

	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
)

// Stage is a step of the generation state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageTypeSelected
	StageStellarGenerated
	StagePlanetaryGenerated
	StageDiskGenerated
	StageDynamicsComputed
	StageStatisticsComputed
	StageDone
)

var stageNames = [...]string{
	"idle",
	"type_selected",
	"stellar_generated",
	"planetary_generated",
	"disk_generated",
	"dynamics_computed",
	"statistics_computed",
	"done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry replaces the embedded archetype catalog.
func WithRegistry(r *registry.Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithLogger enables stage-level debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// Generator produces systems from one seeded stream. It is not safe for
// concurrent use; create one per goroutine.
type Generator struct {
	seed     uint64
	calls    uint64
	rng      *rng.Lehmer
	registry *registry.Registry
	logger   *slog.Logger
	stage    Stage
}

// New creates a generator for a seed.
func New(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		seed:     seed,
		rng:      rng.New(seed),
		registry: registry.Default(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Stage returns the state reached by the most recent call.
func (g *Generator) Stage() Stage {
	return g.stage
}

// Registry returns the catalog the generator draws from.
func (g *Generator) Registry() *registry.Registry {
	return g.registry
}

// Generate builds one system. An empty class selects an archetype at
// random, weighted by discoverability. Each call advances the stream, so
// repeated calls on one Generator yield different systems.
func (g *Generator) Generate(class registry.SystemClass) (*SystemResult, error) {
	return g.run(newPipeline(g, class, overrides{}))
}

// GenerateSolarSystem is the stateless entry point: the same class and seed
// always produce the same result.
func GenerateSolarSystem(class registry.SystemClass, seed uint64, opts ...Option) (*SystemResult, error) {
	return New(seed, opts...).Generate(class)
}

func (g *Generator) run(p *pipeline) (*SystemResult, error) {
	g.stage = StageIdle
	if p.fixed == nil {
		p.sequence = g.calls
		g.calls++
	}

	steps := []struct {
		next Stage
		run  func() error
	}{
		{StageTypeSelected, p.selectType},
		{StageStellarGenerated, p.generateStellar},
		{StagePlanetaryGenerated, p.generatePlanetary},
		{StageDiskGenerated, p.generateDisks},
		{StageDynamicsComputed, p.computeDynamics},
		{StageStatisticsComputed, p.computeStatistics},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			g.logger.Debug("generation aborted",
				"class", p.class,
				"seed", g.seed,
				"stage", step.next.String(),
				"error", err)
			g.stage = StageIdle
			return nil, fmt.Errorf("%s: %w", step.next, err)
		}
		g.stage = step.next
		g.logger.Debug("stage complete",
			"class", p.def.Class,
			"seed", g.seed,
			"stage", step.next.String())
	}

	g.stage = StageDone
	return p.result(), nil
}

// Package catalog is the service layer behind the CLI and the HTTP API.
// It fronts the generator with a result cache and an archive and records
// metrics and trace spans for every operation.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/storage"
	"stellar-forge/internal/units"
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

var (
	systemsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stellarforge_systems_generated_total",
		Help: "Systems served, by archetype and source (cache or generator)",
	}, []string{"class", "source"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stellarforge_generation_duration_seconds",
		Help:    "Duration of a single system generation",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	generationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stellarforge_generation_errors_total",
		Help: "Failed generations by error type",
	}, []string{"type"})

	archiveOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stellarforge_archive_operations_total",
		Help: "Archive operations by kind and outcome",
	}, []string{"op", "status"})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stellarforge_batch_size",
		Help:    "Number of systems requested per batch",
		Buckets: []float64{1, 10, 50, 100, 500, 1000},
	})
)

var tracer = otel.Tracer("stellar-forge/catalog")

// Archive persists generated systems. *storage.Storage implements it.
type Archive interface {
	SaveSystem(ctx context.Context, res *generator.SystemResult) error
	LoadSystem(ctx context.Context, id uuid.UUID) (*generator.SystemResult, error)
	ListSystems(ctx context.Context, f storage.Filter) ([]storage.Summary, error)
	CountByClass(ctx context.Context) (map[registry.SystemClass]int, error)
	DeleteSystem(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context) (map[string]interface{}, error)
}

// Cache memoises results by (class, seed). *cache.Cache implements it.
type Cache interface {
	Get(class registry.SystemClass, seed uint64) (*generator.SystemResult, bool, error)
	Put(class registry.SystemClass, seed uint64, res *generator.SystemResult) error
}

// Option configures a Service.
type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithRegistry(r *registry.Registry) Option {
	return func(s *Service) { s.registry = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithWorkers bounds batch parallelism.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// WithMaxBatch bounds the number of requests per batch.
func WithMaxBatch(n int) Option {
	return func(s *Service) { s.maxBatch = n }
}

// Service is safe for concurrent use.
type Service struct {
	archive  Archive
	cache    Cache
	registry *registry.Registry
	logger   *slog.Logger
	workers  int
	maxBatch int
}

// NewService builds a service. archive may be nil, in which case only
// generation and type lookups are available.
func NewService(archive Archive, opts ...Option) *Service {
	s := &Service{
		archive:  archive,
		registry: registry.Default(),
		logger:   slog.Default(),
		maxBatch: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "catalog")
	return s
}

func (s *Service) generatorOptions() []generator.Option {
	return []generator.Option{
		generator.WithRegistry(s.registry),
		generator.WithLogger(s.logger),
	}
}

// Generate returns the system for a class and seed, from cache when
// possible. An empty class picks one at random.
func (s *Service) Generate(ctx context.Context, class registry.SystemClass, seed uint64) (*generator.SystemResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Generate", trace.WithAttributes(
		attribute.String("class", string(class)),
		attribute.Int64("seed", int64(seed)),
	))
	defer span.End()
	return s.generate(ctx, span, class, seed)
}

func (s *Service) generate(ctx context.Context, span trace.Span, class registry.SystemClass, seed uint64) (*generator.SystemResult, error) {
	if s.cache != nil {
		res, ok, err := s.cache.Get(class, seed)
		if err != nil {
			s.logger.Warn("cache read failed", "class", class, "seed", seed, "error", err)
		} else if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			systemsGenerated.WithLabelValues(string(res.Config.Class), "cache").Inc()
			return res, nil
		}
	}

	start := time.Now()
	res, err := generator.GenerateSolarSystem(class, seed, s.generatorOptions()...)
	generationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		generationErrors.WithLabelValues(string(apperrors.GetType(err))).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}
	systemsGenerated.WithLabelValues(string(res.Config.Class), "generator").Inc()
	span.SetAttributes(
		attribute.Bool("cache_hit", false),
		attribute.String("system_id", res.ID.String()),
		attribute.Int("planets", len(res.Planets)),
	)

	if s.cache != nil {
		if err := s.cache.Put(class, seed, res); err != nil {
			s.logger.Warn("cache write failed", "class", class, "seed", seed, "error", err)
		}
	}
	return res, nil
}

// GenerateAndSave generates a system and archives it.
func (s *Service) GenerateAndSave(ctx context.Context, class registry.SystemClass, seed uint64) (*generator.SystemResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.GenerateAndSave", trace.WithAttributes(
		attribute.String("class", string(class)),
		attribute.Int64("seed", int64(seed)),
	))
	defer span.End()

	res, err := s.generate(ctx, span, class, seed)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, span, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) save(ctx context.Context, span trace.Span, res *generator.SystemResult) error {
	if s.archive == nil {
		return errNoArchive()
	}
	if err := s.archive.SaveSystem(ctx, res); err != nil {
		archiveOperations.WithLabelValues("save", "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return err
	}
	archiveOperations.WithLabelValues("save", "ok").Inc()
	s.logger.Debug("system archived", "id", res.ID, "class", res.Config.Class, "seed", res.Seed)
	return nil
}

// Get loads an archived system.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*generator.SystemResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Get", trace.WithAttributes(attribute.String("system_id", id.String())))
	defer span.End()

	if s.archive == nil {
		return nil, errNoArchive()
	}
	res, err := s.archive.LoadSystem(ctx, id)
	if err != nil {
		archiveOperations.WithLabelValues("load", string(apperrors.GetType(err))).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}
	archiveOperations.WithLabelValues("load", "ok").Inc()
	return res, nil
}

// List returns archived summaries.
func (s *Service) List(ctx context.Context, f storage.Filter) ([]storage.Summary, error) {
	ctx, span := tracer.Start(ctx, "catalog.List")
	defer span.End()

	if s.archive == nil {
		return nil, errNoArchive()
	}
	list, err := s.archive.ListSystems(ctx, f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(list)))
	return list, nil
}

// Delete removes an archived system.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "catalog.Delete", trace.WithAttributes(attribute.String("system_id", id.String())))
	defer span.End()

	if s.archive == nil {
		return errNoArchive()
	}
	if err := s.archive.DeleteSystem(ctx, id); err != nil {
		archiveOperations.WithLabelValues("delete", string(apperrors.GetType(err))).Inc()
		span.RecordError(err)
		return err
	}
	archiveOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}

// Batch generates many systems in parallel, optionally archiving them.
// Results are in request order.
func (s *Service) Batch(ctx context.Context, reqs []generator.Request, save bool) ([]*generator.SystemResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Batch", trace.WithAttributes(
		attribute.Int("requests", len(reqs)),
		attribute.Bool("save", save),
	))
	defer span.End()

	if len(reqs) == 0 {
		return []*generator.SystemResult{}, nil
	}
	if len(reqs) > s.maxBatch {
		return nil, apperrors.Validationf("batch of %d exceeds the limit of %d", len(reqs), s.maxBatch)
	}
	if save && s.archive == nil {
		return nil, errNoArchive()
	}
	batchSize.Observe(float64(len(reqs)))

	start := time.Now()
	results, err := generator.GenerateBatch(ctx, reqs, s.workers, s.generatorOptions()...)
	if err != nil {
		generationErrors.WithLabelValues(string(apperrors.GetType(err))).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch failed")
		return nil, err
	}
	for _, res := range results {
		systemsGenerated.WithLabelValues(string(res.Config.Class), "generator").Inc()
	}
	s.logger.Info("batch generated", "count", len(results), "duration", time.Since(start))

	if save {
		for _, res := range results {
			if err := s.save(ctx, span, res); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// Evolve advances an archived system by dt and archives the evolved state.
func (s *Service) Evolve(ctx context.Context, id uuid.UUID, dt units.Years) (*generator.SystemResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Evolve", trace.WithAttributes(
		attribute.String("system_id", id.String()),
		attribute.Float64("years", float64(dt)),
	))
	defer span.End()

	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	evolved, err := generator.New(res.Seed, s.generatorOptions()...).Evolve(res, dt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evolution failed")
		return nil, err
	}
	if err := s.save(ctx, span, evolved); err != nil {
		return nil, err
	}
	return evolved, nil
}

// Types lists every archetype.
func (s *Service) Types() []registry.TypeDefinition {
	return s.registry.All()
}

// Type looks up one archetype.
func (s *Service) Type(class registry.SystemClass) (registry.TypeDefinition, error) {
	return s.registry.ByClass(class)
}

// Stats merges archive totals with per-class counts.
func (s *Service) Stats(ctx context.Context) (map[string]interface{}, error) {
	if s.archive == nil {
		return nil, errNoArchive()
	}
	stats, err := s.archive.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	byClass, err := s.archive.CountByClass(ctx)
	if err != nil {
		return nil, err
	}
	stats["by_class"] = byClass
	return stats, nil
}

func errNoArchive() error {
	return apperrors.Validationf("no archive configured")
}

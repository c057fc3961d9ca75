package generator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"stellar-forge/internal/registry"
)

// Request names one system of a batch.
type Request struct {
	Class registry.SystemClass `json:"class,omitempty"`
	Seed  uint64               `json:"seed"`
}

// GenerateBatch generates every request in parallel with at most workers
// goroutines (NumCPU when workers <= 0). Each request gets its own
// Generator, so results equal sequential GenerateSolarSystem calls and are
// returned in request order. The first failure cancels the rest.
func GenerateBatch(ctx context.Context, reqs []Request, workers int, opts ...Option) ([]*SystemResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]*SystemResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := GenerateSolarSystem(req.Class, req.Seed, opts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(DriverSQLite, filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func generate(t *testing.T, class registry.SystemClass, seed uint64) *generator.SystemResult {
	t.Helper()
	res, err := generator.GenerateSolarSystem(class, seed)
	require.NoError(t, err)
	return res
}

// =============================================================================
// ROUND TRIP TESTS
// =============================================================================

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	res := generate(t, registry.ClassSolarAnalog, 42)

	require.NoError(t, s.SaveSystem(ctx, res))
	loaded, err := s.LoadSystem(ctx, res.ID)
	require.NoError(t, err)

	assert.Equal(t, res.ID, loaded.ID)
	assert.Equal(t, res.Name, loaded.Name)
	assert.Equal(t, res.Config, loaded.Config)
	assert.Equal(t, res.Planets, loaded.Planets)
	assert.Equal(t, res.Statistics, loaded.Statistics)
}

func TestSave_UpsertKeepsOneRow(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	res := generate(t, registry.ClassSingleStar, 1)

	require.NoError(t, s.SaveSystem(ctx, res))
	require.NoError(t, s.SaveSystem(ctx, res))

	list, err := s.ListSystems(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSave_RejectsEmpty(t *testing.T) {
	s := newTestStorage(t)
	err := s.SaveSystem(context.Background(), nil)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestSave_HighSeed(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	res := generate(t, registry.ClassSingleStar, 1<<63+5)
	require.NoError(t, s.SaveSystem(ctx, res))

	list, err := s.ListSystems(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1<<63+5), list[0].Seed)
}

// =============================================================================
// LOOKUP TESTS
// =============================================================================

func TestLoad_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.LoadSystem(context.Background(), uuid.New())
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestLoad_RejectsOtherMajorVersion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	res := generate(t, registry.ClassSingleStar, 3)
	require.NoError(t, s.SaveSystem(ctx, res))

	_, err := s.db.Exec(`UPDATE systems SET version = '2.0.0' WHERE id = $1`, res.ID.String())
	require.NoError(t, err)

	_, err = s.LoadSystem(ctx, res.ID)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestListSystems_Filters(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	var saved []*generator.SystemResult
	for seed := uint64(1); seed <= 6; seed++ {
		for _, class := range []registry.SystemClass{registry.ClassSingleStar, registry.ClassCompactMulti} {
			res := generate(t, class, seed)
			require.NoError(t, s.SaveSystem(ctx, res))
			saved = append(saved, res)
		}
	}

	all, err := s.ListSystems(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, len(saved))
	// newest first
	assert.Equal(t, saved[len(saved)-1].ID, all[0].ID)

	compact, err := s.ListSystems(ctx, Filter{Class: registry.ClassCompactMulti})
	require.NoError(t, err)
	assert.Len(t, compact, 6)
	for _, sum := range compact {
		assert.Equal(t, registry.ClassCompactMulti, sum.Class)
		// compact systems always hold at least four planets
		assert.GreaterOrEqual(t, sum.PlanetCount, 4)
	}

	many, err := s.ListSystems(ctx, Filter{MinPlanets: 4})
	require.NoError(t, err)
	for _, sum := range many {
		assert.GreaterOrEqual(t, sum.PlanetCount, 4)
	}

	page, err := s.ListSystems(ctx, Filter{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	stable, err := s.ListSystems(ctx, Filter{StableOnly: true})
	require.NoError(t, err)
	for _, sum := range stable {
		assert.True(t, sum.Stable)
	}
}

func TestCountByClassAndStats(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for seed := uint64(1); seed <= 3; seed++ {
		require.NoError(t, s.SaveSystem(ctx, generate(t, registry.ClassPulsar, seed)))
	}
	require.NoError(t, s.SaveSystem(ctx, generate(t, registry.ClassWhiteDwarf, 1)))

	counts, err := s.CountByClass(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[registry.ClassPulsar])
	assert.Equal(t, 1, counts[registry.ClassWhiteDwarf])

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats["system_count"])
	assert.Equal(t, 2, stats["class_count"])
	assert.Equal(t, DriverSQLite, stats["driver"])
}

func TestDeleteSystem(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	res := generate(t, registry.ClassSingleStar, 9)
	require.NoError(t, s.SaveSystem(ctx, res))

	require.NoError(t, s.DeleteSystem(ctx, res.ID))
	_, err := s.LoadSystem(ctx, res.ID)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))

	err = s.DeleteSystem(ctx, res.ID)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestNewStorage_UnknownDriver(t *testing.T) {
	_, err := NewStorage("mysql", "x")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

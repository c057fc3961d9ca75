// Package storage archives generated systems in SQLite or PostgreSQL.
//
// Each row keeps a few searchable summary columns next to the full JSON
// payload of the result. Payloads are stamped with the generator version
// and only payloads from the current major version are loaded back.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/version"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	defaultListLimit = 100
	maxListLimit     = 1000
)

type Storage struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Summary is the searchable part of an archived system.
type Summary struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Class           registry.SystemClass `json:"class"`
	Seed            uint64               `json:"seed"`
	Sequence        uint64               `json:"sequence"`
	Version         string               `json:"version"`
	StarCount       int                  `json:"starCount"`
	PlanetCount     int                  `json:"planetCount"`
	HabitableCount  int                  `json:"habitableCount"`
	Stable          bool                 `json:"stable"`
	MaxHabitability float64              `json:"maxHabitability"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// Filter narrows ListSystems. Zero values match everything.
type Filter struct {
	Class         registry.SystemClass
	MinPlanets    int
	HabitableOnly bool
	StableOnly    bool
	Limit         int
	Offset        int
}

// NewStorage opens the database and creates the schema
func NewStorage(driver, dsn string) (*Storage, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, apperrors.Validationf("unsupported storage driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to open database", err)
	}
	if driver == DriverSQLite {
		// one writer avoids SQLITE_BUSY under concurrent saves
		db.SetMaxOpenConns(1)
	}

	s := &Storage{db: db, driver: driver, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, apperrors.WrapInternal("failed to create schema", err)
	}
	return s, nil
}

func (s *Storage) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS systems (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		class TEXT NOT NULL,
		seed BIGINT NOT NULL,
		sequence BIGINT NOT NULL,
		version TEXT NOT NULL,
		-- Summary
		star_count INTEGER NOT NULL,
		planet_count INTEGER NOT NULL,
		habitable_count INTEGER NOT NULL,
		stable INTEGER NOT NULL DEFAULT 0,
		max_habitability DOUBLE PRECISION NOT NULL,
		-- Full result
		payload TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_systems_class ON systems(class);
	CREATE INDEX IF NOT EXISTS idx_systems_seed ON systems(seed);
	CREATE INDEX IF NOT EXISTS idx_systems_created ON systems(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSystem inserts or replaces a generated system
func (s *Storage) SaveSystem(ctx context.Context, res *generator.SystemResult) error {
	if res == nil || res.Config == nil {
		return apperrors.Validationf("cannot save an empty result")
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return apperrors.WrapInternal("failed to encode system", err)
	}

	stable := 0
	if res.Statistics.Stable {
		stable = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO systems (
			id, name, class, seed, sequence, version,
			star_count, planet_count, habitable_count, stable, max_habitability,
			payload, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			star_count = excluded.star_count,
			planet_count = excluded.planet_count,
			habitable_count = excluded.habitable_count,
			stable = excluded.stable,
			max_habitability = excluded.max_habitability,
			payload = excluded.payload
	`, res.ID.String(), res.Name, string(res.Config.Class), int64(res.Seed), int64(res.Sequence), res.Version,
		len(res.Stars), len(res.Planets), res.Statistics.HabitableZonePlanets, stable, res.Statistics.HabitabilityScore,
		string(payload), s.now().Unix())
	if err != nil {
		return apperrors.WrapInternal("failed to save system", err)
	}
	return nil
}

// LoadSystem retrieves an archived system by ID
func (s *Storage) LoadSystem(ctx context.Context, id uuid.UUID) (*generator.SystemResult, error) {
	var ver, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT version, payload FROM systems WHERE id = $1`, id.String(),
	).Scan(&ver, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("system %s not found", id)
	}
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load system", err)
	}

	stored, err := version.Parse(ver)
	if err != nil {
		return nil, apperrors.WrapValidation("archived system has a malformed version", err)
	}
	if !stored.Replays(version.Current) {
		return nil, apperrors.Validationf("system %s was generated by version %s, incompatible with %s",
			id, stored, version.Current)
	}

	var res generator.SystemResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, apperrors.WrapInternal("failed to decode system", err)
	}
	return &res, nil
}

// ListSystems returns summaries, newest first
func (s *Storage) ListSystems(ctx context.Context, f Filter) ([]Summary, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Class != "" {
		where = append(where, "class = "+arg(string(f.Class)))
	}
	if f.MinPlanets > 0 {
		where = append(where, "planet_count >= "+arg(f.MinPlanets))
	}
	if f.HabitableOnly {
		where = append(where, "habitable_count > 0")
	}
	if f.StableOnly {
		where = append(where, "stable = 1")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, name, class, seed, sequence, version,
			star_count, planet_count, habitable_count, stable, max_habitability, created_at
		FROM systems`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list systems", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var (
			sum            Summary
			idStr, class   string
			seed, sequence int64
			stable         int
			createdAt      int64
		)
		if err := rows.Scan(&idStr, &sum.Name, &class, &seed, &sequence, &sum.Version,
			&sum.StarCount, &sum.PlanetCount, &sum.HabitableCount, &stable, &sum.MaxHabitability, &createdAt); err != nil {
			return nil, apperrors.WrapInternal("failed to scan system", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		sum.ID = id
		sum.Class = registry.SystemClass(class)
		sum.Seed = uint64(seed)
		sum.Sequence = uint64(sequence)
		sum.Stable = stable == 1
		sum.CreatedAt = time.Unix(createdAt, 0).UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapInternal("failed to list systems", err)
	}
	return summaries, nil
}

// CountByClass returns how many systems of each class are archived
func (s *Storage) CountByClass(ctx context.Context) (map[registry.SystemClass]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT class, COUNT(*) FROM systems GROUP BY class`)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to count systems", err)
	}
	defer rows.Close()

	counts := make(map[registry.SystemClass]int)
	for rows.Next() {
		var (
			class string
			n     int
		)
		if err := rows.Scan(&class, &n); err != nil {
			return nil, apperrors.WrapInternal("failed to scan count", err)
		}
		counts[registry.SystemClass(class)] = n
	}
	return counts, rows.Err()
}

// DeleteSystem removes an archived system
func (s *Storage) DeleteSystem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM systems WHERE id = $1`, id.String())
	if err != nil {
		return apperrors.WrapInternal("failed to delete system", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFoundf("system %s not found", id)
	}
	return nil
}

// GetStats returns basic statistics about the stored data
func (s *Storage) GetStats(ctx context.Context) (map[string]interface{}, error) {
	var systems, classes int
	var planets, habitable, stable sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT class), SUM(planet_count), SUM(habitable_count), SUM(stable)
		FROM systems
	`).Scan(&systems, &classes, &planets, &habitable, &stable)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to read stats", err)
	}

	return map[string]interface{}{
		"driver":          s.driver,
		"system_count":    systems,
		"class_count":     classes,
		"planet_count":    planets.Int64,
		"habitable_count": habitable.Int64,
		"stable_count":    stable.Int64,
	}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

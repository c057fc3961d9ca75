package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/storage"
)

// GalaxySnapshot is a set of systems written out for renderers.
type GalaxySnapshot struct {
	Systems     []*generator.SystemResult `json:"systems"`
	Timestamp   string                    `json:"timestamp"`
	SystemCount int                       `json:"system_count"`
	Source      string                    `json:"source"`
}

func newExportCmd() *cobra.Command {
	var (
		count   int
		class   string
		seed    uint64
		output  string
		db      string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of systems to a JSON file",
		Long: `Export writes a galaxy snapshot. By default it generates --count systems
from consecutive seeds; with --db it exports up to --count archived systems.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			var (
				systems []*generator.SystemResult
				source  = "generated"
				err     error
			)
			if db != "" {
				source = "archive"
				systems, err = loadArchived(cmd, db, registry.SystemClass(class), count)
			} else {
				systems, err = generator.GenerateBatch(cmd.Context(), seedRange(class, seed, count), workers)
			}
			if err != nil {
				return err
			}
			if len(systems) == 0 {
				return fmt.Errorf("no systems to export")
			}

			snapshot := GalaxySnapshot{
				Systems:     systems,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
				SystemCount: len(systems),
				Source:      source,
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := writeJSON(f, snapshot, true); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d systems to %s\n", len(systems), output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "Number of systems")
	cmd.Flags().StringVarP(&class, "class", "c", "", "Restrict to one archetype")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "First seed when generating")
	cmd.Flags().StringVarP(&output, "output", "o", "galaxy.json", "Output file path")
	cmd.Flags().StringVar(&db, "db", "", "Export from this SQLite archive instead of generating")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (0 uses every CPU)")
	return cmd
}

func loadArchived(cmd *cobra.Command, path string, class registry.SystemClass, limit int) ([]*generator.SystemResult, error) {
	s, err := storage.NewStorage(storage.DriverSQLite, path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	summaries, err := s.ListSystems(cmd.Context(), storage.Filter{Class: class, Limit: limit})
	if err != nil {
		return nil, err
	}
	systems := make([]*generator.SystemResult, 0, len(summaries))
	for _, sum := range summaries {
		res, err := s.LoadSystem(cmd.Context(), sum.ID)
		if err != nil {
			return nil, err
		}
		systems = append(systems, res)
	}
	return systems, nil
}

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/system"
)

// surveyReport aggregates a run of generated systems.
type surveyReport struct {
	Total          int
	Classes        map[registry.SystemClass]int
	StarCounts     map[int]int
	PrimaryClasses map[string]int
	PlanetTypes    map[system.PlanetType]int
	Planets        int
	Habitable      int // systems with at least one planet in the habitable zone
	Stable         int
	Resonant       int
}

func summarize(results []*generator.SystemResult) surveyReport {
	rep := surveyReport{
		Total:          len(results),
		Classes:        make(map[registry.SystemClass]int),
		StarCounts:     make(map[int]int),
		PrimaryClasses: make(map[string]int),
		PlanetTypes:    make(map[system.PlanetType]int),
	}
	for _, res := range results {
		rep.Classes[res.SystemType.Class]++
		rep.StarCounts[len(res.Stars)]++
		if len(res.Stars) > 0 {
			rep.PrimaryClasses[res.Stars[0].SpectralClass]++
		}
		rep.Planets += len(res.Planets)
		for _, p := range res.Planets {
			rep.PlanetTypes[p.Type]++
		}
		if res.Statistics.HabitableZonePlanets > 0 {
			rep.Habitable++
		}
		if res.Statistics.Stable {
			rep.Stable++
		}
		if res.Statistics.ResonantPairs > 0 {
			rep.Resonant++
		}
	}
	return rep
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func (rep surveyReport) print(w io.Writer) {
	fmt.Fprintf(w, "Surveyed %d systems\n\n", rep.Total)

	fmt.Fprintln(w, "Stellar Multiplicity:")
	fmt.Fprintln(w, "=====================")
	for n := 1; n <= 3; n++ {
		if c := rep.StarCounts[n]; c > 0 {
			fmt.Fprintf(w, "%d star(s): %d (%.1f%%)\n", n, c, pct(c, rep.Total))
		}
	}

	fmt.Fprintln(w, "\nPrimary Star Class Distribution:")
	fmt.Fprintln(w, "=================================")
	for _, class := range []string{"O", "B", "A", "F", "G", "K", "M", "D", "N"} {
		if c := rep.PrimaryClasses[class]; c > 0 {
			fmt.Fprintf(w, "%s Type: %d (%.2f%%)\n", class, c, pct(c, rep.Total))
		}
	}

	if len(rep.Classes) > 1 {
		fmt.Fprintln(w, "\nArchetypes:")
		fmt.Fprintln(w, "===========")
		classes := make([]string, 0, len(rep.Classes))
		for c := range rep.Classes {
			classes = append(classes, string(c))
		}
		sort.Strings(classes)
		for _, c := range classes {
			n := rep.Classes[registry.SystemClass(c)]
			fmt.Fprintf(w, "%-28s %d (%.1f%%)\n", c, n, pct(n, rep.Total))
		}
	}

	fmt.Fprintln(w, "\nPlanets:")
	fmt.Fprintln(w, "========")
	if rep.Total > 0 {
		fmt.Fprintf(w, "Mean per system: %.2f\n", float64(rep.Planets)/float64(rep.Total))
	}
	types := make([]string, 0, len(rep.PlanetTypes))
	for t := range rep.PlanetTypes {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		n := rep.PlanetTypes[system.PlanetType(t)]
		fmt.Fprintf(w, "%-14s %d (%.1f%%)\n", t, n, pct(n, rep.Planets))
	}

	fmt.Fprintf(w, "\nHabitable-zone planets: %d systems (%.1f%%)\n", rep.Habitable, pct(rep.Habitable, rep.Total))
	fmt.Fprintf(w, "Stable:                 %d systems (%.1f%%)\n", rep.Stable, pct(rep.Stable, rep.Total))
	fmt.Fprintf(w, "Resonant pairs:         %d systems (%.1f%%)\n", rep.Resonant, pct(rep.Resonant, rep.Total))
}

func newSurveyCmd() *cobra.Command {
	var (
		count   int
		class   string
		seed    uint64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Generate many systems and print population statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			results, err := generator.GenerateBatch(cmd.Context(), seedRange(class, seed, count), workers)
			if err != nil {
				return err
			}
			summarize(results).print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1000, "Number of systems")
	cmd.Flags().StringVarP(&class, "class", "c", "", "Restrict to one archetype")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "First seed; systems use consecutive seeds")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (0 uses every CPU)")
	return cmd
}

func seedRange(class string, first uint64, n int) []generator.Request {
	reqs := make([]generator.Request, n)
	for i := range reqs {
		reqs[i] = generator.Request{Class: registry.SystemClass(class), Seed: first + uint64(i)}
	}
	return reqs
}

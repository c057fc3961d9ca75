package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/units"
)

func newEvolveCmd() *cobra.Command {
	var (
		class  string
		seed   uint64
		years  float64
		steps  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Generate a system and advance it through time",
		Long: `Evolve generates a system and advances it by --years, split into --steps
equal increments, printing one line per step. Hosts past the end of the
main sequence collapse into remnants and may engulf inner planets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			if !cmd.Flags().Changed("seed") {
				seed = randomSeed()
			}

			g := generator.New(seed)
			res, err := g.Generate(registry.SystemClass(class))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				printStep(out, 0, res)
			}
			dt := units.Years(years / float64(steps))
			for i := 1; i <= steps; i++ {
				if res, err = g.Evolve(res, dt); err != nil {
					return err
				}
				if !asJSON {
					printStep(out, i, res)
				}
			}
			if asJSON {
				return writeJSON(out, res, true)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&class, "class", "c", "", "Archetype class (random when empty)")
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Generator seed")
	cmd.Flags().Float64Var(&years, "years", 1e9, "Total time to advance")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of increments")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print only the final system as JSON")
	return cmd
}

func printStep(w io.Writer, step int, res *generator.SystemResult) {
	host := "-"
	if len(res.Stars) > 0 {
		host = res.Stars[0].SpectralClass
	}
	timescale := "-"
	if t := float64(res.Statistics.StabilityTimescale); t > 0 && !math.IsInf(t, 0) {
		timescale = fmt.Sprintf("%.3g yr", t)
	}
	fmt.Fprintf(w, "[%3d] %s age=%.4g Gyr host=%s planets=%d disks=%d stable=%t timescale=%s\n",
		step, res.Name, float64(res.Statistics.SystemAge), host,
		len(res.Planets), len(res.Disks), res.Statistics.Stable, timescale)
}

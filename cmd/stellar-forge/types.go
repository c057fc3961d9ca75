package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stellar-forge/internal/registry"
)

func newTypesCmd() *cobra.Command {
	var (
		asYAML       bool
		stars        int
		architecture string
	)
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the archetype catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			defs := reg.All()
			if stars > 0 {
				defs = reg.ByStarCount(stars)
			}
			if architecture != "" {
				defs = filterArchitecture(defs, registry.Architecture(architecture))
			}

			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(map[string]interface{}{"archetypes": defs})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLASS\tNAME\tSTARS\tPLANETS\tARCHITECTURE\tRARITY")
			for _, d := range defs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d-%d\t%s\t%s\n",
					d.Class, d.Name, d.StellarMultiplicity,
					d.NumberOfPlanets.Min, d.NumberOfPlanets.Max,
					d.Architecture, d.Environment.Rarity)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print full definitions as YAML")
	cmd.Flags().IntVar(&stars, "stars", 0, "Only archetypes with this many stars")
	cmd.Flags().StringVar(&architecture, "architecture", "", "Only archetypes with this planetary architecture")
	return cmd
}

func filterArchitecture(defs []registry.TypeDefinition, a registry.Architecture) []registry.TypeDefinition {
	var out []registry.TypeDefinition
	for _, d := range defs {
		if d.Architecture == a {
			out = append(out, d)
		}
	}
	return out
}

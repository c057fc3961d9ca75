package main

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stellar-forge",
		Short: "Procedural solar system generator",
		Long: `stellar-forge builds reproducible planetary systems from an archetype
and a seed, evolves them through time, and serves them over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newTypesCmd(),
		newSurveyCmd(),
		newExportCmd(),
		newEvolveCmd(),
		newServeCmd(),
	)
	return root
}

// randomSeed is used when --seed is not given.
func randomSeed() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}

func writeJSON(w io.Writer, v interface{}, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

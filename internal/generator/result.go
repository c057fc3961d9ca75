package generator

import (
	"github.com/google/uuid"

	"stellar-forge/internal/dynamics"
	"stellar-forge/internal/registry"
	"stellar-forge/internal/statistics"
	"stellar-forge/internal/system"
	"stellar-forge/internal/version"
)

// SystemResult is a complete generated system. It holds no timestamps or
// handles, so equal inputs serialise to identical bytes.
type SystemResult struct {
	ID         uuid.UUID               `json:"id"`
	Name       string                  `json:"name"`
	Seed       uint64                  `json:"seed"`
	Sequence   uint64                  `json:"sequence"`
	Version    string                  `json:"version"`
	Config     *system.Config          `json:"config"`
	SystemType registry.TypeDefinition `json:"systemType"`
	Stars      []system.Star           `json:"stars"`
	Planets    []system.Planet         `json:"planets"`
	Disks      []system.Disk           `json:"disks"`
	Dynamics   dynamics.Data           `json:"dynamics"`
	Statistics statistics.Statistics   `json:"statistics"`
}

func currentVersion() string {
	return version.Current.String()
}

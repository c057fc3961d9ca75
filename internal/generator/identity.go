package generator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"stellar-forge/internal/system"
)

// systemNamespace scopes the name-based IDs of generated systems.
var systemNamespace = uuid.MustParse("0b8d5c5e-3f3a-5f8e-9d55-7a1c2f6e4b10")

// identity is the stable ID and display name of a config.
type identity struct {
	uuid uuid.UUID
	name string
}

// newIdentity derives a version 5 UUID from the fields that pin a
// config down. Equal configs always share an ID.
func newIdentity(cfg *system.Config) identity {
	key := strings.Join([]string{
		string(cfg.Class),
		strconv.FormatUint(cfg.Seed, 10),
		strconv.FormatUint(cfg.Sequence, 10),
		strconv.FormatFloat(float64(cfg.Age()), 'g', -1, 64),
	}, ":")
	id := uuid.NewSHA1(systemNamespace, []byte(key))
	return identity{uuid: id, name: systemName(id)}
}

// systemName builds a catalogue designation from the ID, e.g. "SFX 3FA92C".
func systemName(id uuid.UUID) string {
	return "SFX " + strings.ToUpper(id.String()[:6])
}

// Package registry holds the immutable catalog of solar-system archetypes.
//
// The catalog ships embedded as archetypes.yaml and is decoded and validated
// once per process. A Registry exposes read-only lookups; every definition it
// returns is a private copy, so callers cannot alter the shared table.
package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"stellar-forge/internal/rng"
	apperrors "stellar-forge/internal/shared/errors"
)

// maxWeightedAttempts bounds the reject-and-fallback loop in Random.
const maxWeightedAttempts = 100

//go:embed archetypes.yaml
var defaultCatalogYAML []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

type catalogFile struct {
	Archetypes []TypeDefinition `yaml:"archetypes" validate:"required,min=1,dive"`
}

// Registry is a keyed, read-only archetype table.
type Registry struct {
	byClass map[SystemClass]TypeDefinition
	order   []SystemClass
}

// Default returns the process-wide registry built from the embedded catalog.
// The embedded catalog is part of the binary, so a decode failure is a build
// defect and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("registry: embedded catalog is invalid: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Load decodes and validates a YAML catalog.
func Load(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.WrapValidation("failed to decode archetype catalog", err)
	}

	validate := validator.New()
	if err := validate.Struct(file); err != nil {
		return nil, apperrors.WrapValidation("archetype catalog failed validation", err)
	}

	r := &Registry{
		byClass: make(map[SystemClass]TypeDefinition, len(file.Archetypes)),
		order:   make([]SystemClass, 0, len(file.Archetypes)),
	}
	for _, def := range file.Archetypes {
		if _, dup := r.byClass[def.Class]; dup {
			return nil, apperrors.Validationf("duplicate archetype class %q", def.Class)
		}
		r.byClass[def.Class] = def
		r.order = append(r.order, def.Class)
	}

	return r, nil
}

// Len returns the number of archetypes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Classes returns every class in catalog order.
func (r *Registry) Classes() []SystemClass {
	return append([]SystemClass(nil), r.order...)
}

// ByClass looks up one archetype.
func (r *Registry) ByClass(class SystemClass) (TypeDefinition, error) {
	def, ok := r.byClass[class]
	if !ok {
		return TypeDefinition{}, apperrors.UnknownSystemClass(string(class))
	}
	return def.clone(), nil
}

// All returns every archetype in catalog order.
func (r *Registry) All() []TypeDefinition {
	out := make([]TypeDefinition, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, r.byClass[c].clone())
	}
	return out
}

// Random picks an archetype weighted by discoverability: a uniformly chosen
// candidate is accepted with probability equal to its discoverability. If no
// candidate is accepted within the attempt budget, the pick falls back to a
// plain uniform choice.
func (r *Registry) Random(src rng.Source) TypeDefinition {
	n := len(r.order)
	for attempt := 0; attempt < maxWeightedAttempts; attempt++ {
		candidate := r.byClass[r.order[uniformIndex(src, n)]]
		if src.Float64() < candidate.Environment.Discoverability {
			return candidate.clone()
		}
	}
	return r.byClass[r.order[uniformIndex(src, n)]].clone()
}

// ByStarCount returns archetypes with exactly n stars.
func (r *Registry) ByStarCount(n int) []TypeDefinition {
	var out []TypeDefinition
	for _, c := range r.order {
		if def := r.byClass[c]; def.StellarMultiplicity == n {
			out = append(out, def.clone())
		}
	}
	return out
}

// ByAgeRange returns archetypes whose stellar age range overlaps [min,max] Gyr.
func (r *Registry) ByAgeRange(min, max float64) []TypeDefinition {
	var out []TypeDefinition
	for _, c := range r.order {
		if def := r.byClass[c]; def.Stellar.AgeRange.Overlaps(min, max) {
			out = append(out, def.clone())
		}
	}
	return out
}

// ByArchitecture returns archetypes using the given layout strategy.
func (r *Registry) ByArchitecture(a Architecture) []TypeDefinition {
	var out []TypeDefinition
	for _, c := range r.order {
		if def := r.byClass[c]; def.Architecture == a {
			out = append(out, def.clone())
		}
	}
	return out
}

// SortedClasses returns the classes alphabetically, for stable listings.
func (r *Registry) SortedClasses() []SystemClass {
	out := r.Classes()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func uniformIndex(src rng.Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

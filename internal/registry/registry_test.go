package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellar-forge/internal/rng"
	apperrors "stellar-forge/internal/shared/errors"
)

// =============================================================================
// EMBEDDED CATALOG TESTS
// =============================================================================

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	r := Default()
	require.NotNil(t, r)
	assert.Equal(t, 30, r.Len())

	// Default is built once
	assert.Same(t, r, Default())
}

func TestDefault_CatalogInvariants(t *testing.T) {
	for _, def := range Default().All() {
		t.Run(string(def.Class), func(t *testing.T) {
			assert.NotEmpty(t, def.Name)
			assert.GreaterOrEqual(t, def.StellarMultiplicity, 1)
			assert.LessOrEqual(t, def.StellarMultiplicity, 3)
			assert.LessOrEqual(t, def.NumberOfPlanets.Min, def.NumberOfPlanets.Max)
			assert.Greater(t, def.Stellar.MassRange.Min, 0.0)
			assert.GreaterOrEqual(t, def.Environment.Discoverability, 0.0)
			assert.LessOrEqual(t, def.Environment.Discoverability, 1.0)
			if def.StellarMultiplicity > 1 {
				assert.Greater(t, def.Stellar.BinarySeparation.Max, 0.0, "multiples need a separation range")
			}
		})
	}
}

func TestDefault_ClassesReferencedByCode(t *testing.T) {
	r := Default()
	for _, c := range []SystemClass{
		ClassSingleStar, ClassBinaryStar, ClassTrinaryStar, ClassCircumbinary,
		ClassCompactMulti, ClassResonantChain, ClassProtoplanetary, ClassWhiteDwarf,
		ClassPulsar, ClassGasGiantDominated, ClassRockyDominated, ClassSolarAnalog,
	} {
		_, err := r.ByClass(c)
		assert.NoError(t, err, "class %s must exist in the catalog", c)
	}
}

// =============================================================================
// LOOKUP TESTS
// =============================================================================

func TestByClass_Unknown(t *testing.T) {
	_, err := Default().ByClass("NOT_A_CLASS")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnknownSystemClass, apperrors.GetType(err))
}

func TestByClass_SingleStar(t *testing.T) {
	def, err := Default().ByClass(ClassSingleStar)
	require.NoError(t, err)
	assert.Equal(t, 1, def.StellarMultiplicity)
	assert.Equal(t, 0, def.NumberOfPlanets.Min)
	assert.Equal(t, 15, def.NumberOfPlanets.Max)
	assert.Equal(t, ArchitectureStandard, def.Architecture)
}

func TestByClass_ReturnsCopies(t *testing.T) {
	r := Default()
	def, err := r.ByClass(ClassSolarAnalog)
	require.NoError(t, err)

	def.Name = "mutated"
	def.Stellar.SpectralTypes[0] = "X"

	again, err := r.ByClass(ClassSolarAnalog)
	require.NoError(t, err)
	assert.Equal(t, "Solar Analog", again.Name)
	assert.Equal(t, "G", again.Stellar.SpectralTypes[0])
}

func TestByStarCount(t *testing.T) {
	r := Default()
	for n := 1; n <= 3; n++ {
		defs := r.ByStarCount(n)
		assert.NotEmpty(t, defs, "expected archetypes with %d stars", n)
		for _, d := range defs {
			assert.Equal(t, n, d.StellarMultiplicity)
		}
	}
	assert.Empty(t, r.ByStarCount(4))
}

func TestByAgeRange(t *testing.T) {
	r := Default()

	young := r.ByAgeRange(0, 0.005)
	classes := make(map[SystemClass]bool)
	for _, d := range young {
		classes[d.Class] = true
		assert.True(t, d.Stellar.AgeRange.Overlaps(0, 0.005))
	}
	assert.True(t, classes[ClassProtoplanetary])
	assert.False(t, classes[ClassSolarAnalog])

	assert.Len(t, r.ByAgeRange(0, 100), r.Len())
}

func TestByArchitecture(t *testing.T) {
	defs := Default().ByArchitecture(ArchitectureResonantChain)
	require.NotEmpty(t, defs)
	assert.Equal(t, ClassResonantChain, defs[0].Class)
}

// =============================================================================
// WEIGHTED RANDOM TESTS
// =============================================================================

// fixedSource replays a scripted sequence of draws.
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestRandom_AlwaysCatalogMember(t *testing.T) {
	r := Default()
	src := rng.New(42)
	for i := 0; i < 500; i++ {
		def := r.Random(src)
		_, err := r.ByClass(def.Class)
		require.NoError(t, err)
	}
}

func TestRandom_Deterministic(t *testing.T) {
	r := Default()
	a, b := rng.New(7), rng.New(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, r.Random(a).Class, r.Random(b).Class)
	}
}

func TestRandom_AcceptsFirstCandidate(t *testing.T) {
	r := Default()
	// index draw 0.0 -> first archetype; acceptance draw 0.0 < discoverability
	def := r.Random(&fixedSource{values: []float64{0.0, 0.0}})
	assert.Equal(t, r.Classes()[0], def.Class)
}

func TestRandom_FallsBackToUniform(t *testing.T) {
	reg, err := Load([]byte(minimalCatalog(0.0)))
	require.NoError(t, err)

	// discoverability 0 never accepts, so the uniform fallback must answer
	def := reg.Random(rng.New(1))
	assert.Equal(t, SystemClass("ONLY"), def.Class)
}

// =============================================================================
// LOAD VALIDATION TESTS
// =============================================================================

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "archetypes: [::"},
		{"empty catalog", "archetypes: []"},
		{"discoverability above one", minimalCatalog(1.5)},
		{"duplicate class", minimalCatalog(0.5) + minimalEntry()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
		})
	}
}

func minimalCatalog(discoverability float64) string {
	return `archetypes:
  - class: ONLY
    name: Only
    description: test archetype
    category: stellar
    stellarMultiplicity: 1
    numberOfPlanets: {min: 1, max: 2}
    architecture: standard
    stellar:
      massRange: {min: 1, max: 1}
      ageRange: {min: 1, max: 2}
      spectralTypes: [G]
    formationMechanisms: [core_accretion]
    environment:
      discoverability: ` + formatFloat(discoverability) + `
      rarity: common
`
}

func minimalEntry() string {
	return `  - class: ONLY
    name: Only again
    description: duplicate
    category: stellar
    stellarMultiplicity: 1
    numberOfPlanets: {min: 1, max: 2}
    architecture: standard
    stellar:
      massRange: {min: 1, max: 1}
      ageRange: {min: 1, max: 2}
      spectralTypes: [G]
    formationMechanisms: [core_accretion]
    environment:
      discoverability: 0.5
      rarity: common
`
}

func formatFloat(v float64) string {
	switch v {
	case 0:
		return "0.0"
	case 0.5:
		return "0.5"
	default:
		return "1.5"
	}
}

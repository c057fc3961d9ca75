package architecture

import (
	"math"
	"testing"

	"stellar-forge/internal/registry"
	"stellar-forge/internal/rng"
	"stellar-forge/internal/system"
	"stellar-forge/internal/units"
)

func allStrategies() []Strategy {
	return []Strategy{Compact{}, ResonantChain{}, GasGiantDominated{}, RockyDominated{}, Standard{}}
}

// =============================================================================
// SHARED INVARIANTS
// =============================================================================

func TestStrategies_Invariants(t *testing.T) {
	for _, s := range allStrategies() {
		t.Run(string(s.Kind()), func(t *testing.T) {
			for seed := uint64(1); seed <= 50; seed++ {
				n := int(seed%8) + 1
				l := s.Layout(rng.New(seed), n, 1.0)

				if l.Len() != n {
					t.Fatalf("expected %d planets, got %d", n, l.Len())
				}
				for i := 0; i < n; i++ {
					if l.Eccentricities[i] < 0 || l.Eccentricities[i] >= 1 {
						t.Errorf("eccentricity %v out of range", l.Eccentricities[i])
					}
					if l.Masses[i] <= 0 || l.SemiMajorAxes[i] <= 0 || l.Periods[i] <= 0 {
						t.Errorf("non-positive element at %d: %+v", i, l)
					}
					if l.Types[i] != system.ClassifyPlanet(l.Masses[i], l.SemiMajorAxes[i]) {
						t.Errorf("planet %d type %s does not match its mass and orbit", i, l.Types[i])
					}
					if i > 0 && l.SemiMajorAxes[i] < l.SemiMajorAxes[i-1] {
						t.Errorf("axes not sorted: %v", l.SemiMajorAxes)
					}
					// Kepler's third law holds for every planet
					want := units.PeriodFromAxis(l.SemiMajorAxes[i], 1.0)
					if math.Abs(float64(l.Periods[i]-want))/float64(want) > 1e-9 {
						t.Errorf("period %v inconsistent with axis %v", l.Periods[i], l.SemiMajorAxes[i])
					}
				}
			}
		})
	}
}

func TestStrategies_Deterministic(t *testing.T) {
	for _, s := range allStrategies() {
		a := s.Layout(rng.New(99), 6, 0.8)
		b := s.Layout(rng.New(99), 6, 0.8)
		for i := range a.Masses {
			if a.Masses[i] != b.Masses[i] || a.SemiMajorAxes[i] != b.SemiMajorAxes[i] {
				t.Errorf("%s is not deterministic", s.Kind())
			}
		}
	}
}

func TestFor(t *testing.T) {
	if For(registry.ArchitectureCompact).Kind() != registry.ArchitectureCompact {
		t.Error("wrong strategy for compact")
	}
	if For("unknown").Kind() != registry.ArchitectureStandard {
		t.Error("unknown architectures should fall back to standard")
	}
}

// =============================================================================
// PER-STRATEGY RANGES
// =============================================================================

func TestCompact_Ranges(t *testing.T) {
	l := Compact{}.Layout(rng.New(5), 8, 1)
	if l.Periods[0] != 1.5 {
		t.Errorf("base period = %v, want 1.5 d", l.Periods[0])
	}
	for i := 1; i < l.Len(); i++ {
		r := float64(l.Periods[i] / l.Periods[i-1])
		if r < 1.5 || r >= 1.8+1e-12 {
			t.Errorf("period ratio %v outside [1.5,1.8)", r)
		}
	}
	for i := range l.Masses {
		if l.Masses[i] < 0.3 || l.Masses[i] >= 3 || l.Eccentricities[i] >= 0.05 || l.Inclinations[i] >= 2 {
			t.Errorf("planet %d out of compact ranges", i)
		}
	}
}

func TestResonantChain_Ratios(t *testing.T) {
	l := ResonantChain{}.Layout(rng.New(11), 7, 0.3)
	if len(l.Ratios) != 6 {
		t.Fatalf("expected 6 ratios, got %d", len(l.Ratios))
	}
	for i := 1; i < l.Len(); i++ {
		want := ChainCycle[(i-1)%len(ChainCycle)]
		if l.Ratios[i-1] != want {
			t.Errorf("ratio %d = %v, want %v", i-1, l.Ratios[i-1], want)
		}
		got := float64(l.Periods[i] / l.Periods[i-1])
		if math.Abs(got-float64(want[0])/float64(want[1])) > 1e-9 {
			t.Errorf("period ratio %v does not match %v", got, want)
		}
	}
	for i := range l.Masses {
		if l.Masses[i] < 1 || l.Masses[i] >= 10 || l.Eccentricities[i] >= 0.02 || l.Inclinations[i] >= 1 {
			t.Errorf("planet %d out of chain ranges", i)
		}
	}
	if l.Periods[0] < 1.5 || l.Periods[0] >= 4 {
		t.Errorf("base period %v outside [1.5,4)", l.Periods[0])
	}
}

func TestGasGiantDominated_InnerHalfHeavy(t *testing.T) {
	l := GasGiantDominated{}.Layout(rng.New(3), 5, 1)
	for i := range l.Masses {
		heavy := i < 3
		if heavy && (l.Masses[i] < 50 || l.Masses[i] >= 500) {
			t.Errorf("inner planet %d mass %v not a giant", i, l.Masses[i])
		}
		if !heavy && (l.Masses[i] < 0.5 || l.Masses[i] >= 5) {
			t.Errorf("outer planet %d mass %v not small", i, l.Masses[i])
		}
		if l.SemiMajorAxes[i] < 0.5 || l.SemiMajorAxes[i] >= 20 {
			t.Errorf("axis %v outside [0.5,20)", l.SemiMajorAxes[i])
		}
	}
}

func TestRockyDominated_Ranges(t *testing.T) {
	l := RockyDominated{}.Layout(rng.New(8), 6, 1)
	for i := range l.Masses {
		if l.Masses[i] < 0.1 || l.Masses[i] >= 8 || l.SemiMajorAxes[i] < 0.3 || l.SemiMajorAxes[i] >= 3 {
			t.Errorf("planet %d out of rocky ranges", i)
		}
	}
}

func TestStandard_TitiusBode(t *testing.T) {
	l := Standard{}.Layout(rng.New(2), 6, 1)
	for i := range l.SemiMajorAxes {
		want := 0.4 * math.Pow(1.7, float64(i))
		if math.Abs(float64(l.SemiMajorAxes[i])-want) > 1e-12 {
			t.Errorf("a[%d] = %v, want %v", i, l.SemiMajorAxes[i], want)
		}
		if l.SemiMajorAxes[i] < snowLine && l.Masses[i] >= 2 {
			t.Errorf("inner planet %d too heavy: %v", i, l.Masses[i])
		}
		if l.SemiMajorAxes[i] >= snowLine && l.Masses[i] < 10 {
			t.Errorf("outer planet %d too light: %v", i, l.Masses[i])
		}
	}
}

func TestLayout_Rescale(t *testing.T) {
	l := ResonantChain{}.Layout(rng.New(4), 4, 1)
	before := float64(l.Periods[1] / l.Periods[0])
	l.Rescale(3, 1)
	after := float64(l.Periods[1] / l.Periods[0])
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("rescale changed period ratio %v -> %v", before, after)
	}
}

func TestLayout_Empty(t *testing.T) {
	for _, s := range allStrategies() {
		if l := s.Layout(rng.New(1), 0, 1); l.Len() != 0 {
			t.Errorf("%s produced planets for n=0", s.Kind())
		}
	}
}

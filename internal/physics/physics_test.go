package physics

import (
	"math"
	"testing"

	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/units"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// =============================================================================
// STELLAR RELATIONS
// =============================================================================

func TestMassToLuminosity(t *testing.T) {
	tests := []struct {
		name string
		mass units.SolarMass
		want float64
		tol  float64
	}{
		{"solar calibration", 1.0, 1.0, 0},
		{"red dwarf", 0.2, 0.23 * math.Pow(0.2, 2.3), 1e-12},
		{"low branch edge", 0.4299, 0.23 * math.Pow(0.4299, 2.3), 1e-12},
		{"solar branch edge", 0.43, math.Pow(0.43, 4), 1e-12},
		{"intermediate", 5, 1.4 * math.Pow(5, 3.5), 1e-9},
		{"massive", 40, 32000 * 40, 0},
		{"zero", 0, 0, 0},
		{"negative", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(MassToLuminosity(tt.mass))
			if !near(got, tt.want, tt.tol) {
				t.Errorf("MassToLuminosity(%v) = %v, want %v", tt.mass, got, tt.want)
			}
		})
	}
}

func TestMassToLuminosity_BoundaryAt043(t *testing.T) {
	below := float64(MassToLuminosity(0.43 - 1e-9))
	at := float64(MassToLuminosity(0.43))

	// the two branches differ by about 4% at the boundary
	if rel := math.Abs(at-below) / at; rel > 0.05 {
		t.Errorf("discontinuity at 0.43 M☉ is %.3f, expected under 5%%", rel)
	}
	if below >= at {
		t.Errorf("low branch (%v) should sit below the solar branch (%v)", below, at)
	}
}

func TestStellarRelations_Sun(t *testing.T) {
	if got := MassToTemperature(1); got != SolarTemperature {
		t.Errorf("MassToTemperature(1) = %v", got)
	}
	if got := StellarRadius(1); got != 1 {
		t.Errorf("StellarRadius(1) = %v", got)
	}
	if got := MainSequenceLifetime(1); got != 10 {
		t.Errorf("MainSequenceLifetime(1) = %v", got)
	}
	if got := MainSequenceLifetime(2); !near(float64(got), 10*math.Pow(2, -2.5), 1e-12) {
		t.Errorf("MainSequenceLifetime(2) = %v", got)
	}
}

func TestClassifyStar(t *testing.T) {
	tests := []struct {
		temp units.Kelvin
		want string
	}{
		{40000, "O"},
		{15000, "B"},
		{8000, "A"},
		{6500, "F"},
		{5778, "G"},
		{4500, "K"},
		{3000, "M"},
		{1500, "L"},
	}

	for _, tt := range tests {
		if got := SpectralClass(tt.temp); got != tt.want {
			t.Errorf("SpectralClass(%v) = %s, want %s", tt.temp, got, tt.want)
		}
	}
	if ClassifyStar(5778).Color != "#fff4ea" {
		t.Error("G stars should use the yellow dwarf colour")
	}
}

func TestComputeHabitableZone(t *testing.T) {
	hz := ComputeHabitableZone(1)
	if hz.Inner != 0.95 || hz.Optimal != 1 || hz.Outer != 1.37 {
		t.Errorf("solar HZ = %+v", hz)
	}

	hz = ComputeHabitableZone(4)
	if !near(float64(hz.Optimal), 2, 1e-12) || !hz.Contains(2.5) || hz.Contains(3) {
		t.Errorf("4 L☉ HZ = %+v", hz)
	}

	if (ComputeHabitableZone(0) != HabitableZone{}) {
		t.Error("dark host should have an empty HZ")
	}
}

func TestRemnants(t *testing.T) {
	if got := WhiteDwarfLuminosity(0.6, 1); !near(float64(got), 6e-4, 1e-12) {
		t.Errorf("WhiteDwarfLuminosity(0.6, 1) = %v", got)
	}
	if got := WhiteDwarfLuminosity(0.6, 1e-6); got != 0.1 {
		t.Errorf("young dwarf should be capped, got %v", got)
	}
	if WhiteDwarfRadius(1.0) <= WhiteDwarfRadius(1.2) {
		t.Error("heavier white dwarfs must be smaller")
	}

	temp := EffectiveTemperature(1, 1)
	if temp != SolarTemperature {
		t.Errorf("EffectiveTemperature(1,1) = %v", temp)
	}
	if wd := EffectiveTemperature(WhiteDwarfLuminosity(0.6, 1), WhiteDwarfRadius(0.6)); wd < 4000 || wd > 20000 {
		t.Errorf("white dwarf temperature %v outside expected range", wd)
	}
	if RemnantStarType(true).Class != "N" || RemnantStarType(false).Class != "D" {
		t.Error("unexpected remnant classes")
	}
}

// =============================================================================
// PLANETARY RELATIONS
// =============================================================================

func TestMassToRadius(t *testing.T) {
	if got := MassToRadius(1); got != 1 {
		t.Errorf("MassToRadius(1) = %v", got)
	}
	if got := MassToRadius(10); !near(float64(got), math.Pow(10, 0.58), 1e-12) {
		t.Errorf("MassToRadius(10) = %v", got)
	}

	// known discontinuity at the gas-giant boundary
	below := MassToRadius(99.999)
	above := MassToRadius(100)
	if below < 14 || above > 1 {
		t.Errorf("expected a drop across 100 M⊕, got %v -> %v", below, above)
	}
	if MassToRadius(0) != 0 {
		t.Error("zero mass should give zero radius")
	}
}

func TestEquilibriumTemperature_Earth(t *testing.T) {
	got := EquilibriumTemperature(1, 1, DefaultAlbedo)
	if !near(float64(got), 254.6, 1.0) {
		t.Errorf("Earth equilibrium temperature = %v, want ≈254.6 K", got)
	}

	// T ∝ a^-½
	far := EquilibriumTemperature(4, 1, DefaultAlbedo)
	if !near(float64(far), float64(got)/2, 1e-9) {
		t.Errorf("at 4 AU expected half, got %v", far)
	}
	if EquilibriumTemperature(0, 1, DefaultAlbedo) != 0 {
		t.Error("zero distance should return 0")
	}
}

func TestHasAtmosphere(t *testing.T) {
	tests := []struct {
		name string
		mass units.EarthMass
		temp units.Kelvin
		want bool
	}{
		{"earth", 1, 255, true},
		{"mars-like", 0.107, 210, false},
		{"jupiter", 318, 110, true},
		{"hot small rock", 0.05, 1500, false},
		{"no mass", 0, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAtmosphere(tt.mass, tt.temp); got != tt.want {
				t.Errorf("HasAtmosphere(%v, %v) = %v, want %v", tt.mass, tt.temp, got, tt.want)
			}
		})
	}
}

func TestEscapeVelocity_Earth(t *testing.T) {
	if v := EscapeVelocity(1, 1); !near(v, 11186, 20) {
		t.Errorf("Earth escape velocity = %v m/s", v)
	}
}

func TestHabitabilityScore(t *testing.T) {
	hz := ComputeHabitableZone(1)

	t.Run("earth twin scores full marks", func(t *testing.T) {
		got := HabitabilityScore(1, 1, 288, true, hz)
		if !near(got, 1.0, 1e-12) {
			t.Errorf("score = %v, want 1", got)
		}
	})

	t.Run("atmosphere adds exactly 0.1", func(t *testing.T) {
		with := HabitabilityScore(1.5, 1.1, 280, true, hz)
		without := HabitabilityScore(1.5, 1.1, 280, false, hz)
		if !near(with-without, 0.1, 1e-12) {
			t.Errorf("atmosphere delta = %v", with-without)
		}
	})

	t.Run("distance term falls off", func(t *testing.T) {
		inner := HabitabilityScore(1, 0.5, 288, false, hz)
		opt := HabitabilityScore(1, 1, 288, false, hz)
		if inner >= opt {
			t.Errorf("0.5 AU (%v) should score below the optimum (%v)", inner, opt)
		}
		// 0.5 AU is beyond the half-width, so only mass and temperature count
		if !near(inner, 0.5, 1e-12) {
			t.Errorf("score at 0.5 AU = %v, want 0.5", inner)
		}
	})

	t.Run("bounded", func(t *testing.T) {
		for _, m := range []units.EarthMass{1e-4, 0.1, 1, 10, 1000, 1e5} {
			for _, a := range []units.AU{0.01, 1, 50} {
				s := HabitabilityScore(m, a, 300, true, hz)
				if s < 0 || s > 1 {
					t.Errorf("score(%v, %v) = %v out of [0,1]", m, a, s)
				}
			}
		}
	})

	t.Run("degenerate input", func(t *testing.T) {
		if HabitabilityScore(0, 1, 288, true, hz) != 0 {
			t.Error("massless planet must score 0")
		}
		if s := HabitabilityScore(1, 1, 288, false, HabitableZone{}); !near(s, 0.5, 1e-12) {
			t.Errorf("empty HZ should drop only the distance term, got %v", s)
		}
	})
}

// constSource always returns the same draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestMoonCount(t *testing.T) {
	tests := []struct {
		mass units.EarthMass
		draw float64
		want int
	}{
		{0.05, 0.99, 0},
		{0.5, 0.99, 1},
		{0.5, 0.2, 0},
		{5, 0.99, 3},
		{50, 0.99, 20},
		{500, 0.99, 80},
		{500, 0.0, 0},
	}

	for _, tt := range tests {
		if got := MoonCount(tt.mass, constSource(tt.draw)); got != tt.want {
			t.Errorf("MoonCount(%v, %v) = %d, want %d", tt.mass, tt.draw, got, tt.want)
		}
	}
}

func TestHasRings(t *testing.T) {
	if HasRings(5, constSource(0)) {
		t.Error("small planets never have rings")
	}
	if !HasRings(300, constSource(0.1)) {
		t.Error("giant with low draw should have rings")
	}
	if HasRings(300, constSource(0.5)) {
		t.Error("giant with high draw should not have rings")
	}
}

func TestTidalLocking(t *testing.T) {
	earth := TidalLockingTime(1, 1, 1, 1, DefaultTidalQ)
	if IsTidallyLocked(earth, 4.6) {
		t.Errorf("Earth should not be locked, timescale %v yr", earth)
	}

	closeIn := TidalLockingTime(1, 1, 0.05, 0.3, DefaultTidalQ)
	if !IsTidallyLocked(closeIn, 1) {
		t.Errorf("close-in M-dwarf planet should be locked, timescale %v yr", closeIn)
	}

	// t ∝ a⁶
	ratio := float64(TidalLockingTime(1, 1, 2, 1, DefaultTidalQ) / earth)
	if !near(ratio, 64, 1e-6) {
		t.Errorf("doubling a should scale by 64, got %v", ratio)
	}

	if TidalLockingTime(0, 1, 1, 1, DefaultTidalQ) != units.Years(math.MaxFloat64) {
		t.Error("invalid input should never lock")
	}
}

func TestDensityAndGravity(t *testing.T) {
	if d := Density(1, 1); d != 5.51 {
		t.Errorf("Earth density = %v", d)
	}
	if g := SurfaceGravity(4, 2); g != 1 {
		t.Errorf("SurfaceGravity(4, 2) = %v", g)
	}
}

func TestCheckPositive(t *testing.T) {
	if err := CheckPositive("mass", 1); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := CheckPositive("mass", v)
		if apperrors.GetType(err) != apperrors.ErrorTypeNumericDomain {
			t.Errorf("CheckPositive(%v) = %v, want numeric domain error", v, err)
		}
	}
}

// =============================================================================
// ORBITAL RELATIONS
// =============================================================================

func TestOrbitalResonance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   units.Days
		ratio    [2]int
		strength float64
	}{
		{"exact 3:2", 10, 15, [2]int{3, 2}, 1.0},
		{"near 3:2", 10, 15.3, [2]int{3, 2}, 0.6},
		{"inverted order", 15, 10, [2]int{3, 2}, 1.0},
		{"exact 2:1", 4, 8, [2]int{2, 1}, 1.0},
		{"exact 5:1", 1, 5, [2]int{5, 1}, 1.0},
		{"no match", 10, 11.5, [2]int{1, 1}, 0},
		{"invalid", 0, 10, [2]int{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrbitalResonance(tt.p1, tt.p2)
			if got.Ratio != tt.ratio {
				t.Errorf("ratio = %v, want %v", got.Ratio, tt.ratio)
			}
			if !near(got.Strength, tt.strength, 1e-9) {
				t.Errorf("strength = %v, want %v", got.Strength, tt.strength)
			}
		})
	}
}

func TestOrbitalResonance_ToleranceEdge(t *testing.T) {
	// 6% off 2:1 is outside the window
	if r := OrbitalResonance(10, 21.2); r.IsResonant() {
		t.Errorf("expected no resonance, got %+v", r)
	}
	// 4% off 2:1 is inside it with strength 0.2
	r := OrbitalResonance(10, 20.8)
	if r.Ratio != [2]int{2, 1} || !near(r.Strength, 0.2, 1e-9) {
		t.Errorf("got %+v", r)
	}
}

func TestHillStability(t *testing.T) {
	axes := []units.AU{1, 1.1, 1.21}

	build := func(mass units.EarthMass) []Orbit {
		out := make([]Orbit, len(axes))
		for i, a := range axes {
			out[i] = Orbit{SemiMajorAxis: a, Mass: mass}
		}
		return out
	}

	t.Run("earth masses sit just above the threshold", func(t *testing.T) {
		res := HillStability(build(1), 1)
		if !near(res.Factor, 3.148, 0.01) {
			t.Errorf("factor = %v, want ≈3.148", res.Factor)
		}
		if !res.Stable {
			t.Error("expected stable")
		}
		if len(res.PairFactors) != 2 {
			t.Errorf("expected 2 pair factors, got %d", len(res.PairFactors))
		}
	})

	t.Run("heavier planets cross below it", func(t *testing.T) {
		res := HillStability(build(1.2), 1)
		if res.Factor >= StabilityThreshold || res.Stable {
			t.Errorf("expected unstable, got %+v", res)
		}
	})

	t.Run("order independent", func(t *testing.T) {
		shuffled := []Orbit{{1.21, 1}, {1, 1}, {1.1, 1}}
		if a, b := HillStability(shuffled, 1).Factor, HillStability(build(1), 1).Factor; a != b {
			t.Errorf("factors differ: %v vs %v", a, b)
		}
	})

	t.Run("single planet", func(t *testing.T) {
		res := HillStability([]Orbit{{1, 1}}, 1)
		if !res.Stable || res.Factor != 100 {
			t.Errorf("got %+v", res)
		}
	})
}

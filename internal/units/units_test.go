package units

import (
	"math"
	"testing"
)

func TestKepler_EarthOrbit(t *testing.T) {
	p := PeriodFromAxis(1, 1)
	if math.Abs(float64(p)-DaysPerYear) > 1e-9 {
		t.Errorf("PeriodFromAxis(1 AU, 1 Msun) = %v days, want %v", p, DaysPerYear)
	}

	a := AxisFromPeriod(p, 1)
	if math.Abs(float64(a)-1) > 1e-9 {
		t.Errorf("AxisFromPeriod round trip = %v AU, want 1", a)
	}
}

func TestKepler_RoundTrip(t *testing.T) {
	tests := []struct {
		a    AU
		mass SolarMass
	}{
		{0.05, 0.3},
		{5.2, 1.0},
		{30, 2.1},
	}

	for _, tt := range tests {
		p := PeriodFromAxis(tt.a, tt.mass)
		got := AxisFromPeriod(p, tt.mass)
		if math.Abs(float64(got-tt.a))/float64(tt.a) > 1e-9 {
			t.Errorf("round trip a=%v M=%v: got %v", tt.a, tt.mass, got)
		}
	}
}

func TestKepler_NonPositiveInputs(t *testing.T) {
	if p := PeriodFromAxis(0, 1); p != 0 {
		t.Errorf("PeriodFromAxis(0, 1) = %v, want 0", p)
	}
	if a := AxisFromPeriod(10, 0); a != 0 {
		t.Errorf("AxisFromPeriod(10, 0) = %v, want 0", a)
	}
}

func TestConversions(t *testing.T) {
	if y := Days(DaysPerYear).Years(); y != 1 {
		t.Errorf("Days(365.25).Years() = %v, want 1", y)
	}
	if g := Gyr(4.6).Years(); math.Abs(float64(g)-4.6e9) > 1 {
		t.Errorf("Gyr(4.6).Years() = %v, want 4.6e9", g)
	}
	if m := SolarMass(1).EarthMass(); math.Abs(float64(m)-332946) > 10 {
		t.Errorf("SolarMass(1).EarthMass() = %v, want ~332946", m)
	}
	if r := Degrees(180).Radians(); math.Abs(r-math.Pi) > 1e-12 {
		t.Errorf("Degrees(180).Radians() = %v, want pi", r)
	}
}

package components

import (
	"math"
	"testing"

	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

func TestSolarProfileMW(t *testing.T) {
	s := NewSolar(model.SolarParameters{
		CapacityMW:        5,
		LifetimeYears:     20,
		GenerationProfile: []float64{0.2, 0.8},
	})
	got := s.ProfileMW()
	if got[0] != 1 || got[1] != 4 {
		t.Fatalf("unexpected scaled profile %v", got)
	}
}

func TestSolarGenerationBounds(t *testing.T) {
	ti := testIndex(3)
	p := model.SolarParameters{
		CapacityMW:         5,
		InverterCapacityMW: 3,
		LifetimeYears:      20,
		GenerationProfile:  []float64{0.1, 0.9, 0.5},
	}
	s := NewSolar(p)

	m := lp.NewModel()
	vars := s.AddVariables(m, ti)
	s.AddConstraints(m, ti, vars)
	if m.NumConstraints() != 2*ti.Len() {
		t.Fatalf("expected %d constraints, got %d", 2*ti.Len(), m.NumConstraints())
	}

	// Maximize total generation; each step binds at min(profile*cap, inverter).
	obj := lp.Expr{}
	for _, v := range vars.Generation {
		obj = obj.Add(v, -1)
	}
	m.SetObjective(obj)
	sol, err := m.Solve(0)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := []float64{0.5, 3, 2.5}
	for i, v := range vars.Generation {
		if math.Abs(sol.Value(v)-want[i]) > 1e-6 {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], sol.Value(v))
		}
	}
}

func TestSolarAnnualizedCost(t *testing.T) {
	s := NewSolar(model.SolarParameters{CapacityMW: 2, CapexPerMW: 1000000, LifetimeYears: 20})
	got := s.AnnualizedCost(0)
	if math.Abs(got-100000) > 1e-9 {
		t.Fatalf("expected 100000, got %v", got)
	}
}

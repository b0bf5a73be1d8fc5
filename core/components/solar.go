package components

import (
	"fmt"

	"github.com/kilianp07/bessplan/core/finance"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

// SolarVars are the variable handles produced by the solar component.
type SolarVars struct {
	Generation []lp.Var
}

// Solar builds the generation part of the joint model. It is a pure consumer
// of the resolved per-unit generation profile; fetching irradiance is the
// profile collaborator's job.
type Solar struct {
	params model.SolarParameters
}

// NewSolar returns a solar component for validated parameters.
func NewSolar(p model.SolarParameters) *Solar {
	return &Solar{params: p}
}

// Params returns the component's immutable parameters.
func (s *Solar) Params() model.SolarParameters { return s.params }

// ProfileMW returns the generation profile scaled to nameplate capacity.
func (s *Solar) ProfileMW() []float64 {
	out := make([]float64, len(s.params.GenerationProfile))
	for i, v := range s.params.GenerationProfile {
		out[i] = v * s.params.CapacityMW
	}
	return out
}

// AddVariables declares the generation-used series, bounded by nameplate
// capacity.
func (s *Solar) AddVariables(m *lp.Model, ti model.TimeIndex) SolarVars {
	return SolarVars{
		Generation: m.AddVars("solar_generation", ti.Len(), 0, s.params.CapacityMW),
	}
}

// AddConstraints bounds generation-used by the profile and by inverter
// capacity. Profile power above either bound is curtailed unless a calling
// application wires a clipped-to-battery path.
func (s *Solar) AddConstraints(m *lp.Model, ti model.TimeIndex, vars SolarVars) {
	profile := s.ProfileMW()
	for t := 0; t < ti.Len(); t++ {
		m.AddConstraint(lp.Term(vars.Generation[t], 1), lp.LessEq, profile[t],
			fmt.Sprintf("solar_generation_profile[%d]", t))
		m.AddConstraint(lp.Term(vars.Generation[t], 1), lp.LessEq, s.params.InverterCapacityMW,
			fmt.Sprintf("solar_inverter_capacity[%d]", t))
	}
}

// AnnualizedCost returns the annualized solar CAPEX.
func (s *Solar) AnnualizedCost(discountRate float64) float64 {
	return s.params.CapexPerMW * s.params.CapacityMW * finance.AnnuityFactor(discountRate, s.params.LifetimeYears)
}

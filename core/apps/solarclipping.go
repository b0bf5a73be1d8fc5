package apps

import (
	"fmt"

	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

// SolarClipping captures generation that would be lost above the inverter
// rating: energy beyond the clip threshold may flow into the battery instead
// of the grid, so the inverter limit applies to the combined AC-side flow
// rather than to raw generation.
type SolarClipping struct {
	sc            Scenario
	clipThreshold float64 // fraction of nameplate capacity
}

// NewSolarClipping returns the clipping application. clipThreshold is the
// per-unit level above which the raw profile is pre-clipped.
func NewSolarClipping(sc Scenario, clipThreshold float64) *SolarClipping {
	return &SolarClipping{sc: sc, clipThreshold: clipThreshold}
}

// ClippedEnergyMWh returns the energy removed from the raw profile by the
// threshold over the horizon.
func (a *SolarClipping) ClippedEnergyMWh() float64 {
	var clipped float64
	for _, v := range a.sc.Solar.GenerationProfile {
		if v > a.clipThreshold {
			clipped += (v - a.clipThreshold) * a.sc.Solar.CapacityMW * a.sc.TimeIndex.Dt()
		}
	}
	return clipped
}

// Run pre-clips the profile, adds the shared-inverter constraint
// (generation + discharge - charge <= inverter capacity) and solves.
func (a *SolarClipping) Run() (*engine.Result, error) {
	if a.clipThreshold < 0 || a.clipThreshold > 1 {
		return nil, &model.ConfigError{Field: "clipping.threshold", Reason: "must be in [0,1]"}
	}
	sc := a.sc

	clipped := make([]float64, len(sc.Solar.GenerationProfile))
	for i, v := range sc.Solar.GenerationProfile {
		if v > a.clipThreshold {
			v = a.clipThreshold
		}
		clipped[i] = v
	}
	sc.Solar.GenerationProfile = clipped

	if sc.Grid.PriceProfile == nil {
		sc.Grid.PriceProfile = model.PeakOffpeakPrices(sc.Solar.GenerationProfile, sc.PeakPrice, sc.OffpeakPrice)
	}

	inverterCap := sc.Solar.InverterCapacityMW
	if inverterCap == 0 {
		inverterCap = sc.Solar.CapacityMW
	}
	jointInverter := func(m *lp.Model, ti model.TimeIndex, vars engine.Variables) {
		for t := 0; t < ti.Len(); t++ {
			expr := lp.Term(vars.Solar.Generation[t], 1).
				Add(vars.Battery.Discharge[t], 1).
				Add(vars.Battery.Charge[t], -1)
			m.AddConstraint(expr, lp.LessEq, inverterCap, fmt.Sprintf("inverter_capacity[%d]", t))
		}
	}

	eng, err := engine.New(sc.TimeIndex, sc.Battery, sc.Solar, sc.Grid, sc.DiscountRate,
		sc.engineOptions("solar_clipping", engine.WithConstraintHook(jointInverter))...)
	if err != nil {
		return nil, err
	}
	res, err := eng.Optimize()
	if err != nil {
		return nil, err
	}
	res.Summary[KeyClipThreshold] = a.clipThreshold
	res.Summary[KeyClippedEnergy] = a.ClippedEnergyMWh()
	return res, nil
}

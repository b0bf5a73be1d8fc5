package apps

import (
	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/model"
)

// PeakShaving shifts solar energy into high-price hours through the battery,
// under a binding export limit.
type PeakShaving struct {
	sc Scenario
}

// NewPeakShaving returns the peak-shaving application for the scenario.
func NewPeakShaving(sc Scenario) *PeakShaving {
	return &PeakShaving{sc: sc}
}

// Run assembles and solves the peak-shaving model. Without an explicit price
// series, prices follow the mean-split of the generation profile: off-peak
// while the sun is up, peak otherwise.
func (a *PeakShaving) Run() (*engine.Result, error) {
	sc := a.sc
	if sc.Grid.PriceProfile == nil {
		sc.Grid.PriceProfile = model.PeakOffpeakPrices(sc.Solar.GenerationProfile, sc.PeakPrice, sc.OffpeakPrice)
	}
	eng, err := engine.New(sc.TimeIndex, sc.Battery, sc.Solar, sc.Grid, sc.DiscountRate,
		sc.engineOptions("peak_shaving")...)
	if err != nil {
		return nil, err
	}
	return eng.Optimize()
}

package apps

import (
	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/finance"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

// EnergyArbitrage buys cheap grid energy, stores it and sells it back during
// peak hours. Import is enabled, prices follow a time-of-day split and a
// linear throughput cost approximates battery degradation.
type EnergyArbitrage struct {
	sc                    Scenario
	degradationCostPerMWh float64
}

// Off-peak window for the time-of-day price split.
const (
	offpeakFromHour = 10
	offpeakToHour   = 17
)

// NewEnergyArbitrage returns the arbitrage application. degradationCostPerMWh
// is charged per MWh discharged.
func NewEnergyArbitrage(sc Scenario, degradationCostPerMWh float64) *EnergyArbitrage {
	return &EnergyArbitrage{sc: sc, degradationCostPerMWh: degradationCostPerMWh}
}

// Run solves the arbitrage model and appends a project cash-flow analysis to
// the summary.
func (a *EnergyArbitrage) Run() (*engine.Result, error) {
	if a.degradationCostPerMWh < 0 {
		return nil, &model.ConfigError{Field: "battery.degradation_cost_per_mwh", Reason: "must not be negative"}
	}
	sc := a.sc
	if sc.Grid.PriceProfile == nil {
		sc.Grid.PriceProfile = model.TimeOfDayPrices(sc.TimeIndex, sc.PeakPrice, sc.OffpeakPrice,
			offpeakFromHour, offpeakToHour)
	}

	deg := a.degradationCostPerMWh
	degradation := func(ti model.TimeIndex, vars engine.Variables) lp.Expr {
		expr := lp.Expr{}
		for t := 0; t < ti.Len(); t++ {
			expr = expr.Add(vars.Battery.Discharge[t], deg*ti.Dt())
		}
		return expr
	}

	eng, err := engine.New(sc.TimeIndex, sc.Battery, sc.Solar, sc.Grid, sc.DiscountRate,
		sc.engineOptions("energy_arbitrage", engine.WithObjectiveHook(degradation))...)
	if err != nil {
		return nil, err
	}
	res, err := eng.Optimize()
	if err != nil {
		return nil, err
	}

	var throughput float64
	for _, v := range res.Series[engine.SeriesDischarge] {
		throughput += v * sc.TimeIndex.Dt()
	}
	res.Summary[KeyDegradationCost] = deg * throughput

	capex := res.Summary[engine.KeyBatteryCapacity]*sc.Battery.CapexPerMWh +
		sc.Solar.CapacityMW*sc.Solar.CapexPerMW
	annual := res.Summary[engine.KeyRevenue] - res.Summary[KeyDegradationCost]
	fa := finance.Analyze(capex, annual, sc.Battery.LifetimeYears, sc.DiscountRate)
	res.Summary[KeyFinanceNPV] = fa.NPV
	res.Summary[KeyFinanceIRR] = fa.IRR
	res.Summary[KeyFinancePaybackYears] = fa.PaybackYears
	return res, nil
}

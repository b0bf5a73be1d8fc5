// Package apps wires the shared optimization core into the supported
// use-cases: peak shaving, solar-clipping capture, grid export target and
// energy arbitrage.
package apps

import (
	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/logger"
	"github.com/kilianp07/bessplan/core/metrics"
	"github.com/kilianp07/bessplan/core/model"
)

// Application-specific summary keys, in addition to the engine's.
const (
	KeyClipThreshold       = "clipping.threshold"
	KeyClippedEnergy       = "clipping.clipped_energy"
	KeyExportTarget        = "grid.export_target"
	KeyExportCompliance    = "grid.export_compliance"
	KeyDegradationCost     = "battery.degradation_cost"
	KeyFinanceNPV          = "finance.npv"
	KeyFinanceIRR          = "finance.irr"
	KeyFinancePaybackYears = "finance.payback_years"
)

// Scenario is the configuration shared by every application: the horizon,
// the three component parameter sets and the economic assumptions. A nil grid
// price profile is derived by the application from peak/off-peak prices.
type Scenario struct {
	TimeIndex    model.TimeIndex
	Battery      model.BatteryParameters
	Solar        model.SolarParameters
	Grid         model.GridParameters
	DiscountRate float64
	PeakPrice    float64
	OffpeakPrice float64

	// SyntheticProfile marks runs whose generation profile came from the
	// fallback path rather than real irradiance data.
	SyntheticProfile bool

	Logger logger.Logger
	Sink   metrics.Sink
}

func (s Scenario) engineOptions(app string, extra ...engine.Option) []engine.Option {
	opts := []engine.Option{
		engine.WithApplication(app),
		engine.WithSyntheticProfile(s.SyntheticProfile),
	}
	if s.Logger != nil {
		opts = append(opts, engine.WithLogger(s.Logger))
	}
	if s.Sink != nil {
		opts = append(opts, engine.WithMetricsSink(s.Sink))
	}
	return append(opts, extra...)
}

package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/bessplan/core/apps"
	"github.com/kilianp07/bessplan/core/model"
)

// Supported application names.
const (
	AppPeakShaving      = "peak_shaving"
	AppSolarClipping    = "solar_clipping"
	AppGridExportTarget = "grid_export_target"
	AppEnergyArbitrage  = "energy_arbitrage"
)

// ScenarioConfig describes one optimization run: the horizon, the component
// parameters and the use-case to apply.
type ScenarioConfig struct {
	Application  string  `json:"application"`
	Start        string  `json:"start"` // YYYY-MM-DD
	Steps        int     `json:"steps"`
	DiscountRate float64 `json:"discount_rate"`
	PeakPrice    float64 `json:"peak_price"`
	OffpeakPrice float64 `json:"offpeak_price"`

	Battery BatteryConfig `json:"battery"`
	Solar   SolarConfig   `json:"solar"`
	Grid    GridConfig    `json:"grid"`

	// Application-specific knobs.
	ClipThreshold         float64 `json:"clip_threshold"`
	ExportTargetMW        float64 `json:"export_target_mw"`
	DegradationCostPerMWh float64 `json:"degradation_cost_per_mwh"`
}

// BatteryConfig mirrors model.BatteryParameters. A nil capacity leaves the
// size to the optimizer.
type BatteryConfig struct {
	CapacityMWh          *float64 `json:"capacity_mwh"`
	ChargeEfficiency     float64  `json:"charge_efficiency"`
	DischargeEfficiency  float64  `json:"discharge_efficiency"`
	StandingLoss         float64  `json:"standing_loss"`
	CRate                float64  `json:"c_rate"`
	CapexPerMWh          float64  `json:"capex_per_mwh"`
	LifetimeYears        int      `json:"lifetime_years"`
	HasDedicatedInverter bool     `json:"has_dedicated_inverter"`
}

// SolarConfig mirrors model.SolarParameters without the profile, which the
// ninja collaborator resolves at run time.
type SolarConfig struct {
	CapacityMW         float64 `json:"capacity_mw"`
	InverterCapacityMW float64 `json:"inverter_capacity_mw"`
	CapexPerMW         float64 `json:"capex_per_mw"`
	LifetimeYears      int     `json:"lifetime_years"`
}

// GridConfig mirrors model.GridParameters without the price series, derived
// from peak/off-peak prices when absent.
type GridConfig struct {
	MaxImportMW    float64 `json:"max_import_mw"`
	MaxExportMW    float64 `json:"max_export_mw"`
	ConnectionCost float64 `json:"connection_cost"`
	LifetimeYears  int     `json:"lifetime_years"`
}

// MaxSteps is the longest supported horizon. The solver assembles dense
// matrices, so memory and solve time grow steeply with the step count; a
// week of hourly steps is already a long run.
const MaxSteps = 168

// SetDefaults applies the reference parameter set where fields are unset.
func (c *ScenarioConfig) SetDefaults() {
	if c.Application == "" {
		c.Application = AppPeakShaving
	}
	if c.Steps == 0 {
		c.Steps = 24
	}
	if c.DiscountRate == 0 {
		c.DiscountRate = 0.08
	}
	if c.PeakPrice == 0 {
		c.PeakPrice = 100
	}
	if c.OffpeakPrice == 0 {
		c.OffpeakPrice = 20
	}
	def := model.DefaultBatteryParameters()
	if c.Battery.ChargeEfficiency == 0 {
		c.Battery.ChargeEfficiency = def.ChargeEfficiency
	}
	if c.Battery.DischargeEfficiency == 0 {
		c.Battery.DischargeEfficiency = def.DischargeEfficiency
	}
	if c.Battery.StandingLoss == 0 {
		c.Battery.StandingLoss = def.StandingLoss
	}
	if c.Battery.CRate == 0 {
		c.Battery.CRate = def.CRate
	}
	if c.Battery.CapexPerMWh == 0 {
		c.Battery.CapexPerMWh = def.CapexPerMWh
	}
	if c.Battery.LifetimeYears == 0 {
		c.Battery.LifetimeYears = def.LifetimeYears
	}
	if c.Solar.CapexPerMW == 0 {
		c.Solar.CapexPerMW = 1000000
	}
	if c.Solar.LifetimeYears == 0 {
		c.Solar.LifetimeYears = 20
	}
	if c.Grid.ConnectionCost == 0 {
		c.Grid.ConnectionCost = 50000
	}
	if c.Grid.LifetimeYears == 0 {
		c.Grid.LifetimeYears = 20
	}
}

// Validate checks the scenario selection. Component parameters are validated
// again, in depth, when the engine is constructed.
func (c ScenarioConfig) Validate() error {
	switch c.Application {
	case AppPeakShaving, AppSolarClipping, AppGridExportTarget, AppEnergyArbitrage:
	default:
		return fmt.Errorf("unknown application %q", c.Application)
	}
	if c.Steps <= 0 {
		return &model.ConfigError{Field: "scenario.steps", Reason: "must be positive"}
	}
	if c.Steps > MaxSteps {
		return &model.ConfigError{
			Field:  "scenario.steps",
			Reason: fmt.Sprintf("%d steps exceed the %d-step limit of the dense solver backend", c.Steps, MaxSteps),
		}
	}
	if c.Application == AppGridExportTarget && c.ExportTargetMW <= 0 {
		return fmt.Errorf("export_target_mw is required for %s", AppGridExportTarget)
	}
	return nil
}

// TimeIndex builds the run horizon. An unset start date anchors the horizon
// one year back, matching the default fetch window.
func (c ScenarioConfig) TimeIndex() model.TimeIndex {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		start = time.Now().AddDate(-1, 0, 0).Truncate(time.Hour)
	}
	return model.NewTimeIndex(start, c.Steps)
}

// Scenario assembles the application scenario around a resolved generation
// profile.
func (c ScenarioConfig) Scenario(profile []float64, synthetic bool) apps.Scenario {
	capacity := model.SizedCapacity()
	if c.Battery.CapacityMWh != nil {
		capacity = model.FixedCapacity(*c.Battery.CapacityMWh)
	}
	return apps.Scenario{
		TimeIndex: c.TimeIndex(),
		Battery: model.BatteryParameters{
			Capacity:             capacity,
			ChargeEfficiency:     c.Battery.ChargeEfficiency,
			DischargeEfficiency:  c.Battery.DischargeEfficiency,
			StandingLoss:         c.Battery.StandingLoss,
			CRate:                c.Battery.CRate,
			CapexPerMWh:          c.Battery.CapexPerMWh,
			LifetimeYears:        c.Battery.LifetimeYears,
			HasDedicatedInverter: c.Battery.HasDedicatedInverter,
		},
		Solar: model.SolarParameters{
			CapacityMW:         c.Solar.CapacityMW,
			InverterCapacityMW: c.Solar.InverterCapacityMW,
			CapexPerMW:         c.Solar.CapexPerMW,
			LifetimeYears:      c.Solar.LifetimeYears,
			GenerationProfile:  profile,
		},
		Grid: model.GridParameters{
			MaxImportMW:    c.Grid.MaxImportMW,
			MaxExportMW:    c.Grid.MaxExportMW,
			ConnectionCost: c.Grid.ConnectionCost,
			LifetimeYears:  c.Grid.LifetimeYears,
		},
		DiscountRate:     c.DiscountRate,
		PeakPrice:        c.PeakPrice,
		OffpeakPrice:     c.OffpeakPrice,
		SyntheticProfile: synthetic,
	}
}

package model

import "fmt"

// Capacity describes a battery capacity that is either fixed up front or left
// to the optimizer as a sizing decision.
type Capacity struct {
	value float64
	sized bool
}

// FixedCapacity returns a capacity pinned to v MWh.
func FixedCapacity(v float64) Capacity { return Capacity{value: v} }

// SizedCapacity returns a capacity to be chosen by the optimizer.
func SizedCapacity() Capacity { return Capacity{sized: true} }

// Sized reports whether the capacity is an optimization variable.
func (c Capacity) Sized() bool { return c.sized }

// Value returns the fixed capacity. It is only meaningful when Sized is false.
func (c Capacity) Value() float64 { return c.value }

// BatteryParameters holds the battery system technical parameters.
type BatteryParameters struct {
	Capacity             Capacity
	ChargeEfficiency     float64 // (0,1]
	DischargeEfficiency  float64 // (0,1]
	StandingLoss         float64 // per-step self discharge fraction [0,1)
	CRate                float64 // max power as multiple of capacity
	CapexPerMWh          float64
	LifetimeYears        int
	HasDedicatedInverter bool
}

// DefaultBatteryParameters mirror a typical utility-scale unit.
func DefaultBatteryParameters() BatteryParameters {
	return BatteryParameters{
		Capacity:             SizedCapacity(),
		ChargeEfficiency:     0.95,
		DischargeEfficiency:  0.95,
		StandingLoss:         0.005,
		CRate:                0.5,
		CapexPerMWh:          15000,
		LifetimeYears:        10,
		HasDedicatedInverter: true,
	}
}

// Validate checks the battery parameters eagerly, before any model is built.
func (p BatteryParameters) Validate() error {
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return &ConfigError{Field: "battery.charge_efficiency", Reason: "must be in (0,1]"}
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return &ConfigError{Field: "battery.discharge_efficiency", Reason: "must be in (0,1]"}
	}
	if p.StandingLoss < 0 || p.StandingLoss >= 1 {
		return &ConfigError{Field: "battery.standing_loss", Reason: "must be in [0,1)"}
	}
	if p.CRate < 0 {
		return &ConfigError{Field: "battery.c_rate", Reason: "must not be negative"}
	}
	if !p.Capacity.Sized() && p.Capacity.Value() < 0 {
		return &ConfigError{Field: "battery.capacity", Reason: "must not be negative"}
	}
	if p.CapexPerMWh < 0 {
		return &ConfigError{Field: "battery.capex_per_mwh", Reason: "must not be negative"}
	}
	if p.LifetimeYears < 1 {
		return &ConfigError{Field: "battery.lifetime_years", Reason: "must be at least 1"}
	}
	return nil
}

// SolarParameters holds the solar installation parameters. GenerationProfile
// is the already-resolved per-unit series supplied by the profile collaborator;
// the component never computes irradiance itself.
type SolarParameters struct {
	CapacityMW         float64
	InverterCapacityMW float64 // defaults to CapacityMW when zero
	CapexPerMW         float64
	LifetimeYears      int
	Latitude           float64
	Longitude          float64
	GenerationProfile  []float64 // per-unit output in [0,1] per step
}

// Validate checks the solar parameters and applies the inverter default.
func (p *SolarParameters) Validate() error {
	if p.CapacityMW < 0 {
		return &ConfigError{Field: "solar.capacity_mw", Reason: "must not be negative"}
	}
	if p.InverterCapacityMW == 0 {
		p.InverterCapacityMW = p.CapacityMW
	}
	if p.InverterCapacityMW < 0 {
		return &ConfigError{Field: "solar.inverter_capacity_mw", Reason: "must not be negative"}
	}
	if p.CapexPerMW < 0 {
		return &ConfigError{Field: "solar.capex_per_mw", Reason: "must not be negative"}
	}
	if p.LifetimeYears < 1 {
		return &ConfigError{Field: "solar.lifetime_years", Reason: "must be at least 1"}
	}
	for i, v := range p.GenerationProfile {
		if v < 0 || v > 1 {
			return &ConfigError{Field: "solar.generation_profile", Reason: fmt.Sprintf("per-unit value out of [0,1] at step %d", i)}
		}
	}
	return nil
}

// GridParameters holds the grid connection parameters. ConnectionCost is a
// per-MW rate annuitized over the connection lifetime.
type GridParameters struct {
	MaxImportMW    float64
	MaxExportMW    float64
	PriceProfile   []float64
	ConnectionCost float64
	LifetimeYears  int
}

// Validate checks the grid parameters eagerly.
func (p GridParameters) Validate() error {
	if p.MaxImportMW < 0 {
		return &ConfigError{Field: "grid.max_import_mw", Reason: "must not be negative"}
	}
	if p.MaxExportMW < 0 {
		return &ConfigError{Field: "grid.max_export_mw", Reason: "must not be negative"}
	}
	if p.ConnectionCost < 0 {
		return &ConfigError{Field: "grid.connection_cost", Reason: "must not be negative"}
	}
	if p.LifetimeYears < 1 {
		return &ConfigError{Field: "grid.lifetime_years", Reason: "must be at least 1"}
	}
	return nil
}

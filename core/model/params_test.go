package model

import (
	"errors"
	"strings"
	"testing"
)

func TestCapacityVariants(t *testing.T) {
	fixed := FixedCapacity(10)
	if fixed.Sized() || fixed.Value() != 10 {
		t.Fatalf("unexpected fixed capacity %+v", fixed)
	}
	if !SizedCapacity().Sized() {
		t.Fatalf("sized capacity not marked sized")
	}
}

func TestBatteryParametersValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BatteryParameters)
		field  string
	}{
		{"charge efficiency", func(p *BatteryParameters) { p.ChargeEfficiency = 1.2 }, "battery.charge_efficiency"},
		{"discharge efficiency", func(p *BatteryParameters) { p.DischargeEfficiency = 0 }, "battery.discharge_efficiency"},
		{"standing loss", func(p *BatteryParameters) { p.StandingLoss = 1 }, "battery.standing_loss"},
		{"c rate", func(p *BatteryParameters) { p.CRate = -1 }, "battery.c_rate"},
		{"capacity", func(p *BatteryParameters) { p.Capacity = FixedCapacity(-5) }, "battery.capacity"},
		{"capex", func(p *BatteryParameters) { p.CapexPerMWh = -1 }, "battery.capex_per_mwh"},
		{"lifetime", func(p *BatteryParameters) { p.LifetimeYears = 0 }, "battery.lifetime_years"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultBatteryParameters()
			tc.mutate(&p)
			var cfgErr *ConfigError
			if err := p.Validate(); !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			} else if cfgErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
	p := DefaultBatteryParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestSolarParametersInverterDefault(t *testing.T) {
	p := SolarParameters{CapacityMW: 5, LifetimeYears: 20}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if p.InverterCapacityMW != 5 {
		t.Fatalf("inverter default not applied, got %v", p.InverterCapacityMW)
	}
}

func TestSolarParametersValidate(t *testing.T) {
	cases := []struct {
		name  string
		p     SolarParameters
		field string
	}{
		{"negative capacity", SolarParameters{CapacityMW: -1, LifetimeYears: 20}, "solar.capacity_mw"},
		{"negative capex", SolarParameters{CapacityMW: 5, CapexPerMW: -1, LifetimeYears: 20}, "solar.capex_per_mw"},
		{"negative profile value", SolarParameters{CapacityMW: 5, LifetimeYears: 20, GenerationProfile: []float64{0.1, -0.2}}, "solar.generation_profile"},
		{"profile above unity", SolarParameters{CapacityMW: 5, LifetimeYears: 20, GenerationProfile: []float64{0.5, 1.2}}, "solar.generation_profile"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfgErr *ConfigError
			if err := tc.p.Validate(); !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			} else if cfgErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestGridParametersValidate(t *testing.T) {
	p := GridParameters{MaxExportMW: 2, ConnectionCost: 50000, LifetimeYears: 20}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	p.MaxImportMW = -1
	var cfgErr *ConfigError
	if err := p.Validate(); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "grid.max_export_mw", Reason: "must not be negative"}
	if !strings.Contains(err.Error(), "grid.max_export_mw") {
		t.Fatalf("field missing from message %q", err.Error())
	}
}

func TestSolverErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SolverError{Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("unwrap lost the cause")
	}
}

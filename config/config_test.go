package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `scenario:
  application: "solar_clipping"
  start: "2024-01-01"
  steps: 48
  discount_rate: 0.05
  peak_price: 120
  offpeak_price: 30
  clip_threshold: 0.6
  battery:
    capacity_mwh: 10
    c_rate: 0.25
  solar:
    capacity_mw: 5
  grid:
    max_export_mw: 2
ninja:
  token: "secret"
  latitude: 48.85
  longitude: 2.35
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "planner"
  topic: "plans/site-1"
metrics:
  prometheus_enabled: true
  prometheus_port: "9200"
export:
  summary_csv: "summary.csv"
`

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"application", cfg.Scenario.Application, "solar_clipping"},
		{"steps", cfg.Scenario.Steps, 48},
		{"discount_rate", cfg.Scenario.DiscountRate, 0.05},
		{"peak_price", cfg.Scenario.PeakPrice, 120.0},
		{"clip_threshold", cfg.Scenario.ClipThreshold, 0.6},
		{"battery.capacity", cfg.Scenario.Battery.CapacityMWh != nil && *cfg.Scenario.Battery.CapacityMWh == 10, true},
		{"battery.c_rate", cfg.Scenario.Battery.CRate, 0.25},
		{"solar.capacity", cfg.Scenario.Solar.CapacityMW, 5.0},
		{"grid.max_export", cfg.Scenario.Grid.MaxExportMW, 2.0},
		{"ninja.token", cfg.Ninja.Token, "secret"},
		{"ninja.latitude", cfg.Ninja.Latitude, 48.85},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.topic", cfg.MQTT.Topic, "plans/site-1"},
		{"prometheus", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, "9200"},
		{"summary_csv", cfg.Export.SummaryCSV, "summary.csv"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
	// Unset fields pick up the reference defaults.
	if cfg.Scenario.Battery.ChargeEfficiency != 0.95 {
		t.Errorf("battery default not applied: %v", cfg.Scenario.Battery.ChargeEfficiency)
	}
	if cfg.Ninja.Tilt != 25 {
		t.Errorf("ninja default not applied: %v", cfg.Ninja.Tilt)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BP_SCENARIO__STEPS", "24")
	t.Setenv("BP_NINJA__TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Scenario.Steps != 24 {
		t.Fatalf("env override lost: steps %d", cfg.Scenario.Steps)
	}
	if cfg.Ninja.Token != "from-env" {
		t.Fatalf("env override lost: token %q", cfg.Ninja.Token)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadRejectsInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scenario:
  application: "unknown_app"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown application")
	}
}

func TestLoadRequiresExportTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scenario:
  application: "grid_export_target"
  steps: 24
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing export target")
	}
}

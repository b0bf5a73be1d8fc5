// Package config loads and validates the planner configuration from YAML or
// JSON files with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/bessplan/connectors/ninja"
	"github.com/kilianp07/bessplan/infra/mqtt"
)

// Config is the root configuration of a planner run.
type Config struct {
	Scenario ScenarioConfig `json:"scenario"`
	Ninja    ninja.Config   `json:"ninja"`
	MQTT     mqtt.Config    `json:"mqtt"`
	Metrics  MetricsConfig  `json:"metrics"`
	Export   ExportConfig   `json:"export"`
}

// Load reads the file at path and applies BP_-prefixed environment
// overrides (BP_SCENARIO__STEPS=48 sets scenario.steps).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scenario.SetDefaults()
	cfg.Ninja.SetDefaults()
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MetricsConfig selects the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// ExportConfig names the optional result files written after a solve.
type ExportConfig struct {
	DispatchCSV string `json:"dispatch_csv"`
	SummaryCSV  string `json:"summary_csv"`
	JSON        string `json:"json"`
}

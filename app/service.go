// Package app wires configuration, the profile collaborator, the
// optimization applications and the result consumers into one runnable
// service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/bessplan/config"
	"github.com/kilianp07/bessplan/connectors/ninja"
	"github.com/kilianp07/bessplan/core/apps"
	"github.com/kilianp07/bessplan/core/engine"
	coremetrics "github.com/kilianp07/bessplan/core/metrics"
	"github.com/kilianp07/bessplan/infra/logger"
	"github.com/kilianp07/bessplan/infra/metrics"
	"github.com/kilianp07/bessplan/infra/mqtt"
	"github.com/kilianp07/bessplan/pkg/export"
)

// Service runs one configured optimization scenario end to end.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	sink      coremetrics.Sink
	publisher *mqtt.PlanPublisher
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		go servePrometheus(cfg.Metrics.PrometheusPort, logg)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher *mqtt.PlanPublisher
	if cfg.MQTT.Enabled() {
		var err error
		publisher, err = mqtt.NewPlanPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{cfg: cfg, log: logg, sink: sink, publisher: publisher}, nil
}

func servePrometheus(port string, log logger.Logger) {
	if port == "" {
		port = "2112"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Errorf("prometheus server: %v", err)
	}
}

// Run resolves the generation profile, solves the configured application and
// hands the result to the configured consumers.
func (s *Service) Run(ctx context.Context) error {
	sc := s.cfg.Scenario
	ti := sc.TimeIndex()

	profile := ninja.NewClient(s.cfg.Ninja.Token).FetchOrFallback(ctx, s.cfg.Ninja, ti.Len())
	if profile.Synthetic {
		s.log.Warnf("running on synthetic generation data; results are degraded")
	}

	scenario := sc.Scenario(profile.Values, profile.Synthetic)
	scenario.Solar.Latitude = s.cfg.Ninja.Latitude
	scenario.Solar.Longitude = s.cfg.Ninja.Longitude
	scenario.Logger = s.log
	scenario.Sink = s.sink

	res, err := s.solve(scenario)
	if err != nil {
		return err
	}

	if rec, ok := s.sink.(coremetrics.DispatchRecorder); ok {
		if err := rec.RecordDispatch(res.RunID, res.DispatchPoints()); err != nil {
			s.log.Warnf("dispatch recording: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(res); err != nil {
			s.log.Warnf("plan publish: %v", err)
		}
	}
	return s.export(res)
}

func (s *Service) solve(scenario apps.Scenario) (*engine.Result, error) {
	sc := s.cfg.Scenario
	switch sc.Application {
	case config.AppPeakShaving:
		return apps.NewPeakShaving(scenario).Run()
	case config.AppSolarClipping:
		return apps.NewSolarClipping(scenario, sc.ClipThreshold).Run()
	case config.AppGridExportTarget:
		return apps.NewGridExportTarget(scenario, sc.ExportTargetMW).Run()
	case config.AppEnergyArbitrage:
		return apps.NewEnergyArbitrage(scenario, sc.DegradationCostPerMWh).Run()
	default:
		return nil, fmt.Errorf("unknown application %q", sc.Application)
	}
}

func (s *Service) export(res *engine.Result) error {
	writers := []struct {
		path  string
		write func(f *os.File) error
	}{
		{s.cfg.Export.DispatchCSV, func(f *os.File) error { return export.WriteDispatchCSV(f, res) }},
		{s.cfg.Export.SummaryCSV, func(f *os.File) error { return export.WriteSummaryCSV(f, res) }},
		{s.cfg.Export.JSON, func(f *os.File) error { return export.WriteJSON(f, res) }},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		f, err := os.Create(w.path)
		if err != nil {
			return fmt.Errorf("create %s: %w", w.path, err)
		}
		if err := w.write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", w.path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		s.log.Infof("wrote %s", w.path)
	}
	return nil
}

// Close releases the service's external connections.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/bessplan/core/metrics"
)

func TestPromSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.SolveRecord{
		RunID:       "run-1",
		Application: "peak_shaving",
		Objective:   -500,
		NetCost:     -500,
		Duration:    200 * time.Millisecond,
		Outcome:     "solved",
	}
	if err := sink.RecordSolve(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP optimization_solves_total Total number of optimization runs
# TYPE optimization_solves_total counter
optimization_solves_total{application="peak_shaving",outcome="solved",synthetic="false"} 1
`
	if err := testutil.CollectAndCompare(sink.solves, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.netCost.WithLabelValues("peak_shaving")); got != -500 {
		t.Errorf("net cost gauge: expected -500, got %v", got)
	}
}

func TestPromSink_FailedRunSkipsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.SolveRecord{Application: "stress", Outcome: "infeasible"}
	if err := sink.RecordSolve(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if got := testutil.CollectAndCount(sink.objective); got != 0 {
		t.Errorf("objective gauge written for a failed run: %d series", got)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should be tolerated: %v", err)
	}
}

// Package metrics defines the observability sink consumed by the
// optimization engine. Implementations live under infra/metrics.
package metrics

import "time"

// SolveRecord summarizes one optimization run.
type SolveRecord struct {
	RunID       string
	Application string
	Steps       int
	Objective   float64
	Revenue     float64
	NetCost     float64
	Duration    time.Duration
	Outcome     string // solved, infeasible or solver_error
	Synthetic   bool   // true when the run used a fallback generation profile
}

// DispatchPoint is one solved value of a time-indexed dispatch series.
type DispatchPoint struct {
	Time   time.Time
	Series string
	Value  float64
}

// Sink records optimization outcomes for observability purposes.
type Sink interface {
	RecordSolve(rec SolveRecord) error
}

// DispatchRecorder records the per-timestep dispatch of a solved run. It is
// implemented by sinks with a time-series backend.
type DispatchRecorder interface {
	RecordDispatch(runID string, points []DispatchPoint) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordSolve(SolveRecord) error { return nil }

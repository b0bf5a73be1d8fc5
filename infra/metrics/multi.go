package metrics

import coremetrics "github.com/kilianp07/bessplan/core/metrics"

// MultiSink fans solve records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSolve(rec coremetrics.SolveRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordDispatch forwards dispatch points to sinks with a time-series
// backend.
func (m *MultiSink) RecordDispatch(runID string, points []coremetrics.DispatchPoint) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DispatchRecorder); ok {
			if err := rec.RecordDispatch(runID, points); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases sinks holding external connections.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if closer, ok := s.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

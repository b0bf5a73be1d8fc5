package metrics

import (
	"testing"

	coremetrics "github.com/kilianp07/bessplan/core/metrics"
)

type recordSink struct {
	solves   int
	dispatch int
}

func (r *recordSink) RecordSolve(coremetrics.SolveRecord) error {
	r.solves++
	return nil
}

func (r *recordSink) RecordDispatch(string, []coremetrics.DispatchPoint) error {
	r.dispatch++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordSolve(coremetrics.SolveRecord{}); err != nil {
		t.Fatalf("record solve: %v", err)
	}
	if err := m.RecordDispatch("run", nil); err != nil {
		t.Fatalf("record dispatch: %v", err)
	}
	if s1.solves != 1 || s2.solves != 1 {
		t.Fatalf("solve records not forwarded")
	}
	if s1.dispatch != 1 || s2.dispatch != 1 {
		t.Fatalf("dispatch points not forwarded")
	}
}

func TestMultiSinkSkipsPlainSinks(t *testing.T) {
	m := NewMultiSink(coremetrics.NopSink{}, &recordSink{})
	// NopSink has no dispatch backend; fan-out must not panic on it.
	if err := m.RecordDispatch("run", nil); err != nil {
		t.Fatalf("record dispatch: %v", err)
	}
}

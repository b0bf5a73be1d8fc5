package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/kilianp07/bessplan/core/engine"
	"github.com/kilianp07/bessplan/core/model"
)

func testResult() *engine.Result {
	return &engine.Result{
		RunID:     "run-1",
		TimeIndex: model.NewTimeIndex(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2),
		Objective: -42.5,
		Summary: map[string]float64{
			engine.KeyNetCost: 10,
			engine.KeyRevenue: 52.5,
		},
		Series: map[string][]float64{
			engine.SeriesExport: {1.5, 2},
			engine.SeriesCharge: {0, 0.25},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded struct {
		RunID   string               `json:"run_id"`
		Summary map[string]float64   `json:"summary"`
		Series  map[string][]float64 `json:"series"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RunID != "run-1" {
		t.Fatalf("run id lost: %q", decoded.RunID)
	}
	if decoded.Summary[engine.KeyRevenue] != 52.5 {
		t.Fatalf("summary lost: %v", decoded.Summary)
	}
	if len(decoded.Series[engine.SeriesExport]) != 2 {
		t.Fatalf("series lost: %v", decoded.Series)
	}
}

func TestWriteDispatchCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDispatchCSV(&buf, testResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "timestamp" || header[1] != engine.SeriesCharge || header[2] != engine.SeriesExport {
		t.Fatalf("unexpected header %v", header)
	}
	if rows[1][2] != "1.5" {
		t.Fatalf("unexpected export value %q", rows[1][2])
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, testResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	// Keys come out in sorted order.
	if rows[1][0] != engine.KeyNetCost || rows[2][0] != engine.KeyRevenue {
		t.Fatalf("unexpected key order %v %v", rows[1][0], rows[2][0])
	}
	if rows[2][1] != "52.5" {
		t.Fatalf("unexpected value %q", rows[2][1])
	}
}

// Package export writes solved optimization results to downstream formats.
// Persistence is a collaborator concern; the optimization core never touches
// files itself.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/kilianp07/bessplan/core/engine"
)

// WriteJSON writes the full result (summary and dispatch series) to w.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	return enc.Encode(struct {
		RunID     string               `json:"run_id"`
		Start     time.Time            `json:"start"`
		StepHours float64              `json:"step_hours"`
		Objective float64              `json:"objective"`
		Summary   map[string]float64   `json:"summary"`
		Series    map[string][]float64 `json:"series"`
		Synthetic bool                 `json:"synthetic"`
	}{
		RunID:     res.RunID,
		Start:     res.TimeIndex.Start,
		StepHours: res.TimeIndex.StepHours,
		Objective: res.Objective,
		Summary:   res.Summary,
		Series:    res.Series,
		Synthetic: res.SyntheticProfile,
	})
}

// WriteDispatchCSV writes the per-timestep dispatch series to w, one row per
// timestep with a timestamp column followed by the series in sorted name
// order.
func WriteDispatchCSV(w io.Writer, res *engine.Result) error {
	names := make([]string, 0, len(res.Series))
	for name := range res.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"timestamp"}, names...)); err != nil {
		return err
	}
	for t := 0; t < res.TimeIndex.Len(); t++ {
		rec := make([]string, 0, len(names)+1)
		rec = append(rec, res.TimeIndex.Time(t).Format(time.RFC3339))
		for _, name := range names {
			rec = append(rec, strconv.FormatFloat(res.Series[name][t], 'f', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the summary mapping to w as key,value rows in
// sorted key order.
func WriteSummaryCSV(w io.Writer, res *engine.Result) error {
	keys := make([]string, 0, len(res.Summary))
	for k := range res.Summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := cw.Write([]string{k, strconv.FormatFloat(res.Summary[k], 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

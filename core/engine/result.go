package engine

import (
	"github.com/kilianp07/bessplan/core/metrics"
	"github.com/kilianp07/bessplan/core/model"
)

// Summary keys of a solved run.
const (
	KeyBatteryCapacity    = "battery.capacity"
	KeyBatteryCost        = "battery.cost"
	KeySolarCapacity      = "solar.capacity"
	KeySolarCost          = "solar.cost"
	KeyGridMaxExport      = "grid.max_export"
	KeyGridConnectionCost = "grid.connection_cost"
	KeyTotalCost          = "total_cost"
	KeyRevenue            = "revenue"
	KeyNetCost            = "net_cost"
)

// Dispatch series keys of a solved run.
const (
	SeriesExport     = "grid.export"
	SeriesImport     = "grid.import"
	SeriesCharge     = "battery.charge"
	SeriesDischarge  = "battery.discharge"
	SeriesSoC        = "battery.soc"
	SeriesGeneration = "solar.generation"
)

// Result is the immutable snapshot extracted from a solved model.
type Result struct {
	RunID            string
	TimeIndex        model.TimeIndex
	Objective        float64
	Summary          map[string]float64
	Series           map[string][]float64
	SyntheticProfile bool
}

// DispatchPoints flattens the time-indexed series for a time-series sink.
func (r *Result) DispatchPoints() []metrics.DispatchPoint {
	var points []metrics.DispatchPoint
	for name, series := range r.Series {
		for t, v := range series {
			points = append(points, metrics.DispatchPoint{
				Time:   r.TimeIndex.Time(t),
				Series: name,
				Value:  v,
			})
		}
	}
	return points
}

package model

import (
	"fmt"
	"time"
)

// TimeIndex is the discrete hourly horizon shared by every decision variable
// and every time-indexed parameter of an optimization run.
type TimeIndex struct {
	Start     time.Time
	Steps     int
	StepHours float64
}

// NewTimeIndex returns an hourly index of n steps starting at start.
func NewTimeIndex(start time.Time, n int) TimeIndex {
	return TimeIndex{Start: start, Steps: n, StepHours: 1}
}

// Len returns the number of timesteps.
func (ti TimeIndex) Len() int { return ti.Steps }

// Dt returns the step duration in hours.
func (ti TimeIndex) Dt() float64 { return ti.StepHours }

// Time returns the wall-clock time of step i.
func (ti TimeIndex) Time(i int) time.Time {
	return ti.Start.Add(time.Duration(float64(i) * ti.StepHours * float64(time.Hour)))
}

// Validate checks that the index describes a usable horizon.
func (ti TimeIndex) Validate() error {
	if ti.Steps <= 0 {
		return &ConfigError{Field: "time_index.steps", Reason: "must be positive"}
	}
	if ti.StepHours <= 0 {
		return &ConfigError{Field: "time_index.step_hours", Reason: "must be positive"}
	}
	return nil
}

// CheckSeries verifies that a time series is aligned with the index.
func (ti TimeIndex) CheckSeries(name string, s []float64) error {
	if len(s) != ti.Steps {
		return &ConfigError{
			Field:  name,
			Reason: fmt.Sprintf("length %d does not match horizon of %d steps", len(s), ti.Steps),
		}
	}
	return nil
}

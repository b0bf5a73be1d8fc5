package model

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid parameter combination detected before the
// model is built. It never reaches the solver.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrInfeasible indicates the solver proved that no feasible dispatch exists.
var ErrInfeasible = errors.New("model infeasible")

// SolverError wraps a numeric solver failure. Runs that hit it return no
// partial results.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return fmt.Sprintf("solver failure: %v", e.Err) }

func (e *SolverError) Unwrap() error { return e.Err }

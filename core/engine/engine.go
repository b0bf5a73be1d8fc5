// Package engine assembles the battery, solar and grid components into one
// joint linear program, runs the solver and extracts an economic result.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/bessplan/core/components"
	"github.com/kilianp07/bessplan/core/logger"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/metrics"
	"github.com/kilianp07/bessplan/core/model"
)

// State tracks the one-way build lifecycle of an engine. Re-solving requires
// a fresh engine.
type State int

const (
	StateUnbuilt State = iota
	StateVariablesAdded
	StateConstraintsAdded
	StateObjectiveSet
	StateSolved
	StateInfeasible
	StateSolverError
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateVariablesAdded:
		return "variables-added"
	case StateConstraintsAdded:
		return "constraints-added"
	case StateObjectiveSet:
		return "objective-set"
	case StateSolved:
		return "solved"
	case StateInfeasible:
		return "infeasible"
	case StateSolverError:
		return "solver-error"
	default:
		return "unknown"
	}
}

// ErrAlreadyBuilt is returned when Optimize is called on a used engine.
var ErrAlreadyBuilt = errors.New("engine already built: create a new engine to re-solve")

// Variables exposes every component's variable handles so that application
// hooks can attach cross-cutting constraints and objective terms.
type Variables struct {
	Battery components.BatteryVars
	Solar   components.SolarVars
	Grid    components.GridVars
}

// ConstraintHook attaches application-specific constraints to the model after
// the component constraints are in place.
type ConstraintHook func(m *lp.Model, ti model.TimeIndex, vars Variables)

// ObjectiveHook returns an extra cost expression added to the minimized
// objective.
type ObjectiveHook func(ti model.TimeIndex, vars Variables) lp.Expr

// Option configures an engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option { return func(e *Engine) { e.log = l } }

// WithMetricsSink sets the sink receiving solve records.
func WithMetricsSink(s metrics.Sink) Option { return func(e *Engine) { e.sink = s } }

// WithTolerance overrides the simplex pivot tolerance.
func WithTolerance(tol float64) Option { return func(e *Engine) { e.tol = tol } }

// WithApplication names the use-case in logs and metrics.
func WithApplication(name string) Option { return func(e *Engine) { e.application = name } }

// WithSyntheticProfile marks the run as using a fallback generation profile.
func WithSyntheticProfile(synthetic bool) Option {
	return func(e *Engine) { e.synthetic = synthetic }
}

// WithConstraintHook registers an application constraint hook.
func WithConstraintHook(h ConstraintHook) Option {
	return func(e *Engine) { e.conHooks = append(e.conHooks, h) }
}

// WithObjectiveHook registers an extra objective term.
func WithObjectiveHook(h ObjectiveHook) Option {
	return func(e *Engine) { e.objHooks = append(e.objHooks, h) }
}

// Engine owns the shared model and time index for a single solve.
type Engine struct {
	ti           model.TimeIndex
	battery      *components.Battery
	solar        *components.Solar
	grid         *components.Grid
	discountRate float64

	application string
	state       State
	tol         float64
	synthetic   bool
	conHooks    []ConstraintHook
	objHooks    []ObjectiveHook
	log         logger.Logger
	sink        metrics.Sink
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// New validates all parameters eagerly and returns an unbuilt engine.
// Configuration errors never reach the solver.
func New(ti model.TimeIndex, bp model.BatteryParameters, sp model.SolarParameters, gp model.GridParameters, discountRate float64, opts ...Option) (*Engine, error) {
	if err := ti.Validate(); err != nil {
		return nil, err
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	if err := gp.Validate(); err != nil {
		return nil, err
	}
	if err := ti.CheckSeries("solar.generation_profile", sp.GenerationProfile); err != nil {
		return nil, err
	}
	if err := ti.CheckSeries("grid.price_profile", gp.PriceProfile); err != nil {
		return nil, err
	}
	if discountRate < 0 {
		return nil, &model.ConfigError{Field: "discount_rate", Reason: "must not be negative"}
	}

	e := &Engine{
		ti:           ti,
		battery:      components.NewBattery(bp),
		solar:        components.NewSolar(sp),
		grid:         components.NewGrid(gp),
		discountRate: discountRate,
		application:  "custom",
		state:        StateUnbuilt,
		tol:          lp.DefaultTol,
		log:          nopLogger{},
		sink:         metrics.NopSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State { return e.state }

// Optimize builds the joint model, solves it and extracts the result. The
// grid power balance references battery and solar handles, so components are
// built in dependency order. On infeasibility or solver failure a distinct
// error is returned and no result is produced.
func (e *Engine) Optimize() (*Result, error) {
	if e.state != StateUnbuilt {
		return nil, ErrAlreadyBuilt
	}

	m := lp.NewModel()
	vars := Variables{}
	vars.Battery = e.battery.AddVariables(m, e.ti)
	vars.Solar = e.solar.AddVariables(m, e.ti)
	vars.Grid = e.grid.AddVariables(m, e.ti)
	e.state = StateVariablesAdded

	e.battery.AddConstraints(m, e.ti, vars.Battery)
	e.solar.AddConstraints(m, e.ti, vars.Solar)
	e.grid.AddPowerBalance(m, e.ti, vars.Grid, vars.Solar, vars.Battery)
	for _, h := range e.conHooks {
		h(m, e.ti, vars)
	}
	e.state = StateConstraintsAdded

	solarCost := e.solar.AnnualizedCost(e.discountRate)
	connCost := e.grid.AnnualizedConnectionCost(e.discountRate)
	obj := e.battery.CostExpr(vars.Battery, e.discountRate).
		AddConst(solarCost + connCost).
		AddExpr(e.grid.EnergyExpr(e.ti, vars.Grid).Scale(-1))
	for _, h := range e.objHooks {
		obj = obj.AddExpr(h(e.ti, vars))
	}
	m.SetObjective(obj)
	e.state = StateObjectiveSet

	e.log.Debugw("model assembled", map[string]any{
		"steps":       e.ti.Len(),
		"variables":   m.NumVars(),
		"constraints": m.NumConstraints(),
	})

	start := time.Now()
	sol, err := m.Solve(e.tol)
	elapsed := time.Since(start)
	runID := uuid.NewString()
	if err != nil {
		outcome := "solver_error"
		if errors.Is(err, model.ErrInfeasible) {
			e.state = StateInfeasible
			outcome = "infeasible"
		} else {
			e.state = StateSolverError
		}
		e.log.Errorf("solve failed after %s: %v", elapsed, err)
		e.record(metrics.SolveRecord{
			RunID: runID, Application: e.application, Steps: e.ti.Len(),
			Duration: elapsed, Outcome: outcome, Synthetic: e.synthetic,
		})
		return nil, fmt.Errorf("optimize %s: %w", e.application, err)
	}
	e.state = StateSolved

	res := e.extract(runID, sol, vars, solarCost, connCost)
	e.log.Infof("solved %s in %s: net cost %.2f", e.application, elapsed, res.Summary[KeyNetCost])
	e.record(metrics.SolveRecord{
		RunID: runID, Application: e.application, Steps: e.ti.Len(),
		Objective: res.Objective, Revenue: res.Summary[KeyRevenue],
		NetCost: res.Summary[KeyNetCost], Duration: elapsed,
		Outcome: "solved", Synthetic: e.synthetic,
	})
	return res, nil
}

func (e *Engine) record(rec metrics.SolveRecord) {
	if err := e.sink.RecordSolve(rec); err != nil {
		e.log.Warnf("metrics sink: %v", err)
	}
}

func (e *Engine) extract(runID string, sol *lp.Solution, vars Variables, solarCost, connCost float64) *Result {
	capacity := vars.Battery.Capacity.Value(sol)
	batteryCost := e.battery.AnnualizedCost(capacity, e.discountRate)

	export := sol.Values(vars.Grid.Export)
	imported := sol.Values(vars.Grid.Import)
	prices := e.grid.Params().PriceProfile
	dt := e.ti.Dt()
	var revenue float64
	for t := range export {
		revenue += (export[t] - imported[t]) * prices[t] * dt
	}
	totalCost := batteryCost + solarCost + connCost

	return &Result{
		RunID:            runID,
		TimeIndex:        e.ti,
		Objective:        sol.Objective(),
		SyntheticProfile: e.synthetic,
		Summary: map[string]float64{
			KeyBatteryCapacity:    capacity,
			KeyBatteryCost:        batteryCost,
			KeySolarCapacity:      e.solar.Params().CapacityMW,
			KeySolarCost:          solarCost,
			KeyGridMaxExport:      e.grid.Params().MaxExportMW,
			KeyGridConnectionCost: connCost,
			KeyTotalCost:          totalCost,
			KeyRevenue:            revenue,
			KeyNetCost:            totalCost - revenue,
		},
		Series: map[string][]float64{
			SeriesExport:     export,
			SeriesImport:     imported,
			SeriesCharge:     sol.Values(vars.Battery.Charge),
			SeriesDischarge:  sol.Values(vars.Battery.Discharge),
			SeriesSoC:        sol.Values(vars.Battery.SoC),
			SeriesGeneration: sol.Values(vars.Solar.Generation),
		},
	}
}

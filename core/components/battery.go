// Package components holds the battery, solar and grid model builders. Each
// component attaches its decision variables and constraints to a shared lp
// model over a common time index; coupling constraints reference variable
// handles owned by other components.
package components

import (
	"fmt"
	"math"

	"github.com/kilianp07/bessplan/core/finance"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

// CapacityTerm is a battery capacity resolved at model-build time into either
// a constant or a decision variable. Constraint code treats both uniformly
// through Expr.
type CapacityTerm struct {
	v     lp.Var
	fixed float64
	sized bool
}

// Expr returns coef*capacity as a linear expression.
func (c CapacityTerm) Expr(coef float64) lp.Expr {
	if c.sized {
		return lp.Term(c.v, coef)
	}
	return lp.Const(coef * c.fixed)
}

// Sized reports whether the capacity is a decision variable.
func (c CapacityTerm) Sized() bool { return c.sized }

// Value reads the solved capacity, or the fixed value when not sized.
func (c CapacityTerm) Value(sol *lp.Solution) float64 {
	if c.sized {
		return sol.Value(c.v)
	}
	return c.fixed
}

// BatteryVars are the variable handles produced by the battery component.
type BatteryVars struct {
	Charge    []lp.Var
	Discharge []lp.Var
	SoC       []lp.Var
	Capacity  CapacityTerm
}

// Battery builds the storage part of the joint model.
type Battery struct {
	params model.BatteryParameters
}

// NewBattery returns a battery component for validated parameters.
func NewBattery(p model.BatteryParameters) *Battery {
	return &Battery{params: p}
}

// Params returns the component's immutable parameters.
func (b *Battery) Params() model.BatteryParameters { return b.params }

// AddVariables declares charge, discharge and state-of-charge series, plus a
// capacity variable when sizing is endogenous.
func (b *Battery) AddVariables(m *lp.Model, ti model.TimeIndex) BatteryVars {
	n := ti.Len()
	vars := BatteryVars{
		Charge:    m.AddVars("battery_charge", n, 0, math.Inf(1)),
		Discharge: m.AddVars("battery_discharge", n, 0, math.Inf(1)),
		SoC:       m.AddVars("battery_soc", n, 0, math.Inf(1)),
	}
	if b.params.Capacity.Sized() {
		vars.Capacity = CapacityTerm{v: m.AddVar("battery_capacity", 0, math.Inf(1)), sized: true}
	} else {
		vars.Capacity = CapacityTerm{fixed: b.params.Capacity.Value()}
	}
	return vars
}

// AddConstraints attaches the SoC balance, power limit and capacity bound
// constraints. The horizon starts with an empty battery: SoC[0] carries no
// prior-period energy. Charge and discharge are not mutually exclusive;
// round-trip losses make simultaneous operation suboptimal.
func (b *Battery) AddConstraints(m *lp.Model, ti model.TimeIndex, vars BatteryVars) {
	p := b.params
	dt := ti.Dt()

	// SoC[0] = dt*(charge[0]*etaC - discharge[0]/etaD)
	expr0 := lp.Term(vars.SoC[0], 1).
		Add(vars.Charge[0], -dt*p.ChargeEfficiency).
		Add(vars.Discharge[0], dt/p.DischargeEfficiency)
	m.AddConstraint(expr0, lp.Equal, 0, "soc_balance[0]")

	// SoC[t] = SoC[t-1]*(1-loss) + dt*(charge[t]*etaC - discharge[t]/etaD)
	for t := 1; t < ti.Len(); t++ {
		expr := lp.Term(vars.SoC[t], 1).
			Add(vars.SoC[t-1], -(1 - p.StandingLoss)).
			Add(vars.Charge[t], -dt*p.ChargeEfficiency).
			Add(vars.Discharge[t], dt/p.DischargeEfficiency)
		m.AddConstraint(expr, lp.Equal, 0, fmt.Sprintf("soc_balance[%d]", t))
	}

	// charge[t] <= c_rate*capacity, discharge[t] <= c_rate*capacity,
	// soc[t] <= capacity.
	for t := 0; t < ti.Len(); t++ {
		m.AddConstraint(
			lp.Term(vars.Charge[t], 1).AddExpr(vars.Capacity.Expr(-p.CRate)),
			lp.LessEq, 0, fmt.Sprintf("charge_c_rate[%d]", t))
		m.AddConstraint(
			lp.Term(vars.Discharge[t], 1).AddExpr(vars.Capacity.Expr(-p.CRate)),
			lp.LessEq, 0, fmt.Sprintf("discharge_c_rate[%d]", t))
		m.AddConstraint(
			lp.Term(vars.SoC[t], 1).AddExpr(vars.Capacity.Expr(-1)),
			lp.LessEq, 0, fmt.Sprintf("soc_limit[%d]", t))
	}
}

// CostExpr returns the annualized battery CAPEX as an expression over the
// capacity term.
func (b *Battery) CostExpr(vars BatteryVars, discountRate float64) lp.Expr {
	af := finance.AnnuityFactor(discountRate, b.params.LifetimeYears)
	return vars.Capacity.Expr(b.params.CapexPerMWh * af)
}

// AnnualizedCost prices a solved (or fixed) capacity in currency per year.
func (b *Battery) AnnualizedCost(capacity, discountRate float64) float64 {
	return b.params.CapexPerMWh * capacity * finance.AnnuityFactor(discountRate, b.params.LifetimeYears)
}

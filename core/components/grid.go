package components

import (
	"fmt"
	"math"

	"github.com/kilianp07/bessplan/core/finance"
	"github.com/kilianp07/bessplan/core/lp"
	"github.com/kilianp07/bessplan/core/model"
)

// GridVars are the variable handles produced by the grid component.
type GridVars struct {
	Export []lp.Var
	Import []lp.Var
}

// Grid builds the connection part of the joint model.
type Grid struct {
	params model.GridParameters
}

// NewGrid returns a grid component for validated parameters.
func NewGrid(p model.GridParameters) *Grid {
	return &Grid{params: p}
}

// Params returns the component's immutable parameters.
func (g *Grid) Params() model.GridParameters { return g.params }

// AddVariables declares the export and import series within their power
// limits. A zero import limit pins the import series to zero.
func (g *Grid) AddVariables(m *lp.Model, ti model.TimeIndex) GridVars {
	return GridVars{
		Export: m.AddVars("grid_export", ti.Len(), 0, g.params.MaxExportMW),
		Import: m.AddVars("grid_import", ti.Len(), 0, g.params.MaxImportMW),
	}
}

// AddPowerBalance closes the loop between components:
// export[t] - import[t] = generation[t] + discharge[t] - charge[t].
func (g *Grid) AddPowerBalance(m *lp.Model, ti model.TimeIndex, vars GridVars, solar SolarVars, battery BatteryVars) {
	for t := 0; t < ti.Len(); t++ {
		expr := lp.Term(vars.Export[t], 1).
			Add(vars.Import[t], -1).
			Add(solar.Generation[t], -1).
			Add(battery.Discharge[t], -1).
			Add(battery.Charge[t], 1)
		m.AddConstraint(expr, lp.Equal, 0, fmt.Sprintf("power_balance[%d]", t))
	}
}

// EnergyExpr returns the time-weighted grid energy result as an expression:
// export revenue minus import cost at the supplied prices.
func (g *Grid) EnergyExpr(ti model.TimeIndex, vars GridVars) lp.Expr {
	expr := lp.Expr{}
	dt := ti.Dt()
	for t := 0; t < ti.Len(); t++ {
		price := g.params.PriceProfile[t]
		expr = expr.Add(vars.Export[t], price*dt).Add(vars.Import[t], -price*dt)
	}
	return expr
}

// AnnualizedConnectionCost annuitizes the per-unit connection rate over the
// notional connection size max(maxImport, maxExport).
func (g *Grid) AnnualizedConnectionCost(discountRate float64) float64 {
	size := math.Max(g.params.MaxImportMW, g.params.MaxExportMW)
	return g.params.ConnectionCost * size * finance.AnnuityFactor(discountRate, g.params.LifetimeYears)
}

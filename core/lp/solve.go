package lp

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/bessplan/core/model"
)

// DefaultTol is the pivot tolerance handed to the simplex solver.
const DefaultTol = 1e-7

// Solution holds the solved variable values and objective of a model.
type Solution struct {
	x         []float64
	objective float64
}

// Value returns the solved value of v.
func (s *Solution) Value(v Var) float64 { return s.x[v] }

// Values returns the solved values of vars in order.
func (s *Solution) Values(vars []Var) []float64 {
	out := make([]float64, len(vars))
	for i, v := range vars {
		out[i] = s.x[v]
	}
	return out
}

// Objective returns the objective value, including any constant offset.
func (s *Solution) Objective() float64 { return s.objective }

// simplexSolve points to the standard-form solver. Tests override it to
// simulate solver failures.
var simplexSolve = func(c []float64, a mat.Matrix, b []float64, tol float64) (float64, []float64, error) {
	return lp.Simplex(c, a, b, tol, nil)
}

// Solve assembles the model into general form (inequality matrix from
// constraints and finite variable bounds, equality matrix from equalities)
// and runs gonum's simplex method. An infeasible model returns
// model.ErrInfeasible; any other solver failure is wrapped in
// model.SolverError.
func (m *Model) Solve(tol float64) (*Solution, error) {
	if tol <= 0 {
		tol = DefaultTol
	}
	n := m.NumVars()
	if n == 0 {
		return nil, &model.SolverError{Err: errors.New("model has no variables")}
	}

	var gRows, aRows [][]float64
	var h, b []float64

	for _, con := range m.cons {
		row := m.coeffs(con.expr)
		rhs := con.rhs - con.expr.offset
		switch con.rel {
		case LessEq:
			gRows = append(gRows, row)
			h = append(h, rhs)
		case GreaterEq:
			neg := make([]float64, n)
			for i, v := range row {
				neg[i] = -v
			}
			gRows = append(gRows, neg)
			h = append(h, -rhs)
		case Equal:
			aRows = append(aRows, row)
			b = append(b, rhs)
		}
	}

	// Finite variable bounds become inequality rows.
	for i := 0; i < n; i++ {
		if m.hasFiniteLower(i) {
			row := make([]float64, n)
			row[i] = -1
			gRows = append(gRows, row)
			h = append(h, -m.lower[i])
		}
		if m.hasFiniteUpper(i) {
			row := make([]float64, n)
			row[i] = 1
			gRows = append(gRows, row)
			h = append(h, m.upper[i])
		}
	}

	var g mat.Matrix
	if len(gRows) > 0 {
		g = denseFromRows(gRows, n)
	}
	var a mat.Matrix
	if len(aRows) > 0 {
		a = denseFromRows(aRows, n)
	}

	c := m.coeffs(m.obj)
	cStd, aStd, bStd := lp.Convert(c, g, h, a, b)
	_, xs, err := simplexSolve(cStd, aStd, bStd, tol)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, model.ErrInfeasible
		}
		return nil, &model.SolverError{Err: err}
	}

	// Convert splits each free variable into a positive and negative part;
	// the original value is their difference.
	x := make([]float64, n)
	obj := m.obj.offset
	for i := 0; i < n; i++ {
		x[i] = xs[i] - xs[n+i]
		obj += c[i] * x[i]
	}
	return &Solution{x: x, objective: obj}, nil
}

func denseFromRows(rows [][]float64, n int) *mat.Dense {
	d := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		d.SetRow(i, row)
	}
	return d
}

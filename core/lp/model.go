package lp

import (
	"fmt"
	"math"
)

// Var is a handle to a decision variable owned by a Model.
type Var int

// Relation is the comparison of a constraint's expression to its right-hand side.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	default:
		return "?"
	}
}

type term struct {
	v    Var
	coef float64
}

// Expr is a linear expression: a sum of coefficient*variable terms plus a
// constant offset. The zero value is the empty expression.
type Expr struct {
	terms  []term
	offset float64
}

// Term returns an expression holding a single coef*v term.
func Term(v Var, coef float64) Expr {
	return Expr{terms: []term{{v: v, coef: coef}}}
}

// Const returns a constant expression.
func Const(c float64) Expr { return Expr{offset: c} }

// Add returns e extended with the term coef*v.
func (e Expr) Add(v Var, coef float64) Expr {
	terms := make([]term, len(e.terms), len(e.terms)+1)
	copy(terms, e.terms)
	return Expr{terms: append(terms, term{v: v, coef: coef}), offset: e.offset}
}

// AddConst returns e with c added to its constant offset.
func (e Expr) AddConst(c float64) Expr {
	return Expr{terms: e.terms, offset: e.offset + c}
}

// AddExpr returns the sum of e and o.
func (e Expr) AddExpr(o Expr) Expr {
	terms := make([]term, 0, len(e.terms)+len(o.terms))
	terms = append(terms, e.terms...)
	terms = append(terms, o.terms...)
	return Expr{terms: terms, offset: e.offset + o.offset}
}

// Scale returns e with every coefficient and the offset multiplied by f.
func (e Expr) Scale(f float64) Expr {
	terms := make([]term, len(e.terms))
	for i, t := range e.terms {
		terms[i] = term{v: t.v, coef: t.coef * f}
	}
	return Expr{terms: terms, offset: e.offset * f}
}

// Constant returns the constant offset of e.
func (e Expr) Constant() float64 { return e.offset }

type constraint struct {
	expr Expr
	rel  Relation
	rhs  float64
	name string
}

// Model accumulates variables, constraints and a minimization objective.
type Model struct {
	names []string
	lower []float64
	upper []float64
	cons  []constraint
	obj   Expr
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// AddVar declares a continuous variable bounded to [lower, upper]. Use
// math.Inf(1) for an unbounded upper limit.
func (m *Model) AddVar(name string, lower, upper float64) Var {
	m.names = append(m.names, name)
	m.lower = append(m.lower, lower)
	m.upper = append(m.upper, upper)
	return Var(len(m.names) - 1)
}

// AddVars declares n variables sharing the same bounds, named name[0..n).
func (m *Model) AddVars(name string, n int, lower, upper float64) []Var {
	vars := make([]Var, n)
	for i := range vars {
		vars[i] = m.AddVar(fmt.Sprintf("%s[%d]", name, i), lower, upper)
	}
	return vars
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.names) }

// VarName returns the declared name of v.
func (m *Model) VarName(v Var) string { return m.names[v] }

// AddConstraint records expr rel rhs. The expression's constant offset is
// folded into the right-hand side at solve time.
func (m *Model) AddConstraint(expr Expr, rel Relation, rhs float64, name string) {
	m.cons = append(m.cons, constraint{expr: expr, rel: rel, rhs: rhs, name: name})
}

// NumConstraints returns the number of recorded constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// SetObjective sets the expression to minimize.
func (m *Model) SetObjective(e Expr) { m.obj = e }

// coeffs flattens an expression into a dense coefficient row.
func (m *Model) coeffs(e Expr) []float64 {
	row := make([]float64, m.NumVars())
	for _, t := range e.terms {
		row[t.v] += t.coef
	}
	return row
}

func (m *Model) hasFiniteLower(i int) bool { return !math.IsInf(m.lower[i], -1) }
func (m *Model) hasFiniteUpper(i int) bool { return !math.IsInf(m.upper[i], 1) }

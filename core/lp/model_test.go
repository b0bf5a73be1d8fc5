package lp

import (
	"math"
	"testing"
)

func TestExprAlgebra(t *testing.T) {
	e := Const(2).AddConst(3)
	if e.Constant() != 5 {
		t.Fatalf("expected constant 5, got %v", e.Constant())
	}
	if got := e.Scale(2).Constant(); got != 10 {
		t.Fatalf("expected scaled constant 10, got %v", got)
	}
}

func TestModelVariables(t *testing.T) {
	m := NewModel()
	x := m.AddVar("x", 0, 1)
	vars := m.AddVars("y", 3, 0, math.Inf(1))
	if m.NumVars() != 4 {
		t.Fatalf("expected 4 variables, got %d", m.NumVars())
	}
	if m.VarName(x) != "x" {
		t.Fatalf("unexpected name %q", m.VarName(x))
	}
	if m.VarName(vars[2]) != "y[2]" {
		t.Fatalf("unexpected name %q", m.VarName(vars[2]))
	}
}

func TestModelConstraintCount(t *testing.T) {
	m := NewModel()
	x := m.AddVar("x", 0, 1)
	m.AddConstraint(Term(x, 1), LessEq, 0.5, "cap")
	m.AddConstraint(Term(x, 1), GreaterEq, 0.1, "floor")
	if m.NumConstraints() != 2 {
		t.Fatalf("expected 2 constraints, got %d", m.NumConstraints())
	}
}

func TestRelationString(t *testing.T) {
	cases := map[Relation]string{LessEq: "<=", GreaterEq: ">=", Equal: "=="}
	for rel, want := range cases {
		if rel.String() != want {
			t.Fatalf("expected %q, got %q", want, rel.String())
		}
	}
}

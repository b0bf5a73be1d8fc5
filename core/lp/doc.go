// Package lp provides a small algebraic model builder for linear programs.
// Components declare named, bounded variables and attach linear constraints
// referencing variables owned by other components; an assembler converts the
// model into the general form expected by gonum's simplex solver.
package lp

package logic

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Satisfiable checks the formula with a full SAT solver. Unit propagation in
// Simplify only catches shallow conflicts; this is the audit for the rest.
func (f *Formula) Satisfiable() bool {
	if len(f.clauses) == 0 {
		return true
	}
	vars := make(map[string]z.Var)
	g := gini.New()
	for _, c := range f.clauses {
		for _, l := range c {
			v, ok := vars[l.Symbol]
			if !ok {
				v = z.Var(len(vars) + 1)
				vars[l.Symbol] = v
			}
			if l.Negated {
				g.Add(v.Neg())
			} else {
				g.Add(v.Pos())
			}
		}
		g.Add(z.LitNull)
	}
	return g.Solve() == 1
}

// Package logic is a small propositional clause engine. A Formula is a
// conjunction of clauses over string symbols; Simplify rewrites it to a
// canonical form by unit propagation so that certain facts surface as unit
// clauses.
package logic

import (
	"errors"
	"sort"
	"strings"
)

// ErrContradiction is returned when a formula simplifies to false.
var ErrContradiction = errors.New("contradictory belief")

// Literal is a symbol or its negation.
type Literal struct {
	Symbol  string
	Negated bool
}

// Pos returns the positive literal for symbol.
func Pos(symbol string) Literal { return Literal{Symbol: symbol} }

// Neg returns the negated literal for symbol.
func Neg(symbol string) Literal { return Literal{Symbol: symbol, Negated: true} }

// Not returns the complement of l.
func (l Literal) Not() Literal { return Literal{Symbol: l.Symbol, Negated: !l.Negated} }

func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Symbol
	}
	return l.Symbol
}

func (l Literal) less(o Literal) bool {
	if l.Symbol != o.Symbol {
		return l.Symbol < o.Symbol
	}
	return !l.Negated && o.Negated
}

// Clause is a disjunction of literals.
type Clause []Literal

// Or builds a clause from the given literals.
func Or(lits ...Literal) Clause { return Clause(lits) }

// AnyOf is the clause "at least one of symbols".
func AnyOf(symbols ...string) Clause {
	c := make(Clause, len(symbols))
	for i, s := range symbols {
		c[i] = Pos(s)
	}
	return c
}

// NotAll is the clause "not every one of symbols", i.e. at least one is false.
func NotAll(symbols ...string) Clause {
	c := make(Clause, len(symbols))
	for i, s := range symbols {
		c[i] = Neg(s)
	}
	return c
}

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// normalize sorts and dedups the literals. It reports false for a tautology.
func (c Clause) normalize() (Clause, bool) {
	out := make(Clause, len(c))
	copy(out, c)
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	n := 0
	for i, l := range out {
		if i > 0 && l == out[n-1] {
			continue
		}
		if n > 0 && l.Symbol == out[n-1].Symbol {
			return nil, false
		}
		out[n] = l
		n++
	}
	return out[:n], true
}

func (c Clause) subsumes(o Clause) bool {
	if len(c) > len(o) {
		return false
	}
	// both sorted
	j := 0
	for _, l := range c {
		for j < len(o) && o[j].less(l) {
			j++
		}
		if j == len(o) || o[j] != l {
			return false
		}
		j++
	}
	return true
}

func compareClauses(a, b Clause) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i].less(b[i])
		}
	}
	return false
}

// Value is the tri-state truth value of a symbol in a simplified formula.
type Value int

const (
	Unknown Value = iota
	True
	False
)

// Formula is a conjunction of clauses. The zero value is the empty (true)
// formula.
type Formula struct {
	clauses []Clause
}

// New returns a formula holding the given clauses.
func New(clauses ...Clause) *Formula {
	f := &Formula{}
	f.Add(clauses...)
	return f
}

// Add appends clauses to the conjunction.
func (f *Formula) Add(clauses ...Clause) {
	for _, c := range clauses {
		f.clauses = append(f.clauses, append(Clause(nil), c...))
	}
}

// Len returns the number of clauses currently held.
func (f *Formula) Len() int { return len(f.clauses) }

// Clauses returns a copy of the clauses.
func (f *Formula) Clauses() []Clause {
	out := make([]Clause, len(f.clauses))
	for i, c := range f.clauses {
		out[i] = append(Clause(nil), c...)
	}
	return out
}

// Units returns the literals of all unit clauses, in canonical order once the
// formula has been simplified.
func (f *Formula) Units() []Literal {
	var units []Literal
	for _, c := range f.clauses {
		if len(c) == 1 {
			units = append(units, c[0])
		}
	}
	return units
}

// Value reports what the unit clauses say about symbol.
func (f *Formula) Value(symbol string) Value {
	for _, c := range f.clauses {
		if len(c) == 1 && c[0].Symbol == symbol {
			if c[0].Negated {
				return False
			}
			return True
		}
	}
	return Unknown
}

func (f *Formula) String() string {
	parts := make([]string, len(f.clauses))
	for i, c := range f.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " & ")
}

// Simplify rewrites the formula into its normal form: tautologies and
// duplicate literals dropped, unit clauses propagated to a fixpoint, subsumed
// clauses removed, clauses sorted. Running it again without new clauses leaves
// the formula unchanged. On ErrContradiction the formula is left untouched.
func (f *Formula) Simplify() error {
	var pending []Clause
	for _, c := range f.clauses {
		if nc, ok := c.normalize(); ok {
			pending = append(pending, nc)
		}
	}

	assigned := make(map[string]bool)
	for {
		changed := false
		var next []Clause
		for _, c := range pending {
			reduced, satisfied := reduce(c, assigned)
			if satisfied {
				continue
			}
			switch len(reduced) {
			case 0:
				return ErrContradiction
			case 1:
				l := reduced[0]
				if v, ok := assigned[l.Symbol]; ok && v == l.Negated {
					return ErrContradiction
				}
				assigned[l.Symbol] = !l.Negated
				changed = true
			default:
				next = append(next, reduced)
			}
		}
		pending = next
		if !changed {
			break
		}
	}

	out := make([]Clause, 0, len(assigned)+len(pending))
	for sym, v := range assigned {
		if v {
			out = append(out, Clause{Pos(sym)})
		} else {
			out = append(out, Clause{Neg(sym)})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return compareClauses(pending[i], pending[j]) })
	for _, c := range pending {
		subsumed := false
		for _, kept := range out {
			if len(kept) > 1 && kept.subsumes(c) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return compareClauses(out[i], out[j]) })
	f.clauses = out
	return nil
}

// reduce drops literals falsified by the assignment. satisfied is true when
// some literal is already true.
func reduce(c Clause, assigned map[string]bool) (Clause, bool) {
	out := make(Clause, 0, len(c))
	for _, l := range c {
		v, ok := assigned[l.Symbol]
		if !ok {
			out = append(out, l)
			continue
		}
		if v != l.Negated {
			return nil, true
		}
	}
	return out, false
}

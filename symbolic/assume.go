package symbolic

import (
	"math/big"

	"github.com/pkg/errors"
)

// Expand distributes products over sums and expands positive integral
// powers of sums, returning the additive normal form of e.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		expanded := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			expanded[i] = Expand(t)
		}
		return AddOf(expanded...)
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = Expand(f)
		}
		return distribute(expanded)
	case *Pow:
		base := Expand(v.base)
		if sum, ok := base.(*Add); ok && v.exp.IsInt() && v.exp.Sign() > 0 && v.exp.Num().IsInt64() {
			n := v.exp.Num().Int64()
			factors := make([]Expr, n)
			for i := range factors {
				factors[i] = sum
			}
			return distribute(factors)
		}
		return PowOf(base, v.exp)
	case *Abs:
		return AbsOf(Expand(v.arg))
	}
	return e
}

// distribute multiplies out a list of factors, splitting sums.
func distribute(factors []Expr) Expr {
	acc := []Expr{N(1)}
	for _, f := range factors {
		var parts []Expr
		if sum, ok := f.(*Add); ok {
			parts = sum.terms
		} else {
			parts = []Expr{f}
		}
		next := make([]Expr, 0, len(acc)*len(parts))
		for _, a := range acc {
			for _, p := range parts {
				next = append(next, MulOf(a, p))
			}
		}
		acc = next
	}
	return AddOf(acc...)
}

// AddParts returns the additive parts of e: the terms of a sum, or e
// itself as the only part.
func AddParts(e Expr) []Expr {
	if sum, ok := e.(*Add); ok {
		parts := make([]Expr, len(sum.terms))
		copy(parts, sum.terms)
		return parts
	}
	return []Expr{e}
}

// SimplifyAssumingPositive simplifies e under the assumption that the
// named symbol is strictly positive: absolute values around provably
// positive subexpressions are dropped.
func SimplifyAssumingPositive(e Expr, positive string) Expr {
	switch v := e.(type) {
	case *Add:
		simplified := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			simplified[i] = SimplifyAssumingPositive(t, positive)
		}
		return AddOf(simplified...)
	case *Mul:
		simplified := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			simplified[i] = SimplifyAssumingPositive(f, positive)
		}
		return MulOf(simplified...)
	case *Pow:
		return PowOf(SimplifyAssumingPositive(v.base, positive), v.exp)
	case *Abs:
		arg := SimplifyAssumingPositive(v.arg, positive)
		if provablyPositive(arg, positive) {
			return arg
		}
		return AbsOf(arg)
	}
	return e
}

// provablyPositive reports whether e is positive whenever the named
// symbol is.
func provablyPositive(e Expr, positive string) bool {
	switch v := e.(type) {
	case *Num:
		return v.val.Sign() > 0
	case *Sym:
		return v.name == positive
	case *Abs:
		return true
	case *Pow:
		return provablyPositive(v.base, positive)
	case *Mul:
		for _, f := range v.factors {
			if !provablyPositive(f, positive) {
				return false
			}
		}
		return true
	case *Add:
		for _, t := range v.terms {
			if !provablyPositive(t, positive) {
				return false
			}
		}
		return true
	}
	return false
}

// SubstituteAll replaces every free variable that has an entry in
// values, all in one pass. Unlike chained Substitute calls the
// replacements are simultaneous: variables mentioned by a substituted
// value are never substituted again.
func SubstituteAll(e Expr, values map[string]Expr) Expr {
	switch v := e.(type) {
	case *Sym:
		if value, ok := values[v.name]; ok {
			return value
		}
		return v
	case *Add:
		subbed := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			subbed[i] = SubstituteAll(t, values)
		}
		return AddOf(subbed...)
	case *Mul:
		subbed := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			subbed[i] = SubstituteAll(f, values)
		}
		return MulOf(subbed...)
	case *Pow:
		return PowOf(SubstituteAll(v.base, values), v.exp)
	case *Abs:
		return AbsOf(SubstituteAll(v.arg, values))
	}
	return e
}

// EvalRat evaluates e after substituting the given rational values for
// its variables. It fails when free variables remain or the result is
// irrational (a non-integral power).
func EvalRat(e Expr, assignment map[string]*big.Rat) (*big.Rat, error) {
	for name, value := range assignment {
		e = e.Substitute(name, FromRat(value))
	}
	v, ok := e.Eval()
	if !ok {
		return nil, errors.Errorf("cannot evaluate %s to a rational number", e)
	}
	return v, nil
}

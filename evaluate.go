package asymp

import (
	"math/big"

	"github.com/asymplib/asymp/symbolic"
	"github.com/pkg/errors"
)

// Evaluate substitutes values for the free variables of a symbolic
// expression without forcing the result into any particular ring: when
// a value is an expansion the whole computation is promoted into that
// expansion's ring and an *Expansion is returned, otherwise the
// substituted symbolic.Expr is. Values may be expansions, symbolic
// expressions, or rationals; variables without a value stay symbolic.
func Evaluate(expr symbolic.Expr, values map[string]any) (any, error) {
	if expr == nil {
		return nil, configErrorf("cannot evaluate a nil expression")
	}
	var ring *Ring
	for name, value := range values {
		e, ok := value.(*Expansion)
		if !ok {
			continue
		}
		if ring != nil && ring != e.ring {
			return nil, configErrorf("value for %q belongs to a different ring than earlier values", name)
		}
		ring = e.ring
	}
	if ring != nil {
		return ring.Evaluate(expr, values)
	}
	// Substitution is simultaneous: a substituted value that mentions
	// another substituted variable keeps it.
	subs := make(map[string]symbolic.Expr, len(values))
	for name, value := range values {
		sub, err := asExpr(value)
		if err != nil {
			return nil, errors.Wrapf(err, "value for %q", name)
		}
		subs[name] = sub
	}
	return symbolic.SubstituteAll(expr, subs), nil
}

func asExpr(value any) (symbolic.Expr, error) {
	switch v := value.(type) {
	case symbolic.Expr:
		return v, nil
	case *big.Rat:
		return symbolic.FromRat(v), nil
	case int:
		return symbolic.N(int64(v)), nil
	case int64:
		return symbolic.N(v), nil
	default:
		return nil, configErrorf("unsupported substitution value of type %T", value)
	}
}

// Evaluate substitutes values for the free variables of a symbolic
// expression and folds the result into an expansion of the ring.
// Variables without a value end up in coefficients.
func (r *Ring) Evaluate(expr symbolic.Expr, values map[string]any) (*Expansion, error) {
	if expr == nil {
		return nil, configErrorf("cannot evaluate a nil expression")
	}
	expansions := make(map[string]*Expansion, len(values))
	for name, value := range values {
		e, err := r.fromValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "value for %q", name)
		}
		expansions[name] = e
	}
	return r.evaluate(expr, expansions)
}

func (r *Ring) evaluate(expr symbolic.Expr, values map[string]*Expansion) (*Expansion, error) {
	switch e := expr.(type) {
	case *symbolic.Num:
		return r.Const(e.Rat()), nil
	case *symbolic.Sym:
		if bound, ok := values[e.Name()]; ok {
			return bound, nil
		}
		return r.ConstExpr(e), nil
	case *symbolic.Add:
		sum := r.Zero()
		for _, part := range e.Terms() {
			p, err := r.evaluate(part, values)
			if err != nil {
				return nil, err
			}
			sum = sum.Add(p)
		}
		return sum, nil
	case *symbolic.Mul:
		product := r.One()
		for _, factor := range e.Factors() {
			f, err := r.evaluate(factor, values)
			if err != nil {
				return nil, err
			}
			product, err = product.Mul(f)
			if err != nil {
				return nil, err
			}
		}
		return product, nil
	case *symbolic.Pow:
		base, err := r.evaluate(e.Base(), values)
		if err != nil {
			return nil, err
		}
		return base.PowRat(e.Exponent())
	case *symbolic.Abs:
		// Only absolute values that stay symbolic after substitution
		// make sense here; an expansion has no pointwise sign.
		if mentionsAny(e.Arg(), values) {
			return nil, errors.Errorf("cannot evaluate %s: abs of an expansion is undefined", expr)
		}
		return r.ConstExpr(e), nil
	default:
		return nil, errors.Errorf("cannot evaluate expression %s", expr)
	}
}

func mentionsAny(expr symbolic.Expr, values map[string]*Expansion) bool {
	for _, name := range expr.Variables().Slice() {
		if _, ok := values[name]; ok {
			return true
		}
	}
	return false
}

// fromValue promotes a substitution value to an expansion of the ring.
func (r *Ring) fromValue(value any) (*Expansion, error) {
	switch v := value.(type) {
	case *Expansion:
		if v.ring != r {
			return nil, configErrorf("expansion belongs to a different ring")
		}
		return v, nil
	case symbolic.Expr:
		return r.evaluate(v, nil)
	case *big.Rat:
		return r.Const(v), nil
	case int:
		return r.Const(new(big.Rat).SetInt64(int64(v))), nil
	case int64:
		return r.Const(new(big.Rat).SetInt64(v)), nil
	default:
		return nil, configErrorf("unsupported substitution value of type %T", value)
	}
}

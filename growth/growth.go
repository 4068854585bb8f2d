// Package growth implements elements of monomial growth groups: formal
// products of variables raised to rational powers, such as n^(3/2) or
// k^2*m^(-1). Elements of the same group are compared componentwise,
// which yields a partial order once several variables are involved.
package growth

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Growth is a growth-group element. The zero value is the neutral
// element (constant growth 1). Growth values are immutable.
type Growth struct {
	factors []factor // sorted by variable name, exponents never zero
}

type factor struct {
	variable string
	exponent *big.Rat
}

// One returns the neutral growth element.
func One() Growth { return Growth{} }

// Monomial returns the growth variable^exp.
func Monomial(variable string, exp *big.Rat) Growth {
	if exp == nil || exp.Sign() == 0 {
		return Growth{}
	}
	return Growth{factors: []factor{{variable: variable, exponent: new(big.Rat).Set(exp)}}}
}

// MonomialInt returns the growth variable^exp for an integer exponent.
func MonomialInt(variable string, exp int64) Growth {
	return Monomial(variable, new(big.Rat).SetInt64(exp))
}

// IsOne reports whether g is the neutral element.
func (g Growth) IsOne() bool { return len(g.factors) == 0 }

// Variables returns the variable names of g in sorted order.
func (g Growth) Variables() []string {
	names := make([]string, len(g.factors))
	for i, f := range g.factors {
		names[i] = f.variable
	}
	return names
}

// Exponent returns the exponent of the named variable (zero when the
// variable does not occur).
func (g Growth) Exponent(variable string) *big.Rat {
	for _, f := range g.factors {
		if f.variable == variable {
			return new(big.Rat).Set(f.exponent)
		}
	}
	return new(big.Rat)
}

// Mul returns the product of g and other.
func (g Growth) Mul(other Growth) Growth {
	merged := make([]factor, 0, len(g.factors)+len(other.factors))
	i, j := 0, 0
	for i < len(g.factors) && j < len(other.factors) {
		a, b := g.factors[i], other.factors[j]
		switch {
		case a.variable < b.variable:
			merged = append(merged, factor{a.variable, new(big.Rat).Set(a.exponent)})
			i++
		case a.variable > b.variable:
			merged = append(merged, factor{b.variable, new(big.Rat).Set(b.exponent)})
			j++
		default:
			sum := new(big.Rat).Add(a.exponent, b.exponent)
			if sum.Sign() != 0 {
				merged = append(merged, factor{a.variable, sum})
			}
			i++
			j++
		}
	}
	for ; i < len(g.factors); i++ {
		a := g.factors[i]
		merged = append(merged, factor{a.variable, new(big.Rat).Set(a.exponent)})
	}
	for ; j < len(other.factors); j++ {
		b := other.factors[j]
		merged = append(merged, factor{b.variable, new(big.Rat).Set(b.exponent)})
	}
	return Growth{factors: merged}
}

// Inv returns the reciprocal growth.
func (g Growth) Inv() Growth {
	return g.PowRat(new(big.Rat).SetInt64(-1))
}

// PowRat returns g raised to the rational power exp.
func (g Growth) PowRat(exp *big.Rat) Growth {
	if exp.Sign() == 0 {
		return Growth{}
	}
	powered := make([]factor, len(g.factors))
	for i, f := range g.factors {
		powered[i] = factor{f.variable, new(big.Rat).Mul(f.exponent, exp)}
	}
	return Growth{factors: powered}
}

// Equal reports whether g and other are the same element.
func (g Growth) Equal(other Growth) bool {
	if len(g.factors) != len(other.factors) {
		return false
	}
	for i := range g.factors {
		if g.factors[i].variable != other.factors[i].variable ||
			g.factors[i].exponent.Cmp(other.factors[i].exponent) != 0 {
			return false
		}
	}
	return true
}

// Cmp compares g and other in the growth partial order: componentwise
// over the union of their variables. The second result is false when
// the elements are incomparable (exponent differences point in
// conflicting directions).
func (g Growth) Cmp(other Growth) (int, bool) {
	sign := 0
	i, j := 0, 0
	observe := func(s int) bool {
		if s == 0 {
			return true
		}
		if sign == 0 {
			sign = s
			return true
		}
		return sign == s
	}
	for i < len(g.factors) || j < len(other.factors) {
		var diff int
		switch {
		case j >= len(other.factors) || (i < len(g.factors) && g.factors[i].variable < other.factors[j].variable):
			diff = g.factors[i].exponent.Sign()
			i++
		case i >= len(g.factors) || g.factors[i].variable > other.factors[j].variable:
			diff = -other.factors[j].exponent.Sign()
			j++
		default:
			diff = g.factors[i].exponent.Cmp(other.factors[j].exponent)
			i++
			j++
		}
		if !observe(diff) {
			return 0, false
		}
	}
	return sign, true
}

// CmpTotal is a deterministic total order on growth elements, used only
// for stable storage. It refines Cmp wherever Cmp is defined on
// elements over a single common variable and falls back to a
// lexicographic comparison otherwise.
func (g Growth) CmpTotal(other Growth) int {
	if c, ok := g.Cmp(other); ok {
		return c
	}
	i, j := 0, 0
	for i < len(g.factors) && j < len(other.factors) {
		a, b := g.factors[i], other.factors[j]
		if a.variable != b.variable {
			if a.variable < b.variable {
				return 1
			}
			return -1
		}
		if c := a.exponent.Cmp(b.exponent); c != 0 {
			return c
		}
		i++
		j++
	}
	return len(g.factors) - len(other.factors)
}

// EvalRat evaluates g at the given variable assignment. It fails on
// missing variables and on non-integral exponents, whose exact value
// would be irrational.
func (g Growth) EvalRat(assignment map[string]*big.Rat) (*big.Rat, error) {
	acc := new(big.Rat).SetInt64(1)
	for _, f := range g.factors {
		value, ok := assignment[f.variable]
		if !ok {
			return nil, errors.Errorf("no value for variable %s", f.variable)
		}
		if !f.exponent.IsInt() || !f.exponent.Num().IsInt64() {
			return nil, errors.Errorf("cannot evaluate %s exactly: non-integral exponent", g)
		}
		n := f.exponent.Num().Int64()
		neg := n < 0
		if neg {
			if value.Sign() == 0 {
				return nil, errors.Errorf("cannot evaluate %s at %s = 0", g, f.variable)
			}
			n = -n
		}
		p := new(big.Rat).SetInt64(1)
		for k := int64(0); k < n; k++ {
			p.Mul(p, value)
		}
		if neg {
			p.Inv(p)
		}
		acc.Mul(acc, p)
	}
	return acc, nil
}

func (g Growth) String() string {
	if len(g.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(g.factors))
	for i, f := range g.factors {
		if f.exponent.Cmp(ratOne) == 0 {
			parts[i] = f.variable
		} else if f.exponent.IsInt() && f.exponent.Sign() > 0 {
			parts[i] = f.variable + "^" + f.exponent.Num().String()
		} else {
			parts[i] = f.variable + "^(" + f.exponent.RatString() + ")"
		}
	}
	return strings.Join(parts, "*")
}

var ratOne = new(big.Rat).SetInt64(1)

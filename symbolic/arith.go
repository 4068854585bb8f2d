package symbolic

import (
	"math/big"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// ----------------------------------------------
// Add: n-ary sum

type Add struct{ terms []Expr }

// AddOf returns the canonical sum of the given terms: nested sums are
// flattened, like terms are collected, numeric constants are folded and
// placed last.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	numAccum := new(big.Rat)
	type collected struct {
		part  Expr
		coeff *big.Rat
	}
	byKey := map[string]*collected{}
	var order []string
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum.Add(numAccum, v.val)
			continue
		}
		coeff, part := splitCoefficient(t)
		key := part.String()
		c, seen := byKey[key]
		if !seen {
			c = &collected{part: part, coeff: new(big.Rat)}
			byKey[key] = c
			order = append(order, key)
		}
		c.coeff.Add(c.coeff, coeff)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := byKey[key]
		if c.coeff.Sign() == 0 {
			continue
		}
		if c.coeff.Cmp(ratOne) == 0 {
			result = append(result, c.part)
		} else {
			result = append(result, MulOf(FromRat(c.coeff), c.part))
		}
	}
	if numAccum.Sign() != 0 {
		result = append(result, FromRat(numAccum))
	}

	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoefficient separates the numeric coefficient of a product from
// its remaining factors: 3*k^2 becomes (3, k^2), k becomes (1, k).
func splitCoefficient(e Expr) (*big.Rat, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return new(big.Rat).Set(ratOne), e
	}
	if v, ok := m.factors[0].(*Num); ok {
		rest := m.factors[1:]
		if len(rest) == 1 {
			return v.Rat(), rest[0]
		}
		return v.Rat(), &Mul{factors: rest}
	}
	return new(big.Rat).Set(ratOne), e
}

func (a *Add) isExpr() {}

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Variables() *set.Set[string] { return unionVariables(a.terms) }

func (a *Add) Substitute(name string, value Expr) Expr {
	subbed := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		subbed[i] = t.Substitute(name, value)
	}
	return AddOf(subbed...)
}

func (a *Add) Eval() (*big.Rat, bool) {
	acc := new(big.Rat)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc.Add(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

// ----------------------------------------------
// Mul: n-ary product

type Mul struct{ factors []Expr }

// MulOf returns the canonical product of the given factors: nested
// products are flattened, numeric constants are folded into a leading
// coefficient and equal bases are collected into powers. Products are
// not distributed over sums; see Expand.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := new(big.Rat).Set(ratOne)
	type power struct {
		base Expr
		exp  *big.Rat
	}
	byBase := map[string]*power{}
	var order []string
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff.Mul(coeff, v.val)
			continue
		}
		base, exp := f, new(big.Rat).Set(ratOne)
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, new(big.Rat).Set(p.exp)
		}
		key := base.String()
		pw, seen := byBase[key]
		if !seen {
			pw = &power{base: base, exp: new(big.Rat)}
			byBase[key] = pw
			order = append(order, key)
		}
		pw.exp.Add(pw.exp, exp)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	var others []Expr
	for _, key := range order {
		pw := byBase[key]
		if pw.exp.Sign() == 0 {
			continue
		}
		f := PowOf(pw.base, pw.exp)
		if v, ok := f.(*Num); ok {
			coeff.Mul(coeff, v.val)
			continue
		}
		others = append(others, f)
	}

	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })

	if len(others) == 0 {
		return FromRat(coeff)
	}
	if coeff.Cmp(ratOne) == 0 {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{FromRat(coeff)}, others...)}
}

func (m *Mul) isExpr() {}

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Variables() *set.Set[string] { return unionVariables(m.factors) }

func (m *Mul) Substitute(name string, value Expr) Expr {
	subbed := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		subbed[i] = f.Substitute(name, value)
	}
	return MulOf(subbed...)
}

func (m *Mul) Eval() (*big.Rat, bool) {
	acc := new(big.Rat).Set(ratOne)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc.Mul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

// ----------------------------------------------
// Pow: rational power

type Pow struct {
	base Expr
	exp  *big.Rat
}

// PowOf returns the canonical rational power base^exp. Numeric bases
// with integral exponents are folded, nested powers are combined and
// products are distributed factor-wise (the kernel's expressions are
// treated as positive real quantities, see SimplifyAssumingPositive).
func PowOf(base Expr, exp *big.Rat) Expr {
	if exp.Sign() == 0 {
		return N(1)
	}
	if exp.Cmp(ratOne) == 0 {
		return base
	}
	switch b := base.(type) {
	case *Num:
		if b.IsOne() {
			return N(1)
		}
		if v, ok := ratPow(b.val, exp); ok {
			return FromRat(v)
		}
	case *Pow:
		return PowOf(b.base, new(big.Rat).Mul(b.exp, exp))
	case *Mul:
		powered := make([]Expr, len(b.factors))
		for i, f := range b.factors {
			powered[i] = PowOf(f, exp)
		}
		return MulOf(powered...)
	}
	return &Pow{base: base, exp: new(big.Rat).Set(exp)}
}

// ratPow computes r^exp exactly for integral exponents that fit an int64.
func ratPow(r *big.Rat, exp *big.Rat) (*big.Rat, bool) {
	if !exp.IsInt() || !exp.Num().IsInt64() {
		return nil, false
	}
	n := exp.Num().Int64()
	neg := n < 0
	if neg {
		if r.Sign() == 0 {
			return nil, false
		}
		n = -n
	}
	acc := new(big.Rat).Set(ratOne)
	for i := int64(0); i < n; i++ {
		acc.Mul(acc, r)
	}
	if neg {
		acc.Inv(acc)
	}
	return acc, true
}

func (p *Pow) isExpr() {}

func (p *Pow) Base() Expr         { return p.base }
func (p *Pow) Exponent() *big.Rat { return new(big.Rat).Set(p.exp) }

func (p *Pow) Variables() *set.Set[string] { return p.base.Variables() }

func (p *Pow) Substitute(name string, value Expr) Expr {
	return PowOf(p.base.Substitute(name, value), p.exp)
}

func (p *Pow) Eval() (*big.Rat, bool) {
	v, ok := p.base.Eval()
	if !ok {
		return nil, false
	}
	return ratPow(v, p.exp)
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.exp.Cmp(o.exp) == 0 && p.base.Equal(o.base)
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	}
	return baseStr + "^" + formatExponent(p.exp)
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.RatString() + "}"
}

// formatExponent renders an exponent bare when it is a nonnegative
// integer and parenthesised otherwise: ^2, ^(-1), ^(1/2).
func formatExponent(exp *big.Rat) string {
	if exp.IsInt() && exp.Sign() >= 0 {
		return exp.Num().String()
	}
	return "(" + exp.RatString() + ")"
}

// ----------------------------------------------
// Abs: absolute value

type Abs struct{ arg Expr }

// AbsOf returns the canonical absolute value of x: numeric arguments
// fold, products distribute and even powers drop the enclosing bars.
func AbsOf(x Expr) Expr {
	switch a := x.(type) {
	case *Num:
		r := a.Rat()
		if r.Sign() < 0 {
			r.Neg(r)
		}
		return FromRat(r)
	case *Abs:
		return a
	case *Mul:
		absed := make([]Expr, len(a.factors))
		for i, f := range a.factors {
			absed[i] = AbsOf(f)
		}
		return MulOf(absed...)
	case *Pow:
		if a.exp.IsInt() && a.exp.Num().Bit(0) == 0 {
			return a
		}
		return PowOf(AbsOf(a.base), a.exp)
	}
	return &Abs{arg: x}
}

func (a *Abs) isExpr() {}

func (a *Abs) Arg() Expr { return a.arg }

func (a *Abs) Variables() *set.Set[string] { return a.arg.Variables() }

func (a *Abs) Substitute(name string, value Expr) Expr {
	return AbsOf(a.arg.Substitute(name, value))
}

func (a *Abs) Eval() (*big.Rat, bool) {
	v, ok := a.arg.Eval()
	if !ok {
		return nil, false
	}
	if v.Sign() < 0 {
		v.Neg(v)
	}
	return v, true
}

func (a *Abs) Equal(other Expr) bool {
	o, ok := other.(*Abs)
	return ok && a.arg.Equal(o.arg)
}

func (a *Abs) String() string { return "abs(" + a.arg.String() + ")" }
func (a *Abs) LaTeX() string  { return "\\left|" + a.arg.LaTeX() + "\\right|" }

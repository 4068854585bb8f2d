package asymp

import (
	"math/big"

	"github.com/asymplib/asymp/growth"
	"github.com/asymplib/asymp/symbolic"
	"github.com/pkg/errors"
)

// Add returns the sum of e and other.
func (e *Expansion) Add(other *Expansion) *Expansion {
	out := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		out.insert(t.clone())
	}
	for _, t := range other.summands.Ascending() {
		out.insert(t.clone())
	}
	return out
}

// Sub returns e - other.
func (e *Expansion) Sub(other *Expansion) *Expansion {
	return e.Add(other.Neg())
}

// Neg returns -e. O-terms and B-terms are symmetric bounds and pass
// through unchanged.
func (e *Expansion) Neg() *Expansion {
	out := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		t = t.clone()
		if t.Kind == KindExact {
			t.Coefficient = symbolic.MulOf(symbolic.N(-1), t.Coefficient)
		}
		out.insert(t)
	}
	return out
}

// Mul returns the product of e and other, multiplying summands
// pairwise and re-absorbing eagerly.
func (e *Expansion) Mul(other *Expansion) (*Expansion, error) {
	out := e.ring.newExpansion()
	for _, a := range e.summands.Ascending() {
		for _, b := range other.summands.Ascending() {
			t, err := e.ring.mulTerms(a, b)
			if err != nil {
				return nil, err
			}
			out.insert(t)
		}
	}
	return out, nil
}

// mulTerms multiplies two summands. Any O factor makes the product an
// O-term (through the coefficient-folding constructor); otherwise any B
// factor makes it a B-term with merged validity floors.
func (r *Ring) mulTerms(a, b Term) (Term, error) {
	g := a.Growth.Mul(b.Growth)
	switch {
	case a.Kind == KindO || b.Kind == KindO:
		var coefficient symbolic.Expr
		switch {
		case a.Coefficient == nil:
			coefficient = b.Coefficient
		case b.Coefficient == nil:
			coefficient = a.Coefficient
		default:
			coefficient = symbolic.MulOf(a.Coefficient, b.Coefficient)
		}
		return r.newOTerm(g, coefficient)
	case a.Kind == KindB || b.Kind == KindB:
		return Term{
			Kind:        KindB,
			Growth:      g,
			Coefficient: symbolic.AbsOf(symbolic.MulOf(a.Coefficient, b.Coefficient)),
			ValidFrom:   mergeFloors(a.ValidFrom, b.ValidFrom),
		}, nil
	default:
		return Term{
			Kind:        KindExact,
			Growth:      g,
			Coefficient: symbolic.MulOf(a.Coefficient, b.Coefficient),
		}, nil
	}
}

// MulExpr scales every summand by a symbolic coefficient. Scaling an
// O-term routes through the O constructor so that a coefficient
// depending on the bounded variable folds its worst-case growth in.
func (e *Expansion) MulExpr(coefficient symbolic.Expr) (*Expansion, error) {
	out := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		t = t.clone()
		switch t.Kind {
		case KindExact:
			t.Coefficient = symbolic.MulOf(coefficient, t.Coefficient)
			if num, ok := t.Coefficient.(*symbolic.Num); ok && num.IsZero() {
				continue
			}
		case KindB:
			t.Coefficient = symbolic.AbsOf(symbolic.MulOf(coefficient, t.Coefficient))
		case KindO:
			scaled, err := e.ring.newOTerm(t.Growth, coefficient)
			if err != nil {
				return nil, err
			}
			t = scaled
		}
		out.insert(t)
	}
	return out, nil
}

// Pow returns e raised to a nonnegative integer power.
func (e *Expansion) Pow(n int) (*Expansion, error) {
	if n < 0 {
		return e.PowRat(new(big.Rat).SetInt64(int64(n)))
	}
	out := e.ring.One()
	var err error
	for i := 0; i < n; i++ {
		out, err = out.Mul(e)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// PowRat returns e raised to a rational power. Integral powers work on
// any expansion (negative ones through Invert); fractional powers
// require a single exact summand.
func (e *Expansion) PowRat(exp *big.Rat) (*Expansion, error) {
	if exp.IsInt() && exp.Num().IsInt64() {
		n := exp.Num().Int64()
		if n >= 0 {
			return e.Pow(int(n))
		}
		inv, err := e.Invert()
		if err != nil {
			return nil, err
		}
		return inv.Pow(int(-n))
	}
	terms := e.summands.Ascending()
	if len(terms) != 1 || terms[0].Kind != KindExact {
		return nil, errors.Errorf("cannot raise %s to the fractional power %s", e, exp.RatString())
	}
	t := terms[0]
	out := e.ring.newExpansion()
	out.insert(Term{
		Kind:        KindExact,
		Growth:      t.Growth.PowRat(exp),
		Coefficient: symbolic.PowOf(t.Coefficient, exp),
	})
	return out, nil
}

// Invert returns 1/e as a geometric series up to the ring's default
// precision, with a trailing O-term absorbing the truncation error. The
// summand of maximal key must be an exact term.
func (e *Expansion) Invert() (*Expansion, error) {
	terms := e.summands.Descending()
	if len(terms) == 0 {
		return nil, errors.New("division by zero expansion")
	}
	lead := terms[0]
	if lead.Kind != KindExact {
		return nil, errors.Errorf("cannot invert %s: leading summand %s is not exact", e, lead)
	}

	leadInv := e.ring.newExpansion()
	leadInv.insert(Term{
		Kind:        KindExact,
		Growth:      lead.Growth.Inv(),
		Coefficient: symbolic.PowOf(lead.Coefficient, big.NewRat(-1, 1)),
	})
	if len(terms) == 1 {
		return leadInv, nil
	}

	leadOnly := e.ring.newExpansion()
	leadOnly.insert(lead.clone())

	// e = lead * (1 + x); 1/e = lead^(-1) * sum_i (-x)^i
	x, err := e.Sub(leadOnly).Mul(leadInv)
	if err != nil {
		return nil, err
	}
	series, err := geometricSeries(x, e.ring.defaultPrec)
	if err != nil {
		return nil, err
	}
	return series.Mul(leadInv)
}

func geometricSeries(x *Expansion, prec int) (*Expansion, error) {
	minusX := x.Neg()
	series := x.ring.One()
	power := x.ring.One()
	var err error
	for i := 1; i < prec; i++ {
		power, err = power.Mul(minusX)
		if err != nil {
			return nil, err
		}
		series = series.Add(power)
	}
	tailPower, err := x.Pow(prec)
	if err != nil {
		return nil, err
	}
	tail, err := tailPower.O()
	if err != nil {
		return nil, err
	}
	return series.Add(tail), nil
}

// Div returns e/other.
func (e *Expansion) Div(other *Expansion) (*Expansion, error) {
	inv, err := other.Invert()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv)
}

// Exp returns exp(e) as a Taylor series up to the ring's default
// precision. Every summand of e must vanish asymptotically (effective
// growth below constant), otherwise no finite expansion exists here.
func (e *Expansion) Exp() (*Expansion, error) {
	one := growth.One()
	for _, t := range e.summands.Ascending() {
		key := e.ring.termKey(t)
		if key.effective.CmpTotal(one) >= 0 {
			return nil, errors.Errorf("cannot exponentiate %s: summand %s does not vanish", e, t)
		}
	}
	series := e.ring.One()
	power := e.ring.One()
	factorial := new(big.Rat).SetInt64(1)
	var err error
	for i := 1; i < e.ring.defaultPrec; i++ {
		power, err = power.Mul(e)
		if err != nil {
			return nil, err
		}
		factorial.Mul(factorial, new(big.Rat).SetInt64(int64(i)))
		scaled, err := power.MulExpr(symbolic.FromRat(new(big.Rat).Inv(factorial)))
		if err != nil {
			return nil, err
		}
		series = series.Add(scaled)
	}
	tailPower, err := e.Pow(e.ring.defaultPrec)
	if err != nil {
		return nil, err
	}
	tail, err := tailPower.O()
	if err != nil {
		return nil, err
	}
	return series.Add(tail), nil
}

// O returns the qualitative bound of e: every summand becomes an
// O-term and eager absorption keeps only the dominant one(s).
func (e *Expansion) O() (*Expansion, error) {
	if e.summands.Len() == 0 {
		return nil, errors.New("cannot build an O-term around zero")
	}
	out := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		ot, err := e.ring.newOTerm(t.Growth, t.Coefficient)
		if err != nil {
			return nil, err
		}
		out.insert(ot)
	}
	return out, nil
}

// B returns the quantitative bound of e: every exact summand becomes a
// B-term with absolute coefficient, certified from validFrom onward in
// every growth variable. O summands cannot be bounded this way.
func (e *Expansion) B(validFrom int64) (*Expansion, error) {
	out := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		switch t.Kind {
		case KindExact:
			floors := make(map[string]int64, len(e.ring.variables))
			for _, v := range e.ring.variables {
				floors[v] = validFrom
			}
			out.insert(Term{
				Kind:        KindB,
				Growth:      t.Growth,
				Coefficient: symbolic.AbsOf(t.Coefficient),
				ValidFrom:   floors,
			})
		case KindB:
			out.insert(t.clone())
		case KindO:
			return nil, UnboundableError{Summand: t.String()}
		}
	}
	return out, nil
}

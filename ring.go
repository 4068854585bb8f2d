package asymp

import (
	"math/big"
	"slices"

	"github.com/asymplib/asymp/growth"
	"github.com/asymplib/asymp/internal/log"
	"github.com/asymplib/asymp/poset"
	"github.com/asymplib/asymp/symbolic"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "ring")

// DefaultPrecision is the number of exact summands produced by series
// operations (Invert, Exp) before the trailing error term.
const DefaultPrecision = 20

// Ring is an asymptotic ring over a monomial growth group, optionally
// extended with a dependent variable and its bound registry. Rings are
// immutable after construction.
type Ring struct {
	variables   []string
	defaultPrec int
	monoids     *TermMonoids
}

// RingOption configures a ring at construction.
type RingOption func(*Ring)

// WithDefaultPrec sets the precision of series operations.
func WithDefaultPrec(prec int) RingOption {
	return func(r *Ring) { r.defaultPrec = prec }
}

// NewRing builds an asymptotic ring from a growth-group specification
// such as "n^QQ" or "k^QQ * m^QQ".
func NewRing(growthSpec string, opts ...RingOption) (*Ring, error) {
	variables, err := growth.ParseGroup(growthSpec)
	if err != nil {
		return nil, configErrorf("invalid growth group %q: %v", growthSpec, err)
	}
	r := &Ring{variables: variables, defaultPrec: DefaultPrecision}
	for _, opt := range opts {
		opt(r)
	}
	if r.defaultPrec < 1 {
		return nil, configErrorf("default precision must be positive, got %d", r.defaultPrec)
	}
	return r, nil
}

// NewRingWithDependentVariable builds a ring over the given growth
// group extended with a dependent symbol constrained to
// primary^lowerPower <= symbol <= primary^upperPower. It returns the
// ring, the primary variable as an expansion, and the dependent symbol.
func NewRingWithDependentVariable(
	growthSpec string,
	dependent string,
	lowerPower, upperPower *big.Rat,
	opts ...RingOption,
) (*Ring, *Expansion, symbolic.Expr, error) {
	r, err := NewRing(growthSpec, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	if lowerPower == nil || upperPower == nil {
		return nil, nil, nil, configErrorf("the lower and upper bounds for the dependent variable must be set")
	}
	if slices.Contains(r.variables, dependent) {
		return nil, nil, nil, configErrorf("dependent variable %q collides with a growth variable", dependent)
	}
	primary := r.variables[0]
	sym := symbolic.S(dependent)
	monoids, err := NewTermMonoids(VariableBounds{
		Variable: sym,
		Lower:    r.Monomial(primary, lowerPower),
		Upper:    r.Monomial(primary, upperPower),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	r.monoids = monoids
	logger.Debug("built ring with dependent variable",
		"growth", growthSpec, "dependent", dependent,
		"lower", lowerPower.RatString(), "upper", upperPower.RatString())
	return r, r.Monomial(primary, big.NewRat(1, 1)), sym, nil
}

// Variables returns the growth-group variable names.
func (r *Ring) Variables() []string { return slices.Clone(r.variables) }

// DefaultPrec returns the ring's series precision.
func (r *Ring) DefaultPrec() int { return r.defaultPrec }

// Monoids returns the ring's term monoids, or nil when the ring has no
// dependent variable.
func (r *Ring) Monoids() *TermMonoids { return r.monoids }

// newExpansion returns an empty expansion whose summand poset is keyed
// by the ring's coefficient-aware growth key and merged by the
// absorption rules.
func (r *Ring) newExpansion() *Expansion {
	return &Expansion{
		ring:     r,
		summands: poset.New(r.termKey, termKeyComparer{}, r.canAbsorb, r.absorb),
	}
}

// Zero returns the empty expansion.
func (r *Ring) Zero() *Expansion { return r.newExpansion() }

// One returns the expansion of the constant 1.
func (r *Ring) One() *Expansion { return r.Const(big.NewRat(1, 1)) }

// Const returns the expansion of a rational constant.
func (r *Ring) Const(value *big.Rat) *Expansion {
	return r.ConstExpr(symbolic.FromRat(value))
}

// ConstExpr returns the expansion of a constant symbolic coefficient.
func (r *Ring) ConstExpr(coefficient symbolic.Expr) *Expansion {
	e := r.newExpansion()
	if num, ok := coefficient.(*symbolic.Num); ok && num.IsZero() {
		return e
	}
	e.insert(Term{Kind: KindExact, Growth: growth.One(), Coefficient: coefficient})
	return e
}

// Monomial returns the expansion of variable^exp with coefficient 1.
func (r *Ring) Monomial(variable string, exp *big.Rat) *Expansion {
	e := r.newExpansion()
	e.insert(Term{
		Kind:        KindExact,
		Growth:      growth.Monomial(variable, exp),
		Coefficient: symbolic.N(1),
	})
	return e
}

// CreateSummand returns a single-summand expansion holding t, after
// structural validation of the variant's required attributes.
func (r *Ring) CreateSummand(t Term) (*Expansion, error) {
	switch t.Kind {
	case KindExact, KindB:
		if t.Coefficient == nil {
			return nil, configErrorf("%s term requires a coefficient", t.Kind)
		}
	case KindO:
		if t.ValidFrom != nil {
			return nil, configErrorf("O terms carry no validity region")
		}
	default:
		return nil, configErrorf("invalid term kind %d", t.Kind)
	}
	if t.Kind == KindB {
		// A B-term bounds the magnitude of whatever it stands for, so
		// only the magnitude of the coefficient is kept.
		t.Coefficient = symbolic.AbsOf(t.Coefficient)
		if t.ValidFrom == nil {
			t.ValidFrom = map[string]int64{}
			for _, v := range r.variables {
				t.ValidFrom[v] = 0
			}
		}
	}
	for v := range t.ValidFrom {
		if !slices.Contains(r.variables, v) {
			return nil, errors.Errorf("validity variable %q is not a growth variable of the ring", v)
		}
	}
	e := r.newExpansion()
	if t.Kind == KindO {
		ot, err := r.newOTerm(t.Growth, t.Coefficient)
		if err != nil {
			return nil, err
		}
		e.insert(ot)
		return e, nil
	}
	e.insert(t.clone())
	return e, nil
}

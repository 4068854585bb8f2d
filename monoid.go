package asymp

import (
	"github.com/asymplib/asymp/symbolic"
)

// VariableBounds binds a dependent variable to its growth envelope:
// both bounds are expansions in the primary variable(s), and
// lower <= variable <= upper is assumed to hold for all admissible
// values. The triple is validated once, at monoid construction.
type VariableBounds struct {
	Variable symbolic.Expr
	Lower    *Expansion
	Upper    *Expansion
}

func (b VariableBounds) validate() error {
	if _, ok := b.Variable.(*symbolic.Sym); !ok {
		return configErrorf("a suitable dependent variable must be passed, got %v", b.Variable)
	}
	if b.Lower == nil || b.Upper == nil {
		return configErrorf("the lower and upper bounds for the dependent variable must be set")
	}
	return nil
}

// variableName returns the dependent variable's name. Only valid after
// validate succeeded.
func (b VariableBounds) variableName() string {
	return b.Variable.(*symbolic.Sym).Name()
}

// TermMonoid is a per-variant term factory bound to a fixed
// dependent-variable/bounds triple. Terms of the monoid's kind consult
// the bound registry during key computation and absorption checks.
type TermMonoid struct {
	kind   TermKind
	bounds VariableBounds
}

// NewExactMonoid returns the exact-term monoid for the given bounds.
func NewExactMonoid(bounds VariableBounds) (*TermMonoid, error) {
	return newTermMonoid(KindExact, bounds)
}

// NewOMonoid returns the O-term monoid for the given bounds.
func NewOMonoid(bounds VariableBounds) (*TermMonoid, error) {
	return newTermMonoid(KindO, bounds)
}

// NewBMonoid returns the B-term monoid for the given bounds.
func NewBMonoid(bounds VariableBounds) (*TermMonoid, error) {
	return newTermMonoid(KindB, bounds)
}

func newTermMonoid(kind TermKind, bounds VariableBounds) (*TermMonoid, error) {
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	return &TermMonoid{kind: kind, bounds: bounds}, nil
}

// Kind returns the term variant this monoid produces.
func (m *TermMonoid) Kind() TermKind { return m.kind }

// DependentVariable returns the bound symbolic variable.
func (m *TermMonoid) DependentVariable() symbolic.Expr { return m.bounds.Variable }

// DependentVariableLowerBound returns the lower growth envelope.
func (m *TermMonoid) DependentVariableLowerBound() *Expansion { return m.bounds.Lower }

// DependentVariableUpperBound returns the upper growth envelope.
func (m *TermMonoid) DependentVariableUpperBound() *Expansion { return m.bounds.Upper }

// VariableBounds returns the (variable, lower, upper) triple.
func (m *TermMonoid) VariableBounds() (symbolic.Expr, *Expansion, *Expansion) {
	return m.bounds.Variable, m.bounds.Lower, m.bounds.Upper
}

// TermMonoids bundles the three term monoids of a ring so that exact,
// O and B terms behave consistently with respect to the same bounds.
type TermMonoids struct {
	Exact *TermMonoid
	O     *TermMonoid
	B     *TermMonoid
}

// NewTermMonoids is the composite factory: it validates the triple once
// and builds all three variant monoids bound to it.
func NewTermMonoids(bounds VariableBounds) (*TermMonoids, error) {
	exact, err := NewExactMonoid(bounds)
	if err != nil {
		return nil, err
	}
	o, err := NewOMonoid(bounds)
	if err != nil {
		return nil, err
	}
	b, err := NewBMonoid(bounds)
	if err != nil {
		return nil, err
	}
	return &TermMonoids{Exact: exact, O: o, B: b}, nil
}

func (ms *TermMonoids) dependentName() string { return ms.Exact.bounds.variableName() }

func (ms *TermMonoids) bounds() VariableBounds { return ms.Exact.bounds }

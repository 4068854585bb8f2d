package asymp

import (
	"math/big"

	"github.com/asymplib/asymp/symbolic"
	"github.com/pkg/errors"
)

// SimplifyExpansion re-inserts the expansion summand by summand, with
// exact coefficients that mention the bounded variable split into their
// additive parts first. Error terms already present get a chance to
// absorb the individual parts that their combined form hid.
func SimplifyExpansion(e *Expansion) *Expansion {
	r := e.ring
	out := r.newExpansion()
	for _, t := range e.summands.Ascending() {
		if t.Kind != KindExact {
			out.insert(t.clone())
		}
	}
	for _, t := range e.summands.Ascending() {
		if t.Kind != KindExact {
			continue
		}
		if r.monoids == nil || !t.Coefficient.Variables().Contains(r.monoids.dependentName()) {
			out.insert(t.clone())
			continue
		}
		for _, part := range symbolic.AddParts(symbolic.Expand(t.Coefficient)) {
			out.insert(Term{Kind: KindExact, Growth: t.Growth, Coefficient: part})
		}
	}
	return out
}

// SetBTermValidFrom widens the validity floors of every B-term in the
// expansion, in place. Floors only ever increase. validFrom is either a
// uniform int64 floor or a map[string]int64 of per-variable floors;
// variables missing from the map default to 1.
func SetBTermValidFrom(e *Expansion, validFrom any) (*Expansion, error) {
	defaultFloor := int64(1)
	var perVariable map[string]int64
	switch v := validFrom.(type) {
	case int:
		defaultFloor = int64(v)
	case int64:
		defaultFloor = v
	case map[string]int64:
		perVariable = v
	default:
		return nil, configErrorf("unsupported valid_from argument of type %T", validFrom)
	}
	for _, t := range e.summands.Ascending() {
		if t.Kind != KindB {
			continue
		}
		// t.ValidFrom shares its backing with the stored summand.
		for v, floor := range t.ValidFrom {
			passed, ok := perVariable[v]
			if !ok {
				passed = defaultFloor
			}
			if floor < passed {
				t.ValidFrom[v] = passed
			}
		}
	}
	return e, nil
}

// UpperBoundOption configures ExpansionUpperBound and
// NumericUpperBound.
type UpperBoundOption func(*upperBoundConfig)

type upperBoundConfig struct {
	validFrom int64
}

// WithValidFrom seeds the validity floor assumed for every growth
// variable before the B-term floors are merged in. Defaults to 1.
func WithValidFrom(validFrom int64) UpperBoundOption {
	return func(c *upperBoundConfig) { c.validFrom = validFrom }
}

// ExpansionUpperBound turns every B-term into an exact term, yielding
// an expansion that bounds e from above wherever all involved B-terms
// are valid. O-terms admit no same-order bound and raise an error.
func ExpansionUpperBound(e *Expansion, opts ...UpperBoundOption) (*Expansion, error) {
	bound, _, err := upperBound(e, opts...)
	return bound, err
}

// NumericUpperBound evaluates the symbolic upper bound at the smallest
// integer values for which all involved B-terms are valid.
func NumericUpperBound(e *Expansion, opts ...UpperBoundOption) (*big.Rat, error) {
	bound, floors, err := upperBound(e, opts...)
	if err != nil {
		return nil, err
	}
	assignment := make(map[string]*big.Rat, len(floors))
	for v, floor := range floors {
		assignment[v] = new(big.Rat).SetInt64(floor)
	}
	total := new(big.Rat)
	for _, t := range bound.summands.Ascending() {
		coefficient, err := symbolic.EvalRat(t.Coefficient, assignment)
		if err != nil {
			return nil, errors.Wrap(err, "evaluating upper bound coefficient")
		}
		g, err := t.Growth.EvalRat(assignment)
		if err != nil {
			return nil, errors.Wrap(err, "evaluating upper bound growth")
		}
		total.Add(total, coefficient.Mul(coefficient, g))
	}
	return total, nil
}

func upperBound(e *Expansion, opts ...UpperBoundOption) (*Expansion, map[string]int64, error) {
	cfg := upperBoundConfig{validFrom: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	floors := make(map[string]int64, len(e.ring.variables))
	for _, v := range e.ring.variables {
		floors[v] = cfg.validFrom
	}
	bound := e.ring.newExpansion()
	for _, t := range e.summands.Ascending() {
		switch t.Kind {
		case KindExact:
			bound.insert(t.clone())
		case KindB:
			bound.insert(Term{Kind: KindExact, Growth: t.Growth, Coefficient: symbolic.AbsOf(t.Coefficient)})
			for v, floor := range t.ValidFrom {
				if floors[v] < floor {
					floors[v] = floor
				}
			}
		default:
			return nil, nil, UnboundableError{Summand: t.String()}
		}
	}
	return bound, floors, nil
}

package asymp

import (
	"github.com/asymplib/asymp/growth"
	"github.com/asymplib/asymp/internal/log"
	"github.com/asymplib/asymp/symbolic"
	"github.com/pkg/errors"
)

var absorbLogger = log.DefaultLogger.With("section", "absorb")

// termSortKey orders summands inside an expansion's poset. The
// effective growth is the term's raw growth scaled by the worst-case
// growth of its coefficient over the dependent variable's envelope, so
// ordering by it is never an underestimate; the raw growth breaks ties.
type termSortKey struct {
	effective growth.Growth
	raw       growth.Growth
}

type termKeyComparer struct{}

func (termKeyComparer) Compare(a, b termSortKey) int {
	if c := a.effective.CmpTotal(b.effective); c != 0 {
		return c
	}
	return a.raw.CmpTotal(b.raw)
}

// termKey computes the poset key of a term. When the ring carries a
// bound registry and the term's coefficient mentions the dependent
// variable, the coefficient's worst-case growth bound is folded into
// the effective component. Key computation cannot fail: malformed
// coefficients fall back to the raw growth with a warning, which keeps
// the poset ordering defined (if pessimistically) for such terms.
func (r *Ring) termKey(t Term) termSortKey {
	effective := t.Growth
	if r.monoids != nil && t.Coefficient != nil {
		name := r.monoids.dependentName()
		if t.Coefficient.Variables().Contains(name) {
			bound, err := r.coefficientGrowthBound(t.Coefficient)
			if err != nil {
				absorbLogger.Warn("falling back to raw growth for poset key",
					"coefficient", t.Coefficient.String(), "err", err)
			} else {
				effective = bound.Mul(t.Growth)
			}
		}
	}
	return termSortKey{effective: effective, raw: t.Growth}
}

// coefficientGrowthBound returns the worst-case (maximum) growth of the
// coefficient over the dependent variable's envelope: the coefficient
// is simplified assuming the variable positive, both bounds are
// substituted, and the larger O-bound growth of the two results wins.
func (r *Ring) coefficientGrowthBound(coefficient symbolic.Expr) (growth.Growth, error) {
	bounds := r.monoids.bounds()
	name := bounds.variableName()
	simplified := symbolic.SimplifyAssumingPositive(coefficient, name)

	var best growth.Growth
	for i, bound := range []*Expansion{bounds.Lower, bounds.Upper} {
		g, err := r.substitutedGrowth(simplified, name, bound)
		if err != nil {
			return growth.Growth{}, err
		}
		if i == 0 || best.CmpTotal(g) < 0 {
			best = g
		}
	}
	return best, nil
}

// substitutedGrowth substitutes bound for the named variable in
// coefficient and returns the growth of the single-summand O-bound of
// the result.
func (r *Ring) substitutedGrowth(coefficient symbolic.Expr, name string, bound *Expansion) (growth.Growth, error) {
	substituted, err := r.Evaluate(coefficient, map[string]any{name: bound})
	if err != nil {
		return growth.Growth{}, err
	}
	oBound, err := substituted.O()
	if err != nil {
		return growth.Growth{}, err
	}
	summands := oBound.summands.Ascending()
	if len(summands) != 1 {
		return growth.Growth{}, errors.Errorf(
			"expected a single-summand growth envelope for %s, got %s", coefficient, oBound)
	}
	return summands[0].Growth, nil
}

// newOTerm builds an O-term, folding the worst-case growth of a
// coefficient that mentions the dependent variable directly into the
// stored growth. After construction two O-terms compare by growth
// alone; O-terms never store a coefficient.
func (r *Ring) newOTerm(g growth.Growth, coefficient symbolic.Expr) (Term, error) {
	if r.monoids != nil && coefficient != nil {
		name := r.monoids.dependentName()
		if coefficient.Variables().Contains(name) {
			bound, err := r.coefficientGrowthBound(coefficient)
			if err != nil {
				return Term{}, err
			}
			g = bound.Mul(g)
		}
	}
	return Term{Kind: KindO, Growth: g}, nil
}

// canAbsorb is the absorption predicate used by the summand poset:
// whether into may consume other as a summand.
func (r *Ring) canAbsorb(into, other Term) bool {
	switch into.Kind {
	case KindExact:
		return other.Kind == KindExact && into.Growth.Equal(other.Growth)
	case KindO:
		return r.oCanAbsorb(into, other)
	case KindB:
		// Exact growth equality only: coefficient-aware absorption in
		// the style of oCanAbsorb is a known gap in the B policy.
		return other.Kind != KindO && into.Growth.Equal(other.Growth)
	}
	return false
}

// oCanAbsorb implements the O-term absorption rule. A coefficient that
// depends on the bounded variable is checked at both ends of the
// envelope: the O-term must dominate the boundary term obtained from
// either bound, otherwise absorbing would weaken the claim.
func (r *Ring) oCanAbsorb(into, other Term) bool {
	if r.monoids != nil && other.Coefficient != nil {
		name := r.monoids.dependentName()
		if other.Coefficient.Variables().Contains(name) {
			bounds := r.monoids.bounds()
			simplified := symbolic.SimplifyAssumingPositive(other.Coefficient, name)
			for _, bound := range []*Expansion{bounds.Lower, bounds.Upper} {
				g, err := r.substitutedGrowth(simplified, name, bound)
				if err != nil {
					absorbLogger.Warn("refusing O absorption: boundary growth undecidable",
						"coefficient", other.Coefficient.String(), "err", err)
					return false
				}
				boundary := Term{Kind: other.Kind, Growth: g.Mul(other.Growth)}
				if !r.oCanAbsorb(into, boundary) {
					return false
				}
			}
			return true
		}
	}
	c, ok := into.Growth.Cmp(other.Growth)
	return ok && c >= 0
}

// absorb merges other into into. The second result is false when the
// merge annihilates (exact coefficients summing to zero).
func (r *Ring) absorb(into, other Term) (Term, bool) {
	switch into.Kind {
	case KindExact:
		sum := symbolic.AddOf(into.Coefficient, other.Coefficient)
		if num, ok := sum.(*symbolic.Num); ok && num.IsZero() {
			return Term{}, false
		}
		into.Coefficient = sum
		return into, true
	case KindO:
		return into, true
	case KindB:
		into = into.clone()
		into.Coefficient = symbolic.AddOf(into.Coefficient, symbolic.AbsOf(other.Coefficient))
		into.ValidFrom = mergeFloors(into.ValidFrom, other.ValidFrom)
		return into, true
	}
	return into, true
}

// mergeFloors unions two validity regions, keeping the larger floor
// for variables present in both.
func mergeFloors(a, b map[string]int64) map[string]int64 {
	if a == nil && b == nil {
		return nil
	}
	merged := make(map[string]int64, len(a)+len(b))
	for v, bound := range a {
		merged[v] = bound
	}
	for v, bound := range b {
		if current, ok := merged[v]; !ok || bound > current {
			merged[v] = bound
		}
	}
	return merged
}

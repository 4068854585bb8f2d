// Package asymp implements asymptotic expansions over monomial growth
// groups, extended with a symbolic dependent variable whose value is
// bounded by power-law envelopes of the primary growth variable.
// Summands of an expansion are kept in a poset ordered by a
// coefficient-aware growth key, so that merge and absorption decisions
// account for the worst-case contribution of the dependent variable.
package asymp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/asymplib/asymp/growth"
	"github.com/asymplib/asymp/symbolic"
)

// TermKind discriminates the three summand variants of an expansion.
type TermKind uint8

const (
	// KindExact contributes coefficient*growth precisely.
	KindExact TermKind = iota
	// KindO is a qualitative upper bound of the stated order.
	KindO
	// KindB is a quantitative bound abs(coefficient)*growth, valid
	// from a per-variable threshold onward.
	KindB
)

func (k TermKind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindO:
		return "O"
	case KindB:
		return "B"
	default:
		return "invalid"
	}
}

// Term is a single summand of an asymptotic expansion, a tagged variant
// over {exact, O, B}. Coefficient is nil for O-terms; ValidFrom is only
// set for B-terms. A term belongs to the expansion holding it; absorbed
// terms are folded into their absorber and discarded.
type Term struct {
	Kind        TermKind
	Growth      growth.Growth
	Coefficient symbolic.Expr
	ValidFrom   map[string]int64
}

// clone returns a copy of t that shares no mutable state.
func (t Term) clone() Term {
	if t.ValidFrom != nil {
		floors := make(map[string]int64, len(t.ValidFrom))
		for v, bound := range t.ValidFrom {
			floors[v] = bound
		}
		t.ValidFrom = floors
	}
	return t
}

func (t Term) String() string {
	switch t.Kind {
	case KindO:
		return "O(" + t.Growth.String() + ")"
	case KindB:
		return "B(" + renderProduct(t.Coefficient, t.Growth) + validFromSuffix(t.ValidFrom) + ")"
	default:
		return renderProduct(t.Coefficient, t.Growth)
	}
}

// renderProduct prints coefficient*growth, eliding unit factors.
func renderProduct(coefficient symbolic.Expr, g growth.Growth) string {
	coefStr := ""
	if coefficient != nil {
		if num, ok := coefficient.(*symbolic.Num); ok && num.IsOne() {
			coefStr = ""
		} else {
			coefStr = coefficient.String()
			if _, isAdd := coefficient.(*symbolic.Add); isAdd {
				coefStr = "(" + coefStr + ")"
			}
		}
	}
	switch {
	case coefStr == "" && g.IsOne():
		return "1"
	case coefStr == "":
		return g.String()
	case g.IsOne():
		return coefStr
	}
	return coefStr + "*" + g.String()
}

func validFromSuffix(floors map[string]int64) string {
	if len(floors) == 0 {
		return ""
	}
	names := make([]string, 0, len(floors))
	for v := range floors {
		names = append(names, v)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, v := range names {
		b.WriteString(", ")
		b.WriteString(v)
		b.WriteString(" >= ")
		b.WriteString(strconv.FormatInt(floors[v], 10))
	}
	return b.String()
}

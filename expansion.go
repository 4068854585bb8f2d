package asymp

import (
	"strings"

	"github.com/asymplib/asymp/poset"
)

// Expansion is a sum of growth-ordered terms. Summands live in a poset
// keyed by the ring's coefficient-aware growth key; insertion is
// absorption-eager, so no two stored summands are mergeable.
//
// Expansions produced by ring arithmetic share no mutable state with
// their operands. The only in-place mutation in this package is the
// validity-floor ratchet (SetBTermValidFrom), which deliberately
// affects exactly the expansion it is applied to.
type Expansion struct {
	ring     *Ring
	summands *poset.Poset[Term, termSortKey]
}

// Ring returns the ring the expansion belongs to.
func (e *Expansion) Ring() *Ring { return e.ring }

// IsZero reports whether the expansion has no summands.
func (e *Expansion) IsZero() bool { return e.summands.Len() == 0 }

// Len returns the number of summands.
func (e *Expansion) Len() int { return e.summands.Len() }

// Summands returns the summands in descending key order (the order
// they are printed in). The returned terms are a read-only view;
// callers must not mutate their validity maps.
func (e *Expansion) Summands() []Term { return e.summands.Descending() }

// IsExact reports whether every summand contributes exactly.
func (e *Expansion) IsExact() bool {
	return !e.HasSummandOfKind(KindO) && !e.HasSummandOfKind(KindB)
}

// HasSummandOfKind reports whether any summand has the given kind.
func (e *Expansion) HasSummandOfKind(kind TermKind) bool {
	for _, t := range e.summands.All() {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

func (e *Expansion) insert(t Term) { e.summands.Insert(t) }

func (e *Expansion) String() string {
	terms := e.summands.Descending()
	if len(terms) == 0 {
		return "0"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

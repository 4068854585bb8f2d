package asymp

import (
	"math/big"
	"testing"

	"github.com/asymplib/asymp/growth"
	"github.com/asymplib/asymp/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyExpansionSplitsDependentCoefficients(t *testing.T) {
	r, _, _ := boundedRing(t, big.NewRat(-1, 2), big.NewRat(1, 2))
	k := symbolic.S("k")

	o, err := r.CreateSummand(Term{Kind: KindO, Growth: growth.Monomial("n", big.NewRat(1, 2))})
	require.NoError(t, err)

	// (k^2 + k) as one exact term is out of reach for O(n^(1/2))
	// because its worst-case growth is n; split into parts, the k part
	// is absorbed and only k^2 survives
	combined, err := r.CreateSummand(Term{
		Kind:        KindExact,
		Growth:      growth.One(),
		Coefficient: symbolic.AddOf(symbolic.PowOf(k, big.NewRat(2, 1)), k),
	})
	require.NoError(t, err)

	e := o.Add(combined)
	assert.Equal(t, 2, e.Len())

	simplified := SimplifyExpansion(e)
	assert.Equal(t, "k^2 + O(n^(1/2))", simplified.String())

	// the input expansion is left untouched
	assert.Equal(t, 2, e.Len())
}

func TestSimplifyExpansionWithoutDependentVariable(t *testing.T) {
	r := mustRing(t, "n^QQ")
	n := r.Monomial("n", big.NewRat(1, 1))

	e := n.Add(r.One())
	assert.Equal(t, e.String(), SimplifyExpansion(e).String())
}

func TestSetBTermValidFrom(t *testing.T) {
	r := mustRing(t, "n^QQ")

	makeT := func() *Expansion {
		nInv := r.Monomial("n", big.NewRat(-1, 1))
		b, err := r.CreateSummand(Term{
			Kind:        KindB,
			Growth:      growth.MonomialInt("n", -3),
			Coefficient: symbolic.N(1),
			ValidFrom:   map[string]int64{"n": 5},
		})
		require.NoError(t, err)
		return nInv.Add(b)
	}

	e := makeT()

	// floors for unknown variables are ignored
	_, err := SetBTermValidFrom(e, map[string]int64{"z": 42})
	require.NoError(t, err)
	assert.Equal(t, "n^(-1) + B(n^(-3), n >= 5)", e.String())

	// named floors ratchet up
	_, err = SetBTermValidFrom(e, map[string]int64{"n": 42})
	require.NoError(t, err)
	assert.Equal(t, "n^(-1) + B(n^(-3), n >= 42)", e.String())

	_, err = SetBTermValidFrom(e, map[string]int64{"n": 43})
	require.NoError(t, err)
	assert.Equal(t, "n^(-1) + B(n^(-3), n >= 43)", e.String())

	// a uniform floor below the current one never lowers it
	_, err = SetBTermValidFrom(e, 10)
	require.NoError(t, err)
	assert.Equal(t, "n^(-1) + B(n^(-3), n >= 43)", e.String())

	_, err = SetBTermValidFrom(e, "nope")
	assert.Error(t, err)
}

func TestExpansionUpperBound(t *testing.T) {
	r := mustRing(t, "n^QQ")
	n := r.Monomial("n", big.NewRat(1, 1))

	// exact expansions bound themselves
	e := n.Add(r.One())
	bound, err := ExpansionUpperBound(e)
	require.NoError(t, err)
	assert.Equal(t, "n + 1", bound.String())

	// B-terms turn into exact terms with their absolute coefficient
	b, err := r.CreateSummand(Term{
		Kind:        KindB,
		Growth:      growth.MonomialInt("n", -1),
		Coefficient: symbolic.N(42),
		ValidFrom:   map[string]int64{"n": 5},
	})
	require.NoError(t, err)
	bound, err = ExpansionUpperBound(r.One().Add(b))
	require.NoError(t, err)
	assert.Equal(t, "1 + 42*n^(-1)", bound.String())

	// negative coefficients lose their sign on the way out
	b, err = r.CreateSummand(Term{
		Kind:        KindB,
		Growth:      growth.MonomialInt("n", -1),
		Coefficient: symbolic.N(-42),
		ValidFrom:   map[string]int64{"n": 5},
	})
	require.NoError(t, err)
	bound, err = ExpansionUpperBound(r.One().Add(b))
	require.NoError(t, err)
	assert.Equal(t, "1 + 42*n^(-1)", bound.String())

	// O-terms admit no same-order bound
	on, err := n.PowRat(big.NewRat(-1, 1))
	require.NoError(t, err)
	on, err = on.O()
	require.NoError(t, err)
	_, err = ExpansionUpperBound(r.One().Add(on))
	require.Error(t, err)
	assert.Equal(t, "no same-order bound can be constructed for O(n^(-1))", err.Error())
}

func TestNumericUpperBound(t *testing.T) {
	r := mustRing(t, "n^QQ")
	n := r.Monomial("n", big.NewRat(1, 1))

	b, err := r.CreateSummand(Term{
		Kind:        KindB,
		Growth:      growth.MonomialInt("n", -2),
		Coefficient: symbolic.N(1),
		ValidFrom:   map[string]int64{"n": 10},
	})
	require.NoError(t, err)
	e := n.Sub(b)

	// n + n^(-2) at n = 10
	v, err := NumericUpperBound(e)
	require.NoError(t, err)
	assert.Equal(t, "1001/100", v.RatString())

	// an explicit seed above every B floor moves the evaluation point
	v, err = NumericUpperBound(e, WithValidFrom(100))
	require.NoError(t, err)
	assert.Equal(t, "1000001/10000", v.RatString())

	// a sign-indefinite B coefficient contributes its magnitude, so the
	// bound lands above the true value rather than below it
	neg, err := r.CreateSummand(Term{
		Kind:        KindB,
		Growth:      growth.MonomialInt("n", -2),
		Coefficient: symbolic.N(-1),
		ValidFrom:   map[string]int64{"n": 10},
	})
	require.NoError(t, err)
	v, err = NumericUpperBound(n.Add(neg))
	require.NoError(t, err)
	assert.Equal(t, "1001/100", v.RatString())
}

func TestNumericUpperBoundDefaultSeed(t *testing.T) {
	r := mustRing(t, "n^QQ")
	nInv := r.Monomial("n", big.NewRat(-1, 1))

	// without any B floors, variables evaluate at 1
	v, err := NumericUpperBound(nInv.Add(r.One()))
	require.NoError(t, err)
	assert.Equal(t, "2", v.RatString())
}

package growth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	testCases := []struct {
		name     string
		input    Growth
		expected string
	}{
		{name: "one", input: One(), expected: "1"},
		{name: "plain variable", input: MonomialInt("n", 1), expected: "n"},
		{name: "integer exponent", input: MonomialInt("n", 2), expected: "n^2"},
		{name: "negative exponent", input: MonomialInt("n", -1), expected: "n^(-1)"},
		{name: "fractional exponent", input: Monomial("n", big.NewRat(1, 2)), expected: "n^(1/2)"},
		{
			name:     "product of variables",
			input:    MonomialInt("k", 2).Mul(MonomialInt("m", -1)),
			expected: "k^2*m^(-1)",
		},
		{name: "zero exponent collapses to one", input: MonomialInt("n", 0), expected: "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.String())
		})
	}
}

func TestMulInvPow(t *testing.T) {
	n := MonomialInt("n", 1)

	assert.Equal(t, "n^3", n.Mul(MonomialInt("n", 2)).String())
	assert.True(t, n.Mul(n.Inv()).IsOne())
	assert.Equal(t, "n^(3/2)", n.PowRat(big.NewRat(3, 2)).String())
	assert.Equal(t, "n^(-2)", MonomialInt("n", 2).Inv().String())

	// operands are unchanged
	assert.Equal(t, "n", n.String())
}

func TestCmp(t *testing.T) {
	testCases := []struct {
		name       string
		a, b       Growth
		expected   int
		comparable bool
	}{
		{
			name:       "larger exponent dominates",
			a:          MonomialInt("n", 2),
			b:          MonomialInt("n", 1),
			expected:   1,
			comparable: true,
		},
		{
			name:       "equal elements",
			a:          MonomialInt("n", 1),
			b:          MonomialInt("n", 1),
			expected:   0,
			comparable: true,
		},
		{
			name:       "growing beats constant",
			a:          MonomialInt("n", 1),
			b:          One(),
			expected:   1,
			comparable: true,
		},
		{
			name:       "shrinking loses to constant",
			a:          MonomialInt("n", -1),
			b:          One(),
			expected:   -1,
			comparable: true,
		},
		{
			name:       "componentwise agreement",
			a:          MonomialInt("k", 2).Mul(MonomialInt("m", 1)),
			b:          MonomialInt("k", 1),
			expected:   1,
			comparable: true,
		},
		{
			name:       "conflicting directions are incomparable",
			a:          MonomialInt("k", 1).Mul(MonomialInt("m", -1)),
			b:          One(),
			comparable: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := tc.a.Cmp(tc.b)
			assert.Equal(t, tc.comparable, ok)
			if tc.comparable {
				assert.Equal(t, tc.expected, c)
			}
		})
	}
}

func TestCmpTotal(t *testing.T) {
	a := MonomialInt("k", 1).Mul(MonomialInt("m", -1))
	b := One()

	// incomparable elements still order deterministically, and
	// antisymmetrically
	assert.Equal(t, -a.CmpTotal(b), b.CmpTotal(a))
	assert.NotEqual(t, 0, a.CmpTotal(b))

	// agrees with Cmp where Cmp is defined
	assert.Equal(t, 1, MonomialInt("n", 2).CmpTotal(MonomialInt("n", 1)))
	assert.Equal(t, 0, MonomialInt("n", 1).CmpTotal(MonomialInt("n", 1)))
}

func TestEvalRat(t *testing.T) {
	three := map[string]*big.Rat{"n": big.NewRat(3, 1)}

	v, err := MonomialInt("n", 2).EvalRat(three)
	assert.NoError(t, err)
	assert.Equal(t, "9", v.RatString())

	v, err = MonomialInt("n", -2).EvalRat(three)
	assert.NoError(t, err)
	assert.Equal(t, "1/9", v.RatString())

	_, err = Monomial("n", big.NewRat(1, 2)).EvalRat(three)
	assert.Error(t, err, "non-integral exponents have no exact value")

	_, err = MonomialInt("k", 1).EvalRat(three)
	assert.Error(t, err, "missing variables fail")
}

func TestParseGroup(t *testing.T) {
	variables, err := ParseGroup("n^QQ")
	assert.NoError(t, err)
	assert.Equal(t, []string{"n"}, variables)

	variables, err = ParseGroup("k^QQ * m^ZZ")
	assert.NoError(t, err)
	assert.Equal(t, []string{"k", "m"}, variables)

	for _, spec := range []string{"", "n", "n^RR", "n^QQ * n^QQ", "2n^QQ"} {
		_, err := ParseGroup(spec)
		assert.Error(t, err, "spec %q should be rejected", spec)
	}
}

package symbolic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalConstruction(t *testing.T) {
	k := S("k")

	testCases := []struct {
		name     string
		input    Expr
		expected string
	}{
		{
			name:     "numeric constants fold in sums",
			input:    AddOf(N(1), N(2), N(3)),
			expected: "6",
		},
		{
			name:     "like terms collect",
			input:    AddOf(k, k, N(1)),
			expected: "2*k + 1",
		},
		{
			name:     "cancelling terms vanish",
			input:    AddOf(k, MulOf(N(-1), k)),
			expected: "0",
		},
		{
			name:     "nested sums flatten",
			input:    AddOf(AddOf(k, N(1)), AddOf(k, N(1))),
			expected: "2*k + 2",
		},
		{
			name:     "equal bases collect into powers",
			input:    MulOf(k, k, k),
			expected: "k^3",
		},
		{
			name:     "numeric coefficient leads the product",
			input:    MulOf(k, N(3), N(2)),
			expected: "6*k",
		},
		{
			name:     "zero coefficient annihilates",
			input:    MulOf(N(0), k),
			expected: "0",
		},
		{
			name:     "reciprocal powers cancel",
			input:    MulOf(k, PowOf(k, big.NewRat(-1, 1))),
			expected: "1",
		},
		{
			name:     "numeric power folds",
			input:    PowOf(N(2), big.NewRat(3, 1)),
			expected: "8",
		},
		{
			name:     "nested powers combine",
			input:    PowOf(PowOf(k, big.NewRat(2, 1)), big.NewRat(3, 1)),
			expected: "k^6",
		},
		{
			name:     "negative exponent is parenthesised",
			input:    PowOf(k, big.NewRat(-2, 1)),
			expected: "k^(-2)",
		},
		{
			name:     "fractional exponent is parenthesised",
			input:    PowOf(k, big.NewRat(1, 2)),
			expected: "k^(1/2)",
		},
		{
			name:     "abs folds numbers",
			input:    AbsOf(N(-5)),
			expected: "5",
		},
		{
			name:     "abs distributes over products",
			input:    AbsOf(MulOf(N(-3), k)),
			expected: "3*abs(k)",
		},
		{
			name:     "abs of even power drops the bars",
			input:    AbsOf(PowOf(k, big.NewRat(2, 1))),
			expected: "k^2",
		},
		{
			name:     "abs is idempotent",
			input:    AbsOf(AbsOf(k)),
			expected: "abs(k)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.String())
		})
	}
}

func TestSubstitute(t *testing.T) {
	k, n := S("k"), S("n")

	e := AddOf(MulOf(k, n), PowOf(k, big.NewRat(2, 1)))
	subbed := e.Substitute("k", N(3))
	assert.Equal(t, "3*n + 9", subbed.String())

	// substitution canonicalises the result
	cancelling := AddOf(k, MulOf(N(-1), n))
	assert.Equal(t, "0", cancelling.Substitute("k", n).String())
}

func TestSubstituteAll(t *testing.T) {
	k, n := S("k"), S("n")

	// simultaneous: the swap does not collapse k + n into 2*n or 2*k
	swapped := SubstituteAll(AddOf(k, n), map[string]Expr{"k": n, "n": k})
	assert.Equal(t, "k + n", swapped.String())

	// a value mentioning another substituted variable keeps it
	e := SubstituteAll(AddOf(k, n), map[string]Expr{"k": n, "n": N(1)})
	assert.Equal(t, "n + 1", e.String())
}

func TestVariables(t *testing.T) {
	e := AddOf(MulOf(S("k"), S("n")), AbsOf(S("m")))
	vars := e.Variables()
	assert.Equal(t, 3, vars.Size())
	assert.True(t, vars.Contains("k"))
	assert.True(t, vars.Contains("n"))
	assert.True(t, vars.Contains("m"))
	assert.Equal(t, 0, N(4).Variables().Size())
}

func TestEval(t *testing.T) {
	v, ok := AddOf(MulOf(N(2), F(1, 3)), N(1)).Eval()
	assert.True(t, ok)
	assert.Equal(t, "5/3", v.RatString())

	_, ok = AddOf(S("k"), N(1)).Eval()
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	k, n := S("k"), S("n")

	testCases := []struct {
		name     string
		input    Expr
		expected string
	}{
		{
			name:     "product over sum",
			input:    MulOf(AddOf(k, N(1)), n),
			expected: "k*n + n",
		},
		{
			name:     "square of a sum",
			input:    PowOf(AddOf(k, N(1)), big.NewRat(2, 1)),
			expected: "2*k + k^2 + 1",
		},
		{
			name:     "already flat input is unchanged",
			input:    AddOf(k, N(1)),
			expected: "k + 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(tc.input).String())
		})
	}
}

func TestAddParts(t *testing.T) {
	k := S("k")
	parts := AddParts(AddOf(k, N(1)))
	assert.Len(t, parts, 2)
	assert.Len(t, AddParts(k), 1)
}

func TestSimplifyAssumingPositive(t *testing.T) {
	k := S("k")

	testCases := []struct {
		name     string
		input    Expr
		expected string
	}{
		{
			name:     "abs of the positive symbol drops",
			input:    AbsOf(k),
			expected: "k",
		},
		{
			name:     "abs of a positive product drops",
			input:    AbsOf(MulOf(N(3), k)),
			expected: "3*k",
		},
		{
			name:     "abs of another symbol stays",
			input:    AbsOf(S("m")),
			expected: "abs(m)",
		},
		{
			name:     "abs inside a sum drops per part",
			input:    AddOf(AbsOf(k), AbsOf(S("m"))),
			expected: "abs(m) + k",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SimplifyAssumingPositive(tc.input, "k").String())
		})
	}
}

func TestEvalRat(t *testing.T) {
	e := AddOf(MulOf(S("n"), S("n")), N(1))
	v, err := EvalRat(e, map[string]*big.Rat{"n": big.NewRat(3, 1)})
	assert.NoError(t, err)
	assert.Equal(t, "10", v.RatString())

	_, err = EvalRat(S("k"), map[string]*big.Rat{"n": big.NewRat(3, 1)})
	assert.Error(t, err)
}

package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "number",
			input:    "42",
			expected: "42",
		},
		{
			name:     "symbol",
			input:    "k",
			expected: "k",
		},
		{
			name:     "sum and difference",
			input:    "1 + k - 2",
			expected: "k + -1",
		},
		{
			name:     "product",
			input:    "2*k*3",
			expected: "6*k",
		},
		{
			name:     "division becomes a negative power",
			input:    "k/n",
			expected: "k*n^(-1)",
		},
		{
			name:     "numeric division folds",
			input:    "1/2",
			expected: "1/2",
		},
		{
			name:     "power binds tighter than product",
			input:    "2*k^2",
			expected: "2*k^2",
		},
		{
			name:     "parenthesised exponent",
			input:    "n^(-1)",
			expected: "n^(-1)",
		},
		{
			name:     "fractional exponent",
			input:    "n^(1/2)",
			expected: "n^(1/2)",
		},
		{
			name:     "unary minus",
			input:    "-k",
			expected: "-1*k",
		},
		{
			name:     "abs call",
			input:    "abs(1 - k)",
			expected: "abs(-1*k + 1)",
		},
		{
			name:     "parentheses group sums",
			input:    "(1 + k)*(1 - k)",
			expected: "(-1*k + 1)*(k + 1)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, e.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "dangling operator", input: "1 +"},
		{name: "missing close paren", input: "(1 + k"},
		{name: "unknown function", input: "sin(k)"},
		{name: "symbolic exponent", input: "n^k"},
		{name: "trailing garbage", input: "1 + 2 )"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.Error(t, err)
		})
	}
}

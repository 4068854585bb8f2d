// Package symbolic implements a small deterministic symbolic expression
// kernel: exact rational numbers, symbols, sums, products, rational powers
// and absolute values. Expressions are immutable and canonical by
// construction; the smart constructors (AddOf, MulOf, PowOf, AbsOf) flatten,
// collect and order their operands so that structurally equal values render
// identically.
package symbolic

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-set/v3"
)

// Expr is a symbolic expression. Implementations are *Num, *Sym, *Add,
// *Mul, *Pow and *Abs; the interface is sealed so that consumers can
// switch exhaustively over those variants.
type Expr interface {
	fmt.Stringer
	// LaTeX renders the expression as LaTeX markup.
	LaTeX() string
	// Variables returns the set of free variable names.
	Variables() *set.Set[string]
	// Substitute replaces every free occurrence of the named variable
	// and returns the canonicalised result.
	Substitute(name string, value Expr) Expr
	// Eval returns the exact rational value of a closed expression.
	// The second result is false when free variables remain or the
	// value is not rational.
	Eval() (*big.Rat, bool)
	Equal(other Expr) bool

	isExpr()
}

// ----------------------------------------------
// Num: exact rational constant

type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns the fraction p/q.
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// FromRat wraps a copy of r as a constant.
func FromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) isExpr() {}

func (n *Num) Rat() *big.Rat       { return new(big.Rat).Set(n.val) }
func (n *Num) IsZero() bool        { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool         { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegative() bool    { return n.val.Sign() < 0 }
func (n *Num) Eval() (*big.Rat, bool) { return n.Rat(), true }

func (n *Num) Variables() *set.Set[string] { return set.New[string](0) }

func (n *Num) Substitute(string, Expr) Expr { return n }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// ----------------------------------------------
// Sym: free variable

type Sym struct{ name string }

// S returns the symbol with the given name.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) isExpr() {}

func (s *Sym) Name() string { return s.name }

func (s *Sym) Variables() *set.Set[string] { return set.From([]string{s.name}) }

func (s *Sym) Substitute(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Eval() (*big.Rat, bool) { return nil, false }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }

// ----------------------------------------------

var (
	ratOne = new(big.Rat).SetInt64(1)
)

// unionVariables collects the free variables of several expressions.
func unionVariables(exprs []Expr) *set.Set[string] {
	vars := set.New[string](0)
	for _, e := range exprs {
		vars.InsertSet(e.Variables())
	}
	return vars
}

package symbolic

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Parse reads an expression from its textual form. The accepted grammar
// covers integer constants, identifiers, abs(...), the operators
// + - * / ^ and parentheses; ^ binds tightest and requires a constant
// rational exponent.
func Parse(input string) (Expr, error) {
	p := &parser{input: input}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, errors.Errorf("unexpected %q at offset %d in %q", p.input[p.pos], p.pos, p.input)
	}
	return e, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseSum() (Expr, error) {
	lhs, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	terms := []Expr{lhs}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			t, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case '-':
			p.pos++
			t, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, MulOf(N(-1), t))
		default:
			return AddOf(terms...), nil
		}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{lhs}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case '/':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, PowOf(f, new(big.Rat).SetInt64(-1)))
		default:
			return MulOf(factors...), nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	v, ok := exp.Eval()
	if !ok {
		return nil, errors.Errorf("exponent %s is not a rational constant", exp)
	}
	return PowOf(base, v), nil
}

func (p *parser) parseAtom() (Expr, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, errors.Errorf("missing ) at offset %d in %q", p.pos, p.input)
		}
		p.pos++
		return e, nil
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		r, ok := new(big.Rat).SetString(p.input[start:p.pos])
		if !ok {
			return nil, errors.Errorf("invalid number %q", p.input[start:p.pos])
		}
		return FromRat(r), nil
	case isIdentStart(rune(c)):
		start := p.pos
		for p.pos < len(p.input) && isIdentPart(rune(p.input[p.pos])) {
			p.pos++
		}
		name := p.input[start:p.pos]
		if p.peek() == '(' {
			if !strings.EqualFold(name, "abs") {
				return nil, errors.Errorf("unknown function %q", name)
			}
			p.pos++
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.peek() != ')' {
				return nil, errors.Errorf("missing ) at offset %d in %q", p.pos, p.input)
			}
			p.pos++
			return AbsOf(arg), nil
		}
		return S(name), nil
	case c == 0:
		return nil, errors.Errorf("unexpected end of input in %q", p.input)
	default:
		return nil, errors.Errorf("unexpected %q at offset %d in %q", c, p.pos, p.input)
	}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || unicode.IsDigit(r) }

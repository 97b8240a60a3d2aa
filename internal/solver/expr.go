package solver

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// userFuncs are the functions an expression may call.
var userFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true, "exp": true,
	"log": true, "log10": true, "sqrt": true,
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			// exponent part, only when digits follow: 2e is not a number
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && unicode.IsDigit(rs[j]) {
					for j < len(rs) && unicode.IsDigit(rs[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{tokNum, string(rs[start:i]), start})
		case unicode.IsLetter(c):
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_') {
				i++
			}
			toks = append(toks, token{tokIdent, string(rs[start:i]), start})
		case strings.ContainsRune("+-*/^(),", c):
			toks = append(toks, token{tokPunct, string(c), i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at %d", c, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

// rewriter turns the user grammar into govaluate syntax. Every operation
// comes out fully parenthesised, so govaluate's own precedence never
// matters: ^ becomes pow(a, b) and binds tighter than unary minus, grouping
// right to left, and / becomes div(a, b).
type rewriter struct {
	toks []token
	i    int
}

// normalize rewrites src; the result only uses numbers, x, e, pi, the
// user functions and the pow and div helpers.
func normalize(src string) (string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return "", err
	}
	r := &rewriter{toks: toks}
	out, err := r.expr()
	if err != nil {
		return "", err
	}
	if t := r.peek(); t.kind != tokEOF {
		return "", fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
	return out, nil
}

func (r *rewriter) peek() token { return r.toks[r.i] }

func (r *rewriter) next() token {
	t := r.toks[r.i]
	if t.kind != tokEOF {
		r.i++
	}
	return t
}

func (r *rewriter) isPunct(s string) bool {
	t := r.peek()
	return t.kind == tokPunct && t.text == s
}

// expr := term (("+" | "-") term)*
func (r *rewriter) expr() (string, error) {
	left, err := r.term()
	if err != nil {
		return "", err
	}
	for r.isPunct("+") || r.isPunct("-") {
		op := r.next().text
		right, err := r.term()
		if err != nil {
			return "", err
		}
		left = "(" + left + " " + op + " " + right + ")"
	}
	return left, nil
}

// term := unary (("*" | "/") unary)*
func (r *rewriter) term() (string, error) {
	left, err := r.unary()
	if err != nil {
		return "", err
	}
	for r.isPunct("*") || r.isPunct("/") {
		op := r.next().text
		right, err := r.unary()
		if err != nil {
			return "", err
		}
		if op == "/" {
			left = "div(" + left + ", " + right + ")"
		} else {
			left = "(" + left + " * " + right + ")"
		}
	}
	return left, nil
}

// unary := ("+" | "-") unary | power
func (r *rewriter) unary() (string, error) {
	if r.isPunct("-") || r.isPunct("+") {
		op := r.next().text
		operand, err := r.unary()
		if err != nil {
			return "", err
		}
		if op == "-" {
			return "(-" + operand + ")", nil
		}
		return operand, nil
	}
	return r.power()
}

// power := atom ("^" unary)?
//
// The exponent is a unary, so x^-1 is accepted and 2^3^2 is 2^(3^2).
func (r *rewriter) power() (string, error) {
	base, err := r.atom()
	if err != nil {
		return "", err
	}
	if !r.isPunct("^") {
		return base, nil
	}
	r.next()
	exp, err := r.unary()
	if err != nil {
		return "", err
	}
	return "pow(" + base + ", " + exp + ")", nil
}

// atom := number | name | name "(" expr ")" | "(" expr ")"
func (r *rewriter) atom() (string, error) {
	t := r.next()
	switch t.kind {
	case tokNum:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return "", fmt.Errorf("bad number %q at %d", t.text, t.pos)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case tokIdent:
		if r.isPunct("(") {
			if !userFuncs[t.text] {
				return "", fmt.Errorf("unknown function %q", t.text)
			}
			r.next()
			arg, err := r.expr()
			if err != nil {
				return "", err
			}
			if !r.isPunct(")") {
				return "", fmt.Errorf("%s: missing ) at %d", t.text, r.peek().pos)
			}
			r.next()
			return t.text + "(" + arg + ")", nil
		}
		if _, err := point(0).Get(t.text); err != nil {
			return "", fmt.Errorf("unknown identifier %q", t.text)
		}
		return t.text, nil
	case tokPunct:
		if t.text == "(" {
			inner, err := r.expr()
			if err != nil {
				return "", err
			}
			if !r.isPunct(")") {
				return "", fmt.Errorf("missing ) at %d", r.peek().pos)
			}
			r.next()
			return "(" + inner + ")", nil
		}
		return "", fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
	return "", fmt.Errorf("unexpected end of expression")
}

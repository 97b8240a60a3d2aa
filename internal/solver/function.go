package solver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

var (
	// ErrParse means an expression string could not be turned into a function.
	ErrParse = errors.New("solver: malformed expression")
	// ErrDomain means a function was evaluated outside its domain.
	ErrDomain = errors.New("solver: math domain error")
)

// Func is a real function of one variable.
type Func interface {
	Eval(x float64) (float64, error)
}

// Fn adapts an ordinary Go function to Func.
type Fn func(float64) float64

func (f Fn) Eval(x float64) (float64, error) { return f(x), nil }

// evalFunc is a Func backed by a parsed govaluate expression.
type evalFunc struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// point supplies the variable and constants of an expression at one x.
// Each Eval gets its own point, so an evalFunc is safe for concurrent use.
type point float64

func (p point) Get(name string) (interface{}, error) {
	switch name {
	case "x":
		return float64(p), nil
	case "e":
		return math.E, nil
	case "pi":
		return math.Pi, nil
	}
	return nil, fmt.Errorf("%w: unknown identifier %q", ErrParse, name)
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary("sin", math.Sin, nil),
	"cos":   unary("cos", math.Cos, nil),
	"tan":   unary("tan", math.Tan, nil),
	"exp":   unary("exp", math.Exp, nil),
	"log":   unary("log", math.Log, positive),
	"log10": unary("log10", math.Log10, positive),
	"sqrt":  unary("sqrt", math.Sqrt, nonNegative),
	"pow":   pow,
	"div":   div,
}

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }

// unary wraps a one-argument math function. The domain check only applies
// to finite arguments; infinities from an overflowed iterate go straight
// through to fn.
func unary(name string, fn func(float64) float64, domain func(float64) bool) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		v, err := floatArgs(name, 1, args)
		if err != nil {
			return nil, err
		}
		if domain != nil && finite(v[0]) && !domain(v[0]) {
			return nil, fmt.Errorf("%w: %s(%g)", ErrDomain, name, v[0])
		}
		return fn(v[0]), nil
	}
}

func pow(args ...interface{}) (interface{}, error) {
	v, err := floatArgs("^", 2, args)
	if err != nil {
		return nil, err
	}
	if v[0] == 0 && v[1] < 0 {
		return nil, fmt.Errorf("%w: 0 raised to a negative power", ErrDomain)
	}
	return math.Pow(v[0], v[1]), nil
}

func div(args ...interface{}) (interface{}, error) {
	v, err := floatArgs("/", 2, args)
	if err != nil {
		return nil, err
	}
	if v[1] == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrDomain)
	}
	return v[0] / v[1], nil
}

func floatArgs(name string, n int, args []interface{}) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrParse, name, n, len(args))
	}
	v := make([]float64, n)
	for i, a := range args {
		f, ok := toFloat(a)
		if !ok {
			return nil, fmt.Errorf("%w: %s: non-numeric argument %v", ErrParse, name, a)
		}
		v[i] = f
	}
	return v, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// NewEvalFunc parses a function of x. The grammar is + - * / ^ with
// parentheses, the functions sin cos tan exp log log10 sqrt and the
// constants e and pi. ^ binds tighter than unary minus and groups right
// to left, so -x^2 is -(x^2) and 2^3^2 is 2^9.
//
// Division by zero and arguments outside a function's domain are reported
// as ErrDomain when x is finite. Once x has overflowed to an infinity the
// value, NaN included, is returned without error.
func NewEvalFunc(expr string) (Func, error) {
	src := strings.TrimSpace(expr)
	if src == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}

	norm, err := normalize(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, src, err)
	}
	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(norm, functions)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, src, err)
	}

	return &evalFunc{src: src, expr: parsed}, nil
}

func (f *evalFunc) Eval(x float64) (float64, error) {
	v, err := f.expr.Eval(point(x))
	if err != nil && !finite(x) {
		return math.NaN(), nil
	}
	if err != nil {
		if errors.Is(err, ErrDomain) || errors.Is(err, ErrParse) {
			return math.NaN(), err
		}
		return math.NaN(), fmt.Errorf("%w: %s at x=%g: %v", ErrDomain, f.src, x, err)
	}

	r, ok := toFloat(v)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %s did not evaluate to a number: %T", ErrParse, f.src, v)
	}
	if math.IsNaN(r) && finite(x) {
		return r, fmt.Errorf("%w: %s is undefined at x=%g", ErrDomain, f.src, x)
	}
	return r, nil
}

func (f *evalFunc) String() string { return f.src }

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return math.NaN(), false
	}
}

package solver

import (
	"fmt"
	"math"
	"strconv"
)

// BisectionDigits is the fixed number of decimals bisection records carry,
// independent of Params.Digits.
const BisectionDigits = 10

// minDerivative is the |f'(x)| below which a Newton step is not attempted.
const minDerivative = 1e-10

// Method identifies a root-finding method.
type Method int

const (
	MethodBisection Method = iota
	MethodNewton
	MethodFixedPoint
	MethodSecant
	MethodRegulaFalsi
)

// Methods returns all methods in the order drivers run them.
func Methods() []Method {
	return []Method{MethodBisection, MethodNewton, MethodFixedPoint, MethodSecant, MethodRegulaFalsi}
}

func (m Method) String() string {
	switch m {
	case MethodBisection:
		return "Bisection"
	case MethodNewton:
		return "Newton"
	case MethodFixedPoint:
		return "Fixed point"
	case MethodSecant:
		return "Secant"
	case MethodRegulaFalsi:
		return "Regula falsi"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// Status tags how a solver terminated.
type Status int

const (
	// Incomplete: the run was cut short by an error, such as an evaluation
	// failure or an Observer returning ErrStopped. Trace holds the records
	// produced before that.
	Incomplete Status = iota
	// Converged: the tolerance test passed, Outcome.Root is valid.
	Converged
	// BudgetExhausted: MaxIter steps ran without meeting the tolerance.
	BudgetExhausted
	// PreconditionFailed: the initial bracket has no sign change.
	PreconditionFailed
	// DegenerateStep: a step could not be computed (tiny derivative,
	// horizontal secant line).
	DegenerateStep
)

func (s Status) String() string {
	switch s {
	case Incomplete:
		return "Incomplete"
	case Converged:
		return "Converged"
	case BudgetExhausted:
		return "Iteration limit reached"
	case PreconditionFailed:
		return "Invalid bracket"
	case DegenerateStep:
		return "Degenerate step"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// RecordKind distinguishes regular steps from the synthetic rows appended
// when a solver gives up.
type RecordKind int

const (
	StepRecord RecordKind = iota
	LimitReached
	InvalidBracket
	SmallDerivative
)

func (k RecordKind) String() string {
	switch k {
	case StepRecord:
		return "step"
	case LimitReached:
		return "Max. iterations reached"
	case InvalidBracket:
		return "Invalid bracket: f(a)*f(b) >= 0"
	case SmallDerivative:
		return "Derivative too small"
	default:
		return "RecordKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Record is one row of an iteration trace.
//
// Values holds the method's five numeric columns, already rounded:
//
//	Bisection    a, b, c, f(c), (b-a)/2
//	Newton       x, f(x), f'(x), x_new, f(x_new)
//	FixedPoint   x, f(x), g(x), x_new, f(x_new)
//	Secant       x0, f(x0), f(x1), x_new, f(x_new)
//	RegulaFalsi  a, f(a), f(b), x_new, f(x_new)
//
// Synthetic rows only carry the leading columns that exist at that point.
// Step is 1-based; it is 0 on LimitReached and InvalidBracket rows.
type Record struct {
	Step   int
	Kind   RecordKind
	Values []float64
}

// Outcome is the result of one solver run.
type Outcome struct {
	Method Method
	Status Status
	// Root is meaningful only when Status == Converged.
	Root       float64
	Trace      []Record
	Iterations int
	// Residual is |f(Root)|, or |f| at the last iterate on failure.
	Residual float64
}

// Converged reports whether the run produced a root.
func (o Outcome) Converged() bool { return o.Status == Converged }

// Params configures a solver run.
type Params struct {
	Tol     float64
	MaxIter int
	// Digits is the number of decimals trace values are rounded to.
	// Bisection ignores it and uses BisectionDigits.
	Digits int
	// Observer, if set, is called after every record is appended.
	// A non-nil error aborts the run and is returned to the caller along
	// with an Incomplete outcome.
	Observer func(Method, Record) error
}

// DefaultParams returns tol = 1e-2, 50 iterations, 4 digits.
func DefaultParams() Params {
	return Params{Tol: 1e-2, MaxIter: 50, Digits: 4}
}

func (p Params) validate() error {
	if !(p.Tol > 0) || math.IsInf(p.Tol, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrBadParams, p.Tol)
	}
	if p.MaxIter <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrBadParams, p.MaxIter)
	}
	if p.Digits < 0 {
		return fmt.Errorf("%w: digits must be non-negative, got %d", ErrBadParams, p.Digits)
	}
	return nil
}

// Round rounds x to the given number of decimals, halfway cases decided by
// the exact binary value. NaN and infinities pass through.
func Round(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', digits, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// tracer accumulates the append-only trace of a single run.
type tracer struct {
	method Method
	digits int
	notify func(Method, Record) error
	trace  []Record
}

func newTracer(m Method, p Params, digits int) *tracer {
	return &tracer{method: m, digits: digits, notify: p.Observer}
}

func (t *tracer) add(step int, kind RecordKind, values ...float64) error {
	rounded := make([]float64, len(values))
	for i, v := range values {
		rounded[i] = Round(v, t.digits)
	}
	rec := Record{Step: step, Kind: kind, Values: rounded}
	t.trace = append(t.trace, rec)
	if t.notify != nil {
		return t.notify(t.method, rec)
	}
	return nil
}

func (t *tracer) outcome(status Status, root float64, iterations int, residual float64) Outcome {
	return Outcome{
		Method:     t.method,
		Status:     status,
		Root:       root,
		Trace:      t.trace,
		Iterations: iterations,
		Residual:   residual,
	}
}

// abort ends a run on err, keeping the records produced so far.
func (t *tracer) abort(err error) (Outcome, error) {
	steps := 0
	for _, r := range t.trace {
		if r.Kind == StepRecord {
			steps++
		}
	}
	return t.outcome(Incomplete, 0, steps, math.NaN()), err
}

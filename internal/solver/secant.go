package solver

import (
	"fmt"
	"math"
)

// Secant runs the secant method seeded with x0 = a, x1 = b.
//
// If the rounded values f(x0) and f(x1) coincide the step is undefined:
// Secant returns an error wrapping ErrDegenerateSecant together with a
// DegenerateStep outcome holding the records produced so far.
func Secant(f Func, a, b float64, p Params) (Outcome, error) {
	t := newTracer(MethodSecant, p, p.Digits)
	if err := p.validate(); err != nil {
		return t.abort(err)
	}

	x0, x1 := a, b
	for k := 1; k <= p.MaxIter; k++ {
		fx0, err := eval(f, x0, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		fx1, err := eval(f, x1, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		if fx1 == fx0 {
			return t.outcome(DegenerateStep, 0, k-1, math.Abs(fx1)),
				fmt.Errorf("%w: f(%g) = f(%g) = %g at step %d", ErrDegenerateSecant, x0, x1, fx1, k)
		}

		xNew := Round(x1-fx1*(x1-x0)/(fx1-fx0), p.Digits)
		fxNew, err := eval(f, xNew, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		if err := t.add(k, StepRecord, x0, fx0, fx1, xNew, fxNew); err != nil {
			return t.abort(err)
		}

		if math.Abs(xNew-x1) < p.Tol || math.Abs(fxNew) < p.Tol {
			return t.outcome(Converged, xNew, k, math.Abs(fxNew)), nil
		}
		x0, x1 = x1, xNew
	}

	fx0, err := f.Eval(x0)
	if err != nil {
		return t.abort(err)
	}
	fx1, err := f.Eval(x1)
	if err != nil {
		return t.abort(err)
	}
	if err := t.add(0, LimitReached, x0, fx0, fx1); err != nil {
		return t.abort(err)
	}
	return t.outcome(BudgetExhausted, 0, p.MaxIter, math.Abs(fx1)), nil
}

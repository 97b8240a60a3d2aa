package solver

import (
	"fmt"
	"math"
)

// RegulaFalsi finds a root of f in [a, b] by linear interpolation between
// the bracket endpoints.
//
// Unlike Bisect, a bracket without a sign change is an error: RegulaFalsi
// returns an error wrapping ErrInvalidBracket before any record is produced,
// alongside a PreconditionFailed outcome with an empty trace.
func RegulaFalsi(f Func, a, b float64, p Params) (Outcome, error) {
	t := newTracer(MethodRegulaFalsi, p, p.Digits)
	if err := p.validate(); err != nil {
		return t.abort(err)
	}

	fa, err := eval(f, a, p.Digits)
	if err != nil {
		return t.abort(err)
	}
	fb, err := eval(f, b, p.Digits)
	if err != nil {
		return t.abort(err)
	}
	if fa*fb > 0 {
		return t.outcome(PreconditionFailed, 0, 0, math.Inf(1)),
			fmt.Errorf("%w: f(%g) = %g, f(%g) = %g", ErrInvalidBracket, a, fa, b, fb)
	}

	var fxNew float64
	for k := 1; k <= p.MaxIter; k++ {
		if fb == fa {
			return t.outcome(DegenerateStep, 0, k-1, math.Abs(fa)),
				fmt.Errorf("%w: f(%g) = f(%g) = %g at step %d", ErrFlatBracket, a, b, fa, k)
		}

		xNew := Round((a*fb-b*fa)/(fb-fa), p.Digits)
		fxNew, err = eval(f, xNew, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		if err := t.add(k, StepRecord, a, fa, fb, xNew, fxNew); err != nil {
			return t.abort(err)
		}

		if math.Abs(fxNew) < p.Tol || math.Abs(b-a) < p.Tol {
			return t.outcome(Converged, xNew, k, math.Abs(fxNew)), nil
		}

		// keep f(a)*f(b) <= 0
		if fa*fxNew < 0 {
			b, fb = xNew, fxNew
		} else {
			a, fa = xNew, fxNew
		}
	}

	if err := t.add(0, LimitReached, a, fa, fb); err != nil {
		return t.abort(err)
	}
	return t.outcome(BudgetExhausted, 0, p.MaxIter, math.Abs(fxNew)), nil
}

package solver

import "math"

// FixedPoint iterates x <- g(x) from x0, where a fixed point of g is a root
// of f. Convergence of g is not checked: an expanding map simply runs out
// of iterations, however large its iterates grow.
func FixedPoint(f, g Func, x0 float64, p Params) (Outcome, error) {
	t := newTracer(MethodFixedPoint, p, p.Digits)
	if err := p.validate(); err != nil {
		return t.abort(err)
	}

	x := x0
	for k := 1; k <= p.MaxIter; k++ {
		fx, err := eval(f, x, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		gx, err := eval(g, x, p.Digits)
		if err != nil {
			return t.abort(err)
		}

		xNew := gx
		fxNew, err := eval(f, xNew, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		if err := t.add(k, StepRecord, x, fx, gx, xNew, fxNew); err != nil {
			return t.abort(err)
		}

		if math.Abs(xNew-x) < p.Tol || math.Abs(fxNew) < p.Tol {
			return t.outcome(Converged, xNew, k, math.Abs(fxNew)), nil
		}
		x = xNew
	}

	fx, err := f.Eval(x)
	if err != nil {
		return t.abort(err)
	}
	gx, err := g.Eval(x)
	if err != nil {
		return t.abort(err)
	}
	if err := t.add(0, LimitReached, x, fx, gx); err != nil {
		return t.abort(err)
	}
	return t.outcome(BudgetExhausted, 0, p.MaxIter, math.Abs(fx)), nil
}

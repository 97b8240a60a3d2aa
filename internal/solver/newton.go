package solver

import "math"

// Newton runs the Newton-Raphson iteration x <- x - f(x)/f'(x) from x0.
//
// It stops when either the step |x_new - x| or the residual |f(x_new)|
// drops below p.Tol. A derivative smaller than 1e-10 in magnitude ends the
// run with DegenerateStep; it is not retried.
func Newton(f, df Func, x0 float64, p Params) (Outcome, error) {
	t := newTracer(MethodNewton, p, p.Digits)
	if err := p.validate(); err != nil {
		return t.abort(err)
	}

	x := x0
	for k := 1; k <= p.MaxIter; k++ {
		fx, err := eval(f, x, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		dfx, err := eval(df, x, p.Digits)
		if err != nil {
			return t.abort(err)
		}

		if math.Abs(dfx) < minDerivative {
			if err := t.add(k, SmallDerivative, x, fx, dfx); err != nil {
				return t.abort(err)
			}
			return t.outcome(DegenerateStep, 0, k, math.Abs(fx)), nil
		}

		xNew := Round(x-fx/dfx, p.Digits)
		fxNew, err := eval(f, xNew, p.Digits)
		if err != nil {
			return t.abort(err)
		}
		if err := t.add(k, StepRecord, x, fx, dfx, xNew, fxNew); err != nil {
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
	dfx, err := df.Eval(x)
	if err != nil {
		return t.abort(err)
	}
	if err := t.add(0, LimitReached, x, fx, dfx); err != nil {
		return t.abort(err)
	}
	return t.outcome(BudgetExhausted, 0, p.MaxIter, math.Abs(fx)), nil
}

// eval evaluates f at x and rounds the result.
func eval(f Func, x float64, digits int) (float64, error) {
	v, err := f.Eval(x)
	if err != nil {
		return v, err
	}
	return Round(v, digits), nil
}

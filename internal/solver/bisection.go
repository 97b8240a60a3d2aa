package solver

import "math"

// Bisect finds a root of f in [a, b] by repeated halving.
//
// A bracket without a sign change is not an error: the outcome is
// PreconditionFailed with a single InvalidBracket record and an infinite
// residual. Records are rounded to BisectionDigits regardless of p.Digits.
func Bisect(f Func, a, b float64, p Params) (Outcome, error) {
	t := newTracer(MethodBisection, p, BisectionDigits)
	if err := p.validate(); err != nil {
		return t.abort(err)
	}

	fa, err := f.Eval(a)
	if err != nil {
		return t.abort(err)
	}
	fb, err := f.Eval(b)
	if err != nil {
		return t.abort(err)
	}
	if fa*fb >= 0 {
		if err := t.add(0, InvalidBracket); err != nil {
			return t.abort(err)
		}
		return t.outcome(PreconditionFailed, 0, 0, math.Inf(1)), nil
	}

	for k := 1; k <= p.MaxIter; k++ {
		c := (a + b) / 2
		fc, err := f.Eval(c)
		if err != nil {
			return t.abort(err)
		}
		half := (b - a) / 2
		if err := t.add(k, StepRecord, a, b, c, fc, half); err != nil {
			return t.abort(err)
		}

		if math.Abs(half) < p.Tol {
			return t.outcome(Converged, c, k, math.Abs(fc)), nil
		}

		if fa*fc < 0 {
			b = c
		} else {
			a, fa = c, fc
		}
	}

	c := (a + b) / 2
	fc, err := f.Eval(c)
	if err != nil {
		return t.abort(err)
	}
	if err := t.add(0, LimitReached, a, b, c, fc, (b-a)/2); err != nil {
		return t.abort(err)
	}
	return t.outcome(BudgetExhausted, 0, p.MaxIter, math.Abs(fc)), nil
}

package solver

import "gonum.org/v1/gonum/diff/fd"

// NumericDerivative approximates f' with a central finite difference.
// It is used when a case supplies no derivative expression.
func NumericDerivative(f Func) Func {
	return derivative{f: f}
}

type derivative struct {
	f Func
}

func (d derivative) Eval(x float64) (float64, error) {
	var evalErr error
	fn := func(v float64) float64 {
		y, err := d.f.Eval(v)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return y
	}
	df := fd.Derivative(fn, x, &fd.Settings{Formula: fd.Central})
	if evalErr != nil {
		return df, evalErr
	}
	return df, nil
}

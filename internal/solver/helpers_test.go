package solver_test

import (
	"math"

	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// Shared test functions.
var (
	sqrt2Poly  = solver.Fn(func(x float64) float64 { return x*x - 2 })
	sqrt2Deriv = solver.Fn(func(x float64) float64 { return 2 * x })
	// Newton's map for x^2 - 2, used as a contracting fixed-point map.
	sqrt2Map = solver.Fn(func(x float64) float64 { return (x + 2/x) / 2 })
	noRoot   = solver.Fn(func(x float64) float64 { return x*x + 1 })
	sine     = solver.Fn(math.Sin)
)

func params(tol float64, digits, maxIter int) solver.Params {
	return solver.Params{Tol: tol, Digits: digits, MaxIter: maxIter}
}

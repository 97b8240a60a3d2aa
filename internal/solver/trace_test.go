package solver_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.4167, solver.Round(1.41666666, 4))
	assert.Equal(t, 0.007, solver.Round(2.00703889-2, 4))
	assert.Equal(t, 2.0, solver.Round(2.0000000001, 4))
	assert.Equal(t, -0.0004272461, solver.Round(-0.00042724609375, 10))
	assert.Equal(t, 3.0, solver.Round(2.6, 0))
	assert.True(t, math.IsInf(solver.Round(math.Inf(-1), 4), -1))
	assert.True(t, math.IsNaN(solver.Round(math.NaN(), 4)))
}

func TestDefaultParams(t *testing.T) {
	p := solver.DefaultParams()
	assert.Equal(t, 1e-2, p.Tol)
	assert.Equal(t, 50, p.MaxIter)
	assert.Equal(t, 4, p.Digits)
	assert.Nil(t, p.Observer)
}

func TestMethodNames(t *testing.T) {
	names := make([]string, 0, 5)
	for _, m := range solver.Methods() {
		names = append(names, m.String())
	}
	assert.Equal(t, []string{"Bisection", "Newton", "Fixed point", "Secant", "Regula falsi"}, names)
	assert.Equal(t, "Converged", solver.Converged.String())
	assert.Equal(t, "Incomplete", solver.Status(0).String())
	assert.Equal(t, "Iteration limit reached", solver.BudgetExhausted.String())
}

// runAll runs every method on x^2 - 2 with one set of params.
func runAll(p solver.Params) ([]solver.Outcome, error) {
	var outs []solver.Outcome
	for _, run := range []func() (solver.Outcome, error){
		func() (solver.Outcome, error) { return solver.Bisect(sqrt2Poly, 0, 2, p) },
		func() (solver.Outcome, error) { return solver.Newton(sqrt2Poly, sqrt2Deriv, 1, p) },
		func() (solver.Outcome, error) { return solver.FixedPoint(sqrt2Poly, sqrt2Map, 1, p) },
		func() (solver.Outcome, error) { return solver.Secant(sqrt2Poly, 1, 2, p) },
		func() (solver.Outcome, error) { return solver.RegulaFalsi(sqrt2Poly, 0, 2, p) },
	} {
		out, err := run()
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// TestSolvers_Deterministic reruns every solver sequentially and concurrently.
func TestSolvers_Deterministic(t *testing.T) {
	want, err := runAll(solver.DefaultParams())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]solver.Outcome, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = runAll(solver.DefaultParams())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	for _, o := range want {
		assert.LessOrEqual(t, o.Iterations, solver.DefaultParams().MaxIter)
		if o.Converged() {
			assert.Len(t, o.Trace, o.Iterations, o.Method.String())
		}
	}
}

// TestObserver_SeesEveryRecord checks the callback sees records in order and can stop a run.
func TestObserver_SeesEveryRecord(t *testing.T) {
	var seen []solver.Record
	p := solver.DefaultParams()
	p.Observer = func(m solver.Method, r solver.Record) error {
		assert.Equal(t, solver.MethodBisection, m)
		seen = append(seen, r)
		return nil
	}
	out, err := solver.Bisect(sqrt2Poly, 0, 2, p)
	require.NoError(t, err)
	assert.Equal(t, out.Trace, seen)

	calls := 0
	p.Observer = func(solver.Method, solver.Record) error {
		calls++
		if calls == 2 {
			return solver.ErrStopped
		}
		return nil
	}
	stopped, err := solver.Newton(noRoot, sqrt2Deriv, 0.5, p)
	assert.True(t, errors.Is(err, solver.ErrStopped))
	assert.Equal(t, 2, calls)
	assert.Equal(t, solver.Incomplete, stopped.Status)
	assert.Len(t, stopped.Trace, 2)
}

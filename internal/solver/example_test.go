package solver_test

import (
	"fmt"

	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// ExampleNewton finds sqrt(2) from x0 = 1 with the default parameters.
func ExampleNewton() {
	f, _ := solver.NewEvalFunc("x^2 - 2")
	df, _ := solver.NewEvalFunc("2*x")

	out, err := solver.Newton(f, df, 1, solver.DefaultParams())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range out.Trace {
		fmt.Println(r.Step, r.Values)
	}
	fmt.Println(out.Status, out.Root, out.Iterations)
	// Output:
	// 1 [1 -1 2 1.5 0.25]
	// 2 [1.5 0.25 3 1.4167 0.007]
	// Converged 1.4167 2
}

// ExampleBisect shows the failure outcome for a bracket without a sign change.
func ExampleBisect() {
	f, _ := solver.NewEvalFunc("x^2 + 1")

	out, err := solver.Bisect(f, -1, 1, solver.DefaultParams())
	fmt.Println(err, out.Status, out.Trace[0].Kind, out.Residual)
	// Output:
	// <nil> Invalid bracket Invalid bracket: f(a)*f(b) >= 0 +Inf
}

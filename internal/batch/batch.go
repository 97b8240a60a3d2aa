// Package batch runs every root-finding method on the cases of an input
// file and writes the traces and a comparison table to an output file.
package batch

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Giulia1955/Trabalho-Computacional/internal/casefile"
	"github.com/Giulia1955/Trabalho-Computacional/internal/report"
	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// ErrNoCases is returned by Process when the input holds no usable line.
var ErrNoCases = errors.New("batch: input has no cases")

// Result holds the outcomes of all methods for one case, in solver.Methods() order.
type Result struct {
	Case     casefile.Case
	Outcomes []solver.Outcome
}

// Solve builds f, g and f' for c and runs every method with c's tolerance
// and digits. Invalid brackets and degenerate steps become failed outcomes;
// parse and evaluation errors fail the whole case. observe may be nil.
func Solve(c casefile.Case, maxIter int, observe func(solver.Method, solver.Record) error) (Result, error) {
	f, err := solver.NewEvalFunc(c.Func)
	if err != nil {
		return Result{}, fmt.Errorf("function: %w", err)
	}
	g, err := solver.NewEvalFunc(c.Iter)
	if err != nil {
		return Result{}, fmt.Errorf("iteration function: %w", err)
	}
	var df solver.Func
	if c.NumericDeriv() {
		df = solver.NumericDerivative(f)
	} else if df, err = solver.NewEvalFunc(c.Deriv); err != nil {
		return Result{}, fmt.Errorf("derivative: %w", err)
	}

	p := solver.Params{Tol: c.Tol, MaxIter: maxIter, Digits: c.Digits, Observer: observe}
	res := Result{Case: c}
	for _, m := range solver.Methods() {
		var (
			out solver.Outcome
			err error
		)
		switch m {
		case solver.MethodBisection:
			out, err = solver.Bisect(f, c.A, c.B, p)
		case solver.MethodNewton:
			out, err = solver.Newton(f, df, c.X0, p)
		case solver.MethodFixedPoint:
			out, err = solver.FixedPoint(f, g, c.X0, p)
		case solver.MethodSecant:
			out, err = solver.Secant(f, c.A, c.B, p)
		case solver.MethodRegulaFalsi:
			out, err = solver.RegulaFalsi(f, c.A, c.B, p)
		}
		if err != nil && !recoverable(err) {
			return res, fmt.Errorf("%s: %w", m, err)
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res, nil
}

// recoverable reports whether a solver error still left a usable outcome.
func recoverable(err error) bool {
	return errors.Is(err, solver.ErrInvalidBracket) ||
		errors.Is(err, solver.ErrDegenerateSecant) ||
		errors.Is(err, solver.ErrFlatBracket)
}

// Process reads cases from in, solves each one and writes the report to out.
// A failing case is written to the report and logged; processing continues
// with the next case.
func Process(in, out string, maxIter int) error {
	cases, bad, err := casefile.ReadFile(in)
	if err != nil {
		return fmt.Errorf("batch: reading cases: %w", err)
	}
	if len(cases) == 0 && len(bad) == 0 {
		log.Println("warning: input file is empty or has no valid cases")
		return ErrNoCases
	}

	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	defer w.Close()

	if err := Write(w, cases, bad, maxIter); err != nil {
		return err
	}
	return w.Close()
}

// Write solves cases and writes their report, interleaving the line errors
// in file order.
func Write(w io.Writer, cases []casefile.Case, bad []*casefile.LineError, maxIter int) error {
	for len(cases) > 0 || len(bad) > 0 {
		if len(bad) > 0 && (len(cases) == 0 || bad[0].Line < cases[0].Line) {
			e := bad[0]
			bad = bad[1:]
			log.Printf("line %d: %v", e.Line, e.Err)
			if err := writeFailure(w, e.Line, e.Raw, e.Err); err != nil {
				return err
			}
			continue
		}

		c := cases[0]
		cases = cases[1:]
		log.Printf("processing: func='%s', a=%g, b=%g, x0=%g, tol=%g", c.Func, c.A, c.B, c.X0, c.Tol)
		res, err := Solve(c, maxIter, nil)
		if err != nil {
			log.Printf("line %d: %v", c.Line, err)
			if err := writeFailure(w, c.Line, c.Raw, err); err != nil {
				return err
			}
			continue
		}
		if err := WriteResult(w, res); err != nil {
			return err
		}
		log.Printf("processed: %s", c.Func)
	}
	return nil
}

// WriteResult writes the banner, the five trace tables and the comparison
// table of one case.
func WriteResult(w io.Writer, res Result) error {
	c := res.Case
	rule := strings.Repeat("=", 60)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\nFunction: %s\n%s\n", rule, c.Func, rule)
	for _, o := range res.Outcomes {
		fmt.Fprintf(&sb, "\n=== %s (%s, tol=%g) ===\n", o.Method, startLabel(o.Method, c), c.Tol)
		sb.WriteString(report.Trace(o))
		sb.WriteByte('\n')
	}
	sb.WriteString("\n=== Comparison ===\n")
	sb.WriteString(report.Comparison(res.Outcomes))
	fmt.Fprintf(&sb, "\n%s\n", strings.Repeat("-", 60))

	_, err := io.WriteString(w, sb.String())
	return err
}

func startLabel(m solver.Method, c casefile.Case) string {
	switch m {
	case solver.MethodNewton, solver.MethodFixedPoint:
		return fmt.Sprintf("x0=%g", c.X0)
	}
	return fmt.Sprintf("a=%g, b=%g", c.A, c.B)
}

func writeFailure(w io.Writer, line int, raw string, err error) error {
	_, werr := fmt.Fprintf(w, "\nLine %d: error processing '%s': %v\n", line, raw, err)
	return werr
}

// Package report renders iteration traces and method comparisons as
// plain-text tables.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// NA fills cells that have no value.
const NA = "N/A"

// Columns returns the table headers for a method's trace.
func Columns(m solver.Method) []string {
	switch m {
	case solver.MethodBisection:
		return []string{"Iter", "a", "b", "c", "f(c)", "Est. error"}
	case solver.MethodNewton:
		return []string{"Iter", "x", "f(x)", "f'(x)", "x_new", "f(x_new)"}
	case solver.MethodFixedPoint:
		return []string{"Iter", "x", "f(x)", "g(x)", "x_new", "f(x_new)"}
	case solver.MethodSecant:
		return []string{"Iter", "x0", "f(x0)", "f(x1)", "x_new", "f(x_new)"}
	case solver.MethodRegulaFalsi:
		return []string{"Iter", "a", "f(a)", "f(b)", "x_new", "f(x_new)"}
	}
	return []string{"Iter", "v1", "v2", "v3", "v4", "v5"}
}

// Cells formats a record as one table row: the step number (or the label of
// a synthetic row) followed by five value cells.
func Cells(r solver.Record) []string {
	cells := make([]string, 0, 6)
	if r.Kind == solver.StepRecord {
		cells = append(cells, strconv.Itoa(r.Step))
	} else {
		cells = append(cells, r.Kind.String())
	}
	for _, v := range r.Values {
		cells = append(cells, FormatFloat(v))
	}
	for len(cells) < 6 {
		cells = append(cells, NA)
	}
	return cells
}

// FormatFloat prints the shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Trace renders the iteration table of one outcome.
func Trace(o solver.Outcome) string {
	rows := make([][]string, 0, len(o.Trace))
	for _, r := range o.Trace {
		rows = append(rows, Cells(r))
	}
	return Table(Columns(o.Method), rows)
}

// Comparison renders one summary row per outcome.
func Comparison(outs []solver.Outcome) string {
	headers := []string{"Method", "Approx. root", "Iterations", "Final error |f(root)|", "Status"}
	rows := make([][]string, 0, len(outs))
	for _, o := range outs {
		root := NA
		status := "Failed"
		if o.Converged() {
			root = fmt.Sprintf("%.10f", o.Root)
			status = "Converged"
		}
		rows = append(rows, []string{
			o.Method.String(),
			root,
			strconv.Itoa(o.Iterations),
			fmt.Sprintf("%.2e", o.Residual),
			status + " (" + o.Status.String() + ")",
		})
	}
	return Table(headers, rows)
}

// Table lays out rows under headers in left-aligned columns separated by
// " | ". Missing cells print as N/A.
func Table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return "No iterations performed."
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], len(cell(row, i)))
		}
	}

	var sb strings.Builder
	line := func(cells func(i int) string) {
		var l strings.Builder
		for i, w := range widths {
			if i > 0 {
				l.WriteString(" | ")
			}
			l.WriteString(pad(cells(i), w))
		}
		sb.WriteString(strings.TrimRight(l.String(), " "))
		sb.WriteByte('\n')
	}

	line(func(i int) string { return headers[i] })
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("-+-")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		line(func(i int) string { return cell(row, i) })
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func cell(row []string, i int) string {
	if i < len(row) && row[i] != "" {
		return row[i]
	}
	return NA
}

func pad(s string, w int) string {
	if n := w - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// Package casefile reads the batch input file: one root-finding case per
// line, eight comma-separated fields
//
//	f, g, f', a, b, x0, tol, digits
//
// where g is the fixed-point iteration map and f' the derivative used by
// Newton's method. An empty f' (or "-") asks for a numerical derivative.
package casefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Fields is the number of fields on every case line.
const Fields = 8

// ErrBadLine marks a line that could not be turned into a Case.
var ErrBadLine = errors.New("casefile: invalid line")

// Case is one parsed input line.
type Case struct {
	Line   int
	Raw    string
	Func   string
	Iter   string
	Deriv  string
	A, B   float64
	X0     float64
	Tol    float64
	Digits int
}

// NumericDeriv reports whether the case leaves the derivative to be approximated.
func (c Case) NumericDeriv() bool {
	return c.Deriv == "" || c.Deriv == "-"
}

// LineError is a per-line parse failure.
type LineError struct {
	Line int
	Raw  string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ReadFile parses the case file at path.
func ReadFile(path string) ([]Case, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses cases from r. Blank lines and lines starting with '#' are
// skipped. Malformed lines are returned as LineErrors; the remaining lines
// still parse. The returned error is reserved for I/O failures.
func Read(r io.Reader) ([]Case, []*LineError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	var (
		cases []Case
		bad   []*LineError
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseLine(line)
		if err != nil {
			bad = append(bad, &LineError{Line: i + 1, Raw: line, Err: err})
			continue
		}
		c.Line = i + 1
		c.Raw = line
		cases = append(cases, c)
	}
	return cases, bad, nil
}

func parseLine(line string) (Case, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	fields, err := cr.Read()
	if err != nil {
		return Case{}, fmt.Errorf("%w: %v", ErrBadLine, err)
	}
	if len(fields) != Fields {
		return Case{}, fmt.Errorf("%w: expected %d fields, found %d", ErrBadLine, Fields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	c := Case{Func: fields[0], Iter: fields[1], Deriv: fields[2]}
	nums := []struct {
		name string
		dst  *float64
	}{
		{"a", &c.A}, {"b", &c.B}, {"x0", &c.X0}, {"tol", &c.Tol},
	}
	for i, n := range nums {
		v, err := parseFloat(fields[3+i])
		if err != nil {
			return Case{}, fmt.Errorf("%w: %s: %v", ErrBadLine, n.name, err)
		}
		*n.dst = v
	}
	digits, err := strconv.Atoi(fields[7])
	if err != nil {
		return Case{}, fmt.Errorf("%w: digits: %q is not an integer", ErrBadLine, fields[7])
	}
	c.Digits = digits

	if c.Func == "" {
		return Case{}, fmt.Errorf("%w: empty function", ErrBadLine)
	}
	return c, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to a number", s)
	}
	return v, nil
}

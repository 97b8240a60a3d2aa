package server

import (
	"context"
	"sync"
	"time"

	"github.com/Giulia1955/Trabalho-Computacional/internal/casefile"
	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// RunParams is the body of POST /start.
type RunParams struct {
	Func      string  `json:"func"`
	IterFunc  string  `json:"iterFunc"`
	DerivFunc string  `json:"derivFunc"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	X0        float64 `json:"x0"`
	Tol       float64 `json:"tol"`
	Digits    *int    `json:"digits"`
	MaxIter   int     `json:"maxIter"`
}

func (p RunParams) toCase() casefile.Case {
	c := casefile.Case{
		Func:  p.Func,
		Iter:  p.IterFunc,
		Deriv: p.DerivFunc,
		A:     p.A,
		B:     p.B,
		X0:    p.X0,
		Tol:   p.Tol,
	}
	if p.Digits != nil {
		c.Digits = *p.Digits
	}
	return c
}

// methodRecord is one trace row tagged with its method.
type methodRecord struct {
	Method solver.Method
	Record solver.Record
}

// RunState is the state of one run.
type RunState struct {
	ID        string
	Params    RunParams
	CreatedAt time.Time
	Cancel    context.CancelFunc

	mu       sync.Mutex
	records  []methodRecord
	outcomes []solver.Outcome
	err      string
	done     bool
}

func (rs *RunState) addRecord(m solver.Method, r solver.Record) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.records = append(rs.records, methodRecord{Method: m, Record: r})
}

func (rs *RunState) finish(outcomes []solver.Outcome, err string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.outcomes = outcomes
	rs.err = err
	rs.done = err == ""
}

func (rs *RunState) snapshot() []methodRecord {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]methodRecord(nil), rs.records...)
}

func (s *Server) saveRun(rs *RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rs.ID] = rs
}

func (s *Server) getRun(id string) *RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Giulia1955/Trabalho-Computacional/internal/batch"
	"github.com/Giulia1955/Trabalho-Computacional/internal/report"
	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

// samples is the number of points of f sent back for plotting.
const samples = 400

// recordJSON is a trace row as sent to clients. Values travel as text
// because traces may hold infinities.
type recordJSON struct {
	Step  int      `json:"step"`
	Kind  string   `json:"kind"`
	Cells []string `json:"cells"`
}

type summaryJSON struct {
	Method     string   `json:"method"`
	Status     string   `json:"status"`
	Converged  bool     `json:"converged"`
	Root       *float64 `json:"root"`
	Iterations int      `json:"iterations"`
	Residual   string   `json:"residual"`
}

func toRecordJSON(r solver.Record) recordJSON {
	return recordJSON{Step: r.Step, Kind: r.Kind.String(), Cells: report.Cells(r)}
}

func summarize(outs []solver.Outcome) []summaryJSON {
	list := make([]summaryJSON, 0, len(outs))
	for _, o := range outs {
		s := summaryJSON{
			Method:     o.Method.String(),
			Status:     o.Status.String(),
			Converged:  o.Converged(),
			Iterations: o.Iterations,
			Residual:   fmt.Sprintf("%.2e", o.Residual),
		}
		if o.Converged() {
			root := o.Root
			s.Root = &root
		}
		list = append(list, s)
	}
	return list
}

func (s *Server) publish(id string, payload map[string]any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("run %s: encoding event: %v", id, err)
		return
	}
	s.hub.Publish(id, string(msg))
}

// StartRun starts solving a case with all five methods.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	def := solver.DefaultParams()
	if p.MaxIter <= 0 {
		p.MaxIter = def.MaxIter
	}
	if p.Tol <= 0 {
		p.Tol = def.Tol
	}
	if p.Digits == nil || *p.Digits < 0 {
		d := def.Digits
		p.Digits = &d
	}
	if !(p.A < p.B) {
		http.Error(w, "a < b required", http.StatusBadRequest)
		return
	}

	f, err := solver.NewEvalFunc(p.Func)
	if err != nil {
		http.Error(w, "invalid function: "+err.Error(), http.StatusBadRequest)
		return
	}

	// sample f for the plot; points outside the domain are null
	xs := make([]float64, samples)
	ys := make([]*float64, samples)
	h := (p.B - p.A) / float64(samples-1)
	for i := 0; i < samples; i++ {
		x := p.A + float64(i)*h
		xs[i] = x
		y, err := f.Eval(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		ys[i] = &y
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Params:    p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	s.saveRun(rs)

	go s.run(ctx, rs)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id": id,
		"xs": xs,
		"ys": ys,
	})
}

func (s *Server) run(ctx context.Context, rs *RunState) {
	defer rs.Cancel()
	id := rs.ID
	s.publish(id, map[string]any{"type": "start", "id": id})

	observe := func(m solver.Method, rec solver.Record) error {
		select {
		case <-ctx.Done():
			return solver.ErrStopped
		default:
		}

		rs.addRecord(m, rec)
		s.publish(id, map[string]any{
			"type":   "record",
			"method": m.String(),
			"record": toRecordJSON(rec),
		})
		return nil
	}

	res, err := batch.Solve(rs.Params.toCase(), rs.Params.MaxIter, observe)
	if err != nil {
		if errors.Is(err, solver.ErrStopped) {
			rs.finish(nil, "stopped")
			s.publish(id, map[string]any{"type": "stopped"})
			return
		}

		msg := "evaluation failed: " + err.Error()
		log.Printf("run %s: %s", id, msg)
		rs.finish(nil, msg)
		s.publish(id, map[string]any{"type": "error", "err": msg})
		return
	}

	rs.finish(res.Outcomes, "")
	s.publish(id, map[string]any{
		"type":       "done",
		"comparison": summarize(res.Outcomes),
	})
}

// StopRun cancels a run.
func (s *Server) StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	rs, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Result returns the state of a run and, once finished, its comparison.
func (s *Server) Result(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.lookup(w, r)
	if !ok {
		return
	}

	rs.mu.Lock()
	body := map[string]any{
		"id":         rs.ID,
		"done":       rs.done,
		"err":        rs.err,
		"records":    len(rs.records),
		"comparison": summarize(rs.outcomes),
	}
	rs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// ExportCSV writes every trace row of a run as CSV.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+rs.ID+".csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"method", "iter", "v1", "v2", "v3", "v4", "v5"})
	for _, mr := range rs.snapshot() {
		_ = cw.Write(append([]string{mr.Method.String()}, report.Cells(mr.Record)...))
	}
}

// Stream is the SSE stream of a run's events.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.hub.Subscribe(id)
	defer cancel()
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*RunState, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return nil, false
	}
	rs := s.getRun(id)
	if rs == nil {
		http.Error(w, "unknown id", http.StatusNotFound)
		return nil, false
	}
	return rs, true
}

package server

import (
	"net/http"
	"path/filepath"
	"sync"

	"github.com/Giulia1955/Trabalho-Computacional/internal/sse"
)

// Server keeps the runs started through the HTTP API.
type Server struct {
	hub    *sse.Hub
	static string

	mu   sync.Mutex
	runs map[string]*RunState
}

// New returns a server that serves its pages from the static directory.
func New(static string) *Server {
	return &Server{
		hub:    sse.NewHub(64),
		static: static,
		runs:   map[string]*RunState{},
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("/start", s.StartRun)
	mux.HandleFunc("/stop", s.StopRun)
	mux.HandleFunc("/stream", s.Stream)
	mux.HandleFunc("/export", s.ExportCSV)
	mux.HandleFunc("/result", s.Result)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.static, "index.html"))
	})
	mux.HandleFunc("/help", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.static, "help.html"))
	})

	return mux
}

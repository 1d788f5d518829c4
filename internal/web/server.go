// Package web serves a small status page for checking the feeder from a
// phone on the home network.
package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/sweeney/feed-reminder/internal/status"
)

// Server wraps an http.Server exposing the status page and JSON endpoint.
type Server struct {
	tracker *status.Tracker
	httpSrv *http.Server
	tmpl    *template.Template
	now     func() time.Time
}

// NewServer builds a server listening on addr (e.g. ":8080").
func NewServer(addr string, tracker *status.Tracker) (*Server, error) {
	tmpl, err := template.New("status").Parse(statusPage)
	if err != nil {
		return nil, fmt.Errorf("parse status template: %w", err)
	}
	s := &Server{
		tracker: tracker,
		tmpl:    tmpl,
		now:     time.Now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status.json", s.handleJSON)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s, nil
}

// Start serves in a background goroutine. Errors other than Shutdown are
// logged, not fatal: losing the page does not stop the feeder loop.
func (s *Server) Start() {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("web: server stopped: %v", err)
		}
	}()
}

// Shutdown stops the server, waiting up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot(s.now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, newPageData(snap)); err != nil {
		log.Printf("web: render status page: %v", err)
	}
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot(s.now())
	data, err := status.FormatJSON(snap)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

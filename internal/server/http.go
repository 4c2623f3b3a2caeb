// Package server exposes the blog views over HTTP.
package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/blogloom/internal/source"
	"github.com/KaramelBytes/blogloom/internal/view"
)

// ControllerFactory returns a fresh controller for one request.
type ControllerFactory func() (*view.Controller, error)

// Server serves the home, about and post pages. Each request gets its own
// controller, so no view state is shared between clients.
type Server struct {
	newController ControllerFactory
	logger        *log.Logger
}

// New returns a server. A nil logger uses the standard logger.
func New(factory ControllerFactory, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{newController: factory, logger: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /posts/{file...}", s.handlePost)
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("http: %s %s status=%d dur=%s request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), id)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w)
	if !ok {
		return
	}
	s.render(w, r, c, http.StatusOK)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w)
	if !ok {
		return
	}
	_ = c.Navigate("about")
	s.render(w, r, c, http.StatusOK)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w)
	if !ok {
		return
	}
	file := r.PathValue("file")
	status := http.StatusOK
	if err := c.OpenPost(r.Context(), file); err != nil {
		s.logger.Printf("http: load post %q: %v", file, err)
		status = statusFor(err)
	}
	s.render(w, r, c, status)
}

func (s *Server) controller(w http.ResponseWriter) (*view.Controller, bool) {
	c, err := s.newController()
	if err != nil {
		s.logger.Printf("http: build controller: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

// render buffers the page so a template failure can still become a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c *view.Controller, status int) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.logger.Printf("http: render %s: %v", c.Current(), err)
		if errors.Is(err, view.ErrRender) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if status == http.StatusOK {
			status = statusFor(err)
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, source.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Package debugserver exposes an optional HTTP surface for inspecting
// a running dashboard: health, Prometheus metrics, a JSON state
// snapshot, and a plain-text capture of the last rendered frame. The
// runtime stays single-threaded; the server only reads snapshots the
// runtime publishes.
package debugserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frescoui/fresco/pkg/logging"
)

// Options configures the server. State and Frame are snapshot
// providers; either may be nil, in which case the endpoint returns 404.
type Options struct {
	Addr   string
	Logger *logging.Logger
	State  func() any
	Frame  func() string
}

// Server is the debug HTTP server.
type Server struct {
	opts Options
	srv  *http.Server
}

// New builds the server without starting it.
func New(opts Options) *Server {
	s := &Server{opts: opts}
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/state", s.handleState)
	r.Get("/api/frame", s.handleFrame)
	return r
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info(logging.CategorySystem, "debug_server_started", "debug server listening", map[string]any{
			"addr": s.opts.Addr,
		})
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if s.opts.State == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.opts.State()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if s.opts.Frame == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(s.opts.Frame()))
}

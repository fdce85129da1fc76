// Package server exposes a web over HTTP.
//
// Routes:
//
//	GET    /route?from=A&to=B      shortest route between two nodes
//	PUT    /edges/{a}/{b}          add a link
//	DELETE /edges/{a}/{b}          remove a link
//	GET    /dump?format=svg        topology as text, json, dot, svg or png
//	GET    /stats                  node, link and component counts
//
// Every response carries an X-Request-ID header. Errors are JSON objects of
// the form {"code": "UNKNOWN_NODE", "message": "..."}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/spiderweb/pkg/cache"
	"github.com/matzehuels/spiderweb/pkg/web"
)

// Server serves one web.
type Server struct {
	web    *web.Web
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the artifact cache for rendered images.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(s *Server) {
		s.cache = c
		s.keyer = k
	}
}

// WithLogger sets the request logger. Defaults to the web's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for w.
func New(w *web.Web, opts ...Option) *Server {
	s := &Server{
		web:    w,
		cache:  cache.NewNullCache(),
		logger: w.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/route", s.handleRoute)
	r.Put("/edges/{a}/{b}", s.handleAddEdge)
	r.Delete("/edges/{a}/{b}", s.handleRemoveEdge)
	r.Get("/dump", s.handleDump)
	r.Get("/stats", s.handleStats)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

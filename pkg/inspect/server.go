// Package inspect exposes a running navigation engine over HTTP for
// debugging. A terminal application owns the terminal, so the usual print
// style debugging is off the table; the inspector serves the route table,
// the history stack, and a live transition feed on a side port instead.
package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/termo-dev/termo/pkg/nav"
)

// Server serves engine state over HTTP and streams transition events over
// WebSocket. Register it as a nav.Observer to enable the event feed.
type Server struct {
	engine *nav.Engine
	logger *slog.Logger

	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// Option configures the inspector.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an inspector for the given engine.
func NewServer(engine *nav.Engine, opts ...Option) *Server {
	s := &Server{
		engine:  engine,
		logger:  slog.Default(),
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local debugging only
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the inspector's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/routes", s.handleRoutes)
	r.Get("/history", s.handleHistory)
	r.Get("/current", s.handleCurrent)
	r.Get("/events", s.handleEvents)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe starts the inspector on addr. It blocks until Shutdown is
// called or the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.Info("inspector listening", "addr", addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server and closes all event stream clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// routeJSON is the wire shape of a route definition.
type routeJSON struct {
	Path    string         `json:"path"`
	Name    string         `json:"name,omitempty"`
	HasView bool           `json:"has_view"`
	Guarded bool           `json:"guarded"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// entryJSON is the wire shape of a history entry or resolved route.
type entryJSON struct {
	Path    string         `json:"path"`
	Name    string         `json:"name,omitempty"`
	Params  nav.Params     `json:"params,omitempty"`
	Query   nav.Query      `json:"query,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Matched bool           `json:"matched"`
}

func toEntryJSON(r nav.Route) entryJSON {
	return entryJSON{
		Path:    r.Path,
		Name:    r.Name,
		Params:  r.Params,
		Query:   r.Query,
		Meta:    r.Meta,
		Matched: r.Matched != nil,
	}
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	defs := s.engine.Routes()
	out := make([]routeJSON, len(defs))
	for i, def := range defs {
		out[i] = routeJSON{
			Path:    def.Path,
			Name:    def.Name,
			HasView: def.View != nil,
			Guarded: def.BeforeEnter != nil,
			Meta:    def.Meta,
		}
	}
	s.writeJSON(w, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.engine.History()
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = toEntryJSON(e)
	}
	s.writeJSON(w, map[string]any{
		"entries":        out,
		"index":          s.engine.HistoryIndex(),
		"can_go_back":    s.engine.CanGoBack(),
		"can_go_forward": s.engine.CanGoForward(),
	})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, toEntryJSON(s.engine.Current()))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("inspector response write failed", "error", err)
	}
}

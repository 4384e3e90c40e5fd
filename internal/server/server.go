// Package server is the dev server: it serves the calendar site from
// memory, resolves the query-parameter links the pages use, and pushes
// live reloads to connected browsers when the content changes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/site"
	"github.com/huyixi/Daily/internal/theme"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Open     bool // open the browser after start
	AllowAll bool // allow all CORS origins
}

// Server serves the rendered site and its JSON APIs. Content and
// presentation are both swapped atomically when the sources change:
// SetContent after a notes rebuild, Configure after a config reload.
type Server struct {
	cfg Config

	hub        *Hub
	router     chi.Router
	httpServer *http.Server

	mu       sync.RWMutex
	renderer *site.Renderer
	scheme   theme.Scheme
	defaults site.Defaults
	minCfg   string
	maxCfg   string
	ix       calendar.Index
	payload  []byte
	bounds   site.Bounds
	entries  []site.SearchEntry
}

// New creates a dev server around a shared renderer. minMonth and
// maxMonth optionally narrow the navigable range.
func New(cfg Config, renderer *site.Renderer, scheme theme.Scheme, defaults site.Defaults, minMonth, maxMonth string) *Server {
	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		scheme:   scheme,
		defaults: defaults,
		minCfg:   minMonth,
		maxCfg:   maxMonth,
		hub:      NewHub(),
		payload:  []byte("[]"),
	}
	s.router = s.buildRouter()
	return s
}

// SetContent swaps in a freshly built index and search entries, then
// tells connected browsers to reload.
func (s *Server) SetContent(ix calendar.Index, entries []site.SearchEntry) error {
	payload, err := calendar.MarshalMonths(ix)
	if err != nil {
		return fmt.Errorf("encoding month payload: %w", err)
	}

	s.mu.Lock()
	s.ix = ix
	s.payload = payload
	s.bounds = site.DataBounds(ix, s.minCfg, s.maxCfg)
	s.entries = entries
	s.mu.Unlock()

	s.hub.Broadcast("reload")
	return nil
}

// Configure swaps in a new renderer, scheme, and calendar settings
// after a config reload. It does not broadcast; the content rebuild
// that follows does.
func (s *Server) Configure(renderer *site.Renderer, scheme theme.Scheme, defaults site.Defaults, minMonth, maxMonth string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = renderer
	s.scheme = scheme
	s.defaults = defaults
	s.minCfg = minMonth
	s.maxCfg = maxMonth
	s.bounds = site.DataBounds(s.ix, minMonth, maxMonth)
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.handleIndex)
	r.Get("/style.css", s.handleCSS)
	r.Get("/script.js", s.handleScript)
	r.Get("/livereload.js", s.handleLiveReload)
	r.Get("/months.json", s.handleMonths)
	r.Get("/search-index.json", s.handleSearchIndex)
	r.Get("/api/months", s.handleMonths)
	r.Get("/api/search", s.handleSearch)
	r.Get("/ws", s.handleWS)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	renderer, defaults := s.renderer, s.defaults
	ix, payload, bounds := s.ix, s.payload, s.bounds
	s.mu.RUnlock()

	now := time.Now()
	st := site.Resolve(r.URL.Query(), ix, bounds, defaults, now)
	page, err := renderer.RenderPage(st, ix, bounds, payload, calendar.DayKey(now), true)
	if err != nil {
		log.Printf("server: rendering page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	scheme := s.scheme
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(site.StyleCSS(scheme)))
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(site.ScriptJS()))
}

func (s *Server) handleLiveReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(site.LiveReloadJS()))
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	payload := s.payload
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	results := site.Search(entries, r.URL.Query().Get("q"), 20)
	if results == nil {
		results = []site.SearchEntry{}
	}
	writeJSON(w, http.StatusOK, results)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}

	s.hub.Add(conn)
	defer func() {
		s.hub.Remove(conn)
		conn.Close()
	}()

	// Drain reads until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	if s.cfg.Open {
		go openBrowser(url)
	}

	log.Printf("daily serving at %s", url)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

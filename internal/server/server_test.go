package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/site"
	"github.com/huyixi/Daily/internal/theme"
)

func testServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	catalog, err := theme.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loc, ok := catalog.Locale("en")
	if !ok {
		t.Fatal("missing en locale")
	}
	scheme, ok := catalog.Scheme("paper")
	if !ok {
		t.Fatal("missing paper scheme")
	}
	renderer, err := site.NewRenderer("Daily", loc)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	return New(cfg, renderer, scheme, site.Defaults{Month: "latest", Day: "latest"}, "", "")
}

func setTestContent(t *testing.T, srv *Server) {
	t.Helper()

	ix := calendar.BuildIndex(map[string][]calendar.Page{
		"2026-02-14": {{Title: "Valentine", Content: "<p>Roses on the table.</p>"}},
		"2026-08-15": {{Title: "Mid August", Content: "<p>Late summer heat.</p>"}},
	})
	entries := []site.SearchEntry{
		{Day: "2026-08-15", Title: "Mid August", Summary: "Late summer heat", Href: "/?y=2026&m=8&day=15"},
		{Day: "2026-02-14", Title: "Valentine", Summary: "Roses on the table", Href: "/?y=2026&m=2&day=14"},
	}
	if err := srv.SetContent(ix, entries); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := testServer(t, Config{Port: 0})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := testServer(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndexResolvesQuery(t *testing.T) {
	srv := testServer(t, Config{Port: 0})
	setTestContent(t, srv)

	req := httptest.NewRequest("GET", "/?y=2026&m=2&day=14", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "February 2026") {
		t.Error("expected the February caption in the page")
	}
	if !strings.Contains(body, "Valentine") {
		t.Error("expected the selected day's article in the page")
	}
	if !strings.Contains(body, "livereload.js") {
		t.Error("expected the live reload script in dev pages")
	}
}

func TestIndexDefaultsToLatest(t *testing.T) {
	srv := testServer(t, Config{Port: 0})
	setTestContent(t, srv)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "August 2026") {
		t.Error("expected the latest month caption in the page")
	}
	if !strings.Contains(body, "Mid August") {
		t.Error("expected the latest day's article in the page")
	}
}

func TestAPIMonths(t *testing.T) {
	srv := testServer(t, Config{Port: 0})
	setTestContent(t, srv)

	req := httptest.NewRequest("GET", "/api/months", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	ix, err := calendar.ParseMonths(w.Body.Bytes())
	if err != nil {
		t.Fatalf("ParseMonths: %v", err)
	}
	if len(ix) != 2 {
		t.Fatalf("expected 2 months, got %d", len(ix))
	}
	if _, ok := ix["2026-08"]; !ok {
		t.Error("expected 2026-08 in the payload")
	}
}

func TestAPISearch(t *testing.T) {
	srv := testServer(t, Config{Port: 0})
	setTestContent(t, srv)

	req := httptest.NewRequest("GET", "/api/search?q=valentine", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []site.SearchEntry
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Valentine" {
		t.Errorf("expected Valentine, got %q", results[0].Title)
	}

	// An empty query returns an empty array, not null.
	req = httptest.NewRequest("GET", "/api/search", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestLiveReloadBroadcast(t *testing.T) {
	srv := testServer(t, Config{Port: 0})
	setTestContent(t, srv)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server side to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("websocket connection never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	setTestContent(t, srv)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("expected reload message, got %q", msg)
	}
}

func TestWatchDebouncesRebuilds(t *testing.T) {
	dir := t.TempDir()
	rebuilt := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Watch(ctx, []string{dir}, 50*time.Millisecond, func() {
			select {
			case rebuilt <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte("# Note"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/theme"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Daily", testLocale(t))
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	return r
}

func TestRenderPage(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")
	payload, err := calendar.MarshalMonths(ix)
	if err != nil {
		t.Fatalf("MarshalMonths() error: %v", err)
	}

	st := Resolve(query("y", "2026", "m", "8", "day", "15"), ix, bounds, Defaults{}, testNow)
	page, err := testRenderer(t).RenderPage(st, ix, bounds, payload, "", false)
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}

	for _, want := range []string{
		"<title>August 2026 · Daily</title>",
		`lang="en"`,
		"data-daily-calendar",
		"data-daily-months=",
		"2026-08",
		"data-daily-article",
		"Mid August",
		`<table class="cal">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if strings.Contains(page, "livereload.js") {
		t.Error("unexpected livereload script in static page")
	}

	live, err := testRenderer(t).RenderPage(st, ix, bounds, payload, "", true)
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	if !strings.Contains(live, "livereload.js") {
		t.Error("expected livereload script in dev page")
	}
}

func TestRenderPageCanonical(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")
	payload, err := calendar.MarshalMonths(ix)
	if err != nil {
		t.Fatalf("MarshalMonths() error: %v", err)
	}
	st := Resolve(nil, ix, bounds, Defaults{}, testNow)

	r := testRenderer(t)
	page, err := r.RenderPage(st, ix, bounds, payload, "", false)
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	if strings.Contains(page, `rel="canonical"`) {
		t.Error("unexpected canonical link without a base URL")
	}

	r.BaseURL = "https://notes.example.com"
	page, err = r.RenderPage(st, ix, bounds, payload, "", false)
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	if !strings.Contains(page, `<link rel="canonical" href="https://notes.example.com/">`) {
		t.Error("missing canonical link for the configured base URL")
	}
}

func TestGenerateWritesSite(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")

	catalog, err := theme.Load()
	if err != nil {
		t.Fatalf("loading theme catalog: %v", err)
	}
	scheme, _ := catalog.Scheme("paper")

	outDir := filepath.Join(t.TempDir(), "public")
	g := &Generator{OutputDir: outDir, Scheme: scheme, Renderer: testRenderer(t)}

	entries := []SearchEntry{{Day: "2026-08-15", Title: "Mid August", Href: "/?y=2026&m=8&day=15"}}
	n, err := g.Generate(ix, bounds, Defaults{Month: "latest", Day: "latest"}, entries, testNow)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if n != 5 {
		t.Errorf("files written = %d, want 5", n)
	}

	for _, name := range []string{"index.html", "style.css", "script.js", "months.json", "search-index.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	// The index shows the default state: latest month, latest day.
	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if !strings.Contains(string(index), "August 2026") {
		t.Error("index.html does not show the latest month")
	}
	if !strings.Contains(string(index), "Mid August") {
		t.Error("index.html does not show the latest day's article")
	}

	// The stylesheet leads with the scheme variables.
	css, err := os.ReadFile(filepath.Join(outDir, "style.css"))
	if err != nil {
		t.Fatalf("reading style.css: %v", err)
	}
	if !strings.HasPrefix(string(css), ":root {") {
		t.Error("style.css does not start with the scheme block")
	}
	if !strings.Contains(string(css), "--daily-accent: #b4552d;") {
		t.Error("style.css missing scheme variable")
	}

	// months.json round-trips through the payload parser.
	months, err := os.ReadFile(filepath.Join(outDir, "months.json"))
	if err != nil {
		t.Fatalf("reading months.json: %v", err)
	}
	parsed, err := calendar.ParseMonths(months)
	if err != nil {
		t.Fatalf("parsing months.json: %v", err)
	}
	if len(parsed) != len(ix) {
		t.Errorf("months.json has %d months, want %d", len(parsed), len(ix))
	}
}

// Package site renders the calendar page and writes the static site:
// the resolved month grid, the article panel for the active day, and
// the supporting assets.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/theme"
)

// Renderer turns a resolved state into a full HTML page. One renderer
// is shared between the static generator and the dev server. BaseURL,
// when set, becomes the canonical link of the rendered page; the dev
// server leaves it empty.
type Renderer struct {
	SiteTitle string
	BaseURL   string
	Locale    theme.Locale
	tmpl      *template.Template
}

// NewRenderer parses the page template for the given site title and locale.
func NewRenderer(siteTitle string, loc theme.Locale) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{SiteTitle: siteTitle, Locale: loc, tmpl: tmpl}, nil
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Lang         string
	Title        string
	SiteTitle    string
	SearchLabel  string
	Canonical    string
	Payload      string
	CalendarHTML template.HTML
	ArticleHTML  template.HTML
	LiveReload   bool
}

// RenderPage renders the page for one resolved state. The payload is
// the JSON month index embedded into the calendar container; today
// marks the highlighted day and may be empty.
func (r *Renderer) RenderPage(st State, ix calendar.Index, bounds Bounds, payload []byte, today string, liveReload bool) (string, error) {
	w := &Widget{State: st, Index: ix, Bounds: bounds, Locale: r.Locale, Today: today}

	data := pageData{
		Lang:         r.Locale.Tag,
		Title:        r.Locale.Title(st.Year, st.Month),
		SiteTitle:    r.SiteTitle,
		SearchLabel:  r.Locale.Search,
		Payload:      string(payload),
		CalendarHTML: template.HTML(w.CalendarHTML()),
		ArticleHTML:  template.HTML(w.ArticleHTML()),
		LiveReload:   liveReload,
	}
	if r.BaseURL != "" {
		data.Canonical = strings.TrimSuffix(r.BaseURL, "/") + "/"
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

// Generator writes the static site snapshot: the default view as
// index.html plus the styling, script, and data assets.
type Generator struct {
	OutputDir string
	Scheme    theme.Scheme
	Renderer  *Renderer
}

// Generate writes the full static site and returns the number of files
// written. The index page shows the default state for the given time.
func (g *Generator) Generate(ix calendar.Index, bounds Bounds, defaults Defaults, entries []SearchEntry, now time.Time) (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	payload, err := calendar.MarshalMonths(ix)
	if err != nil {
		return 0, fmt.Errorf("encoding month payload: %w", err)
	}

	st := Resolve(nil, ix, bounds, defaults, now)
	page, err := g.Renderer.RenderPage(st, ix, bounds, payload, calendar.DayKey(now), false)
	if err != nil {
		return 0, err
	}

	files := map[string][]byte{
		"index.html":  []byte(page),
		"style.css":   []byte(StyleCSS(g.Scheme)),
		"script.js":   []byte(ScriptJS()),
		"months.json": payload,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(g.OutputDir, name), data, 0644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	return len(files) + 1, nil
}

// StyleCSS returns the full stylesheet for a scheme.
func StyleCSS(s theme.Scheme) string {
	return s.CSSVars() + "\n" + cssContent
}

// ScriptJS returns the client enhancement script.
func ScriptJS() string { return jsContent }

// LiveReloadJS returns the dev-server reload script.
func LiveReloadJS() string { return liveReloadJS }

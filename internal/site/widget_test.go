package site

import (
	"strings"
	"testing"
	"time"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/theme"
)

func testLocale(t *testing.T) theme.Locale {
	t.Helper()
	catalog, err := theme.Load()
	if err != nil {
		t.Fatalf("loading theme catalog: %v", err)
	}
	loc, ok := catalog.Locale("en")
	if !ok {
		t.Fatal("missing en locale")
	}
	return loc
}

func TestCalendarHTMLNavAtBounds(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")
	loc := testLocale(t)

	// At the minimum month the previous link is a disabled span.
	st := Resolve(query("y", "2026", "m", "2"), ix, bounds, Defaults{}, testNow)
	w := &Widget{State: st, Index: ix, Bounds: bounds, Locale: loc}
	html := w.CalendarHTML()

	if !strings.Contains(html, `<span class="cal-nav cal-nav-prev disabled" aria-disabled="true">Previous month</span>`) {
		t.Errorf("expected disabled prev nav at min bound:\n%s", html)
	}
	if !strings.Contains(html, `<a class="cal-nav cal-nav-next" href="/?y=2026&amp;m=3">Next month</a>`) {
		t.Errorf("expected enabled next nav:\n%s", html)
	}

	// At the maximum month the next link is disabled.
	st = Resolve(query("y", "2026", "m", "8"), ix, bounds, Defaults{}, testNow)
	w = &Widget{State: st, Index: ix, Bounds: bounds, Locale: loc}
	html = w.CalendarHTML()

	if !strings.Contains(html, `<span class="cal-nav cal-nav-next disabled" aria-disabled="true">Next month</span>`) {
		t.Errorf("expected disabled next nav at max bound:\n%s", html)
	}
	if !strings.Contains(html, `<a class="cal-nav cal-nav-prev" href="/?y=2026&amp;m=7">Previous month</a>`) {
		t.Errorf("expected enabled prev nav:\n%s", html)
	}

	// In the middle both directions are live.
	st = Resolve(query("y", "2026", "m", "6"), ix, bounds, Defaults{}, testNow)
	w = &Widget{State: st, Index: ix, Bounds: bounds, Locale: loc}
	html = w.CalendarHTML()

	if strings.Contains(html, "disabled") {
		t.Errorf("expected no disabled nav mid-range:\n%s", html)
	}

	// Year rollover in the link targets.
	st = State{Year: 2026, Month: time.January, Key: "2026-01"}
	w = &Widget{State: st, Index: ix, Bounds: Bounds{}, Locale: loc}
	html = w.CalendarHTML()
	if !strings.Contains(html, `href="/?y=2025&amp;m=12"`) {
		t.Errorf("expected prev link into previous year:\n%s", html)
	}
}

func TestCalendarHTMLCells(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")
	loc := testLocale(t)

	st := Resolve(query("y", "2026", "m", "8", "day", "15"), ix, bounds, Defaults{}, testNow)
	w := &Widget{State: st, Index: ix, Bounds: bounds, Locale: loc, Today: "2026-08-20"}
	html := w.CalendarHTML()

	// The day with content links to itself and carries the selected class.
	if !strings.Contains(html, `href="/?y=2026&amp;m=8&amp;day=15"`) {
		t.Errorf("expected day link:\n%s", html)
	}
	if !strings.Contains(html, `class="cal-day has-pages selected"`) {
		t.Errorf("expected selected day cell:\n%s", html)
	}
	if !strings.Contains(html, `class="cal-day today"`) {
		t.Errorf("expected today cell:\n%s", html)
	}

	// Days without content are plain cells.
	if strings.Contains(html, `day=14"`) {
		t.Errorf("unexpected link for empty day:\n%s", html)
	}

	// August 2026 spans six weeks with 11 outside cells.
	if got := strings.Count(html, "outside"); got != 11 {
		t.Errorf("outside cells = %d, want 11", got)
	}
	if got := strings.Count(html, "<td"); got != 42 {
		t.Errorf("cells = %d, want 42", got)
	}
}

func TestCalendarHTMLTrimmedMonth(t *testing.T) {
	ix := testIndex(t)
	bounds := DataBounds(ix, "", "")
	loc := testLocale(t)

	// February 2026 starts on a Sunday and fits exactly four weeks.
	st := Resolve(query("y", "2026", "m", "2"), ix, bounds, Defaults{}, testNow)
	w := &Widget{State: st, Index: ix, Bounds: bounds, Locale: loc}
	html := w.CalendarHTML()

	if got := strings.Count(html, "<td"); got != 28 {
		t.Errorf("cells = %d, want 28", got)
	}
	if strings.Contains(html, "outside") {
		t.Errorf("expected no outside cells:\n%s", html)
	}
}

func TestCalendarHTMLHeader(t *testing.T) {
	ix := testIndex(t)
	loc := testLocale(t)

	st := Resolve(query("y", "2026", "m", "8"), ix, Bounds{}, Defaults{}, testNow)
	w := &Widget{State: st, Index: ix, Locale: loc}
	html := w.CalendarHTML()

	if !strings.Contains(html, `<span class="cal-title">August 2026</span>`) {
		t.Errorf("expected localized title:\n%s", html)
	}
	if !strings.Contains(html, `<th scope="col">Sun</th><th scope="col">Mon</th>`) {
		t.Errorf("expected weekday header starting on Sunday:\n%s", html)
	}
}

func TestArticleHTMLFirstPage(t *testing.T) {
	ix := calendar.BuildIndex(map[string][]calendar.Page{
		"2026-08-15": {
			{Title: "First Note", Content: "<p>first body</p>"},
			{Title: "Second Note", Content: "<p>second body</p>"},
		},
	})
	loc := testLocale(t)

	w := &Widget{
		State:  State{Year: 2026, Month: time.August, Key: "2026-08", ActiveDay: "2026-08-15"},
		Index:  ix,
		Locale: loc,
	}
	html := w.ArticleHTML()

	if !strings.Contains(html, `<time datetime="2026-08-15">`) {
		t.Errorf("expected date header:\n%s", html)
	}
	if !strings.Contains(html, "First Note") || !strings.Contains(html, "<p>first body</p>") {
		t.Errorf("expected first page content:\n%s", html)
	}
	if strings.Contains(html, "Second Note") {
		t.Errorf("expected only the first page:\n%s", html)
	}
}

func TestArticleHTMLEscapesTitle(t *testing.T) {
	ix := calendar.BuildIndex(map[string][]calendar.Page{
		"2026-08-15": {{Title: "<script>alert(1)</script>", Content: "<p>ok</p>"}},
	})
	loc := testLocale(t)

	w := &Widget{
		State:  State{Year: 2026, Month: time.August, Key: "2026-08", ActiveDay: "2026-08-15"},
		Index:  ix,
		Locale: loc,
	}
	html := w.ArticleHTML()

	if strings.Contains(html, "<script>") {
		t.Errorf("title not escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped title:\n%s", html)
	}
}

func TestArticleHTMLEmptyState(t *testing.T) {
	ix := testIndex(t)
	loc := testLocale(t)

	// Active day without content.
	w := &Widget{
		State:  State{Year: 2026, Month: time.June, Key: "2026-06", ActiveDay: "2026-06-15"},
		Index:  ix,
		Locale: loc,
	}
	if html := w.ArticleHTML(); !strings.Contains(html, loc.EmptyState) {
		t.Errorf("expected empty state:\n%s", html)
	}

	// No active day at all.
	w.State.ActiveDay = ""
	if html := w.ArticleHTML(); !strings.Contains(html, loc.EmptyState) {
		t.Errorf("expected empty state:\n%s", html)
	}
}

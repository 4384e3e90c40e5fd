package site

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/theme"
)

// Widget renders the two page regions for one resolved state: the month
// grid and the article panel.
type Widget struct {
	State  State
	Index  calendar.Index
	Bounds Bounds
	Locale theme.Locale
	Today  string // ISO day highlighted as today, may be empty
}

// CalendarHTML renders the month grid as a table: a caption with the
// month title and prev/next navigation, a weekday header row, and one
// row per week. Navigation at a range bound renders as a disabled span.
func (w *Widget) CalendarHTML() string {
	var b strings.Builder

	b.WriteString("<table class=\"cal\">\n")
	w.renderCaption(&b)

	b.WriteString("<thead><tr>")
	for _, wd := range w.Locale.Weekdays {
		fmt.Fprintf(&b, `<th scope="col">%s</th>`, html.EscapeString(wd))
	}
	b.WriteString("</tr></thead>\n<tbody>\n")

	entry := w.Index[w.State.Key]
	for _, week := range calendar.Matrix(w.State.Year, w.State.Month) {
		b.WriteString("<tr>")
		for _, cell := range week {
			w.renderCell(&b, cell, entry)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")

	return b.String()
}

func (w *Widget) renderCaption(b *strings.Builder) {
	b.WriteString(`<caption class="cal-caption">`)

	prevYear, prevMonth := calendar.Shift(w.State.Year, w.State.Month, -1)
	w.renderNav(b, "cal-nav-prev", calendar.Key(prevYear, prevMonth), prevYear, prevMonth, w.Locale.PrevMonth)

	fmt.Fprintf(b, `<span class="cal-title">%s</span>`, html.EscapeString(w.Locale.Title(w.State.Year, w.State.Month)))

	nextYear, nextMonth := calendar.Shift(w.State.Year, w.State.Month, 1)
	w.renderNav(b, "cal-nav-next", calendar.Key(nextYear, nextMonth), nextYear, nextMonth, w.Locale.NextMonth)

	b.WriteString("</caption>\n")
}

func (w *Widget) renderNav(b *strings.Builder, class, key string, year int, month time.Month, label string) {
	outOfRange := (w.Bounds.Min != "" && calendar.Compare(key, w.Bounds.Min) < 0) ||
		(w.Bounds.Max != "" && calendar.Compare(key, w.Bounds.Max) > 0)
	if outOfRange {
		fmt.Fprintf(b, `<span class="cal-nav %s disabled" aria-disabled="true">%s</span>`, class, html.EscapeString(label))
		return
	}
	href := fmt.Sprintf("/?y=%d&m=%d", year, int(month))
	fmt.Fprintf(b, `<a class="cal-nav %s" href="%s">%s</a>`, class, html.EscapeString(href), html.EscapeString(label))
}

func (w *Widget) renderCell(b *strings.Builder, cell time.Time, entry calendar.MonthEntry) {
	day := calendar.DayKey(cell)

	if !calendar.InMonth(cell, w.State.Year, w.State.Month) {
		fmt.Fprintf(b, `<td class="cal-day outside">%d</td>`, cell.Day())
		return
	}

	classes := []string{"cal-day"}
	hasPages := len(entry.Pages[day]) > 0
	if hasPages {
		classes = append(classes, "has-pages")
	}
	if day == w.State.ActiveDay {
		classes = append(classes, "selected")
	}
	if day == w.Today {
		classes = append(classes, "today")
	}

	if hasPages {
		href := fmt.Sprintf("/?y=%d&m=%d&day=%d", w.State.Year, int(w.State.Month), cell.Day())
		fmt.Fprintf(b, `<td class="%s"><a href="%s">%d</a></td>`,
			strings.Join(classes, " "), html.EscapeString(href), cell.Day())
		return
	}
	fmt.Fprintf(b, `<td class="%s">%d</td>`, strings.Join(classes, " "), cell.Day())
}

// ArticleHTML renders the first page of the active day, or the locale's
// empty-state message when the day has no content.
func (w *Widget) ArticleHTML() string {
	var b strings.Builder

	if w.State.ActiveDay != "" {
		if pages := w.Index[w.State.Key].Pages[w.State.ActiveDay]; len(pages) > 0 {
			page := pages[0]
			b.WriteString("<article class=\"article\">\n")
			fmt.Fprintf(&b, `<header class="article-header"><time datetime="%s">%s</time></header>`+"\n",
				w.State.ActiveDay, w.State.ActiveDay)
			if page.Title != "" {
				fmt.Fprintf(&b, `<h2 class="article-title">%s</h2>`+"\n", html.EscapeString(page.Title))
			}
			// Page content is HTML we rendered ourselves.
			fmt.Fprintf(&b, `<div class="article-body">%s</div>`+"\n", page.Content)
			b.WriteString("</article>\n")
			return b.String()
		}
	}

	fmt.Fprintf(&b, `<p class="article-empty">%s</p>`+"\n", html.EscapeString(w.Locale.EmptyState))
	return b.String()
}

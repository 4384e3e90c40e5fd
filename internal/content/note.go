package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/huyixi/Daily/internal/calendar"
)

// Note is one rendered daily note.
type Note struct {
	Path    string // Path relative to the content dir, forward slashes.
	Day     string // ISO day the note belongs to.
	Title   string
	Summary string
	HTML    string
	Draft   bool
}

// noteMeta is the YAML frontmatter accepted at the top of a note.
type noteMeta struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
	Draft   bool   `yaml:"draft"`
}

// filenameDay matches an ISO day prefix like "2026-08-15-coffee.md".
var filenameDay = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// noteDay resolves the day a note belongs to: the frontmatter date wins,
// then an ISO prefix on the filename. Notes without either are skipped.
func noteDay(meta noteMeta, relPath string) (string, error) {
	if meta.Date != "" {
		if t, err := time.Parse("2006-01-02", meta.Date); err == nil {
			return calendar.DayKey(t), nil
		}
		if t, err := time.Parse(time.RFC3339, meta.Date); err == nil {
			return calendar.DayKey(t), nil
		}
		return "", fmt.Errorf("unparseable date %q", meta.Date)
	}

	base := filepath.Base(relPath)
	if m := filenameDay.FindString(base); m != "" {
		if _, err := calendar.ParseDay(m); err != nil {
			return "", fmt.Errorf("invalid day %q in filename", m)
		}
		return m, nil
	}

	return "", fmt.Errorf("no date in frontmatter or filename")
}

// noteTitle resolves the display title: frontmatter, then the first H1
// heading, then a title-cased version of the filename.
func noteTitle(meta noteMeta, body []byte, relPath string) string {
	if meta.Title != "" {
		return meta.Title
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	return titleFromFilename(relPath)
}

// firstHeading returns the text of the first level-one heading in the body.
func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}

// titleFromFilename derives a title from the filename, dropping any ISO
// day prefix and title-casing the rest.
func titleFromFilename(relPath string) string {
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	base = filenameDay.ReplaceAllString(base, "")
	base = strings.Trim(base, "-_ ")
	if base == "" {
		return "Untitled"
	}
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

// noteSummary resolves the summary: frontmatter, then the first plain
// text line of the body, truncated.
func noteSummary(meta noteMeta, body []byte) string {
	if meta.Summary != "" {
		return meta.Summary
	}
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return truncate(trimmed, 160)
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

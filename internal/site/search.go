package site

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/content"
)

// SearchEntry is one searchable note in the index.
type SearchEntry struct {
	Day     string `json:"day"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Href    string `json:"href"`
}

// BuildSearchIndex builds the searchable entries for all notes, newest
// first.
func BuildSearchIndex(notes []content.Note) []SearchEntry {
	entries := make([]SearchEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, SearchEntry{
			Day:     n.Day,
			Title:   n.Title,
			Summary: n.Summary,
			Href:    dayHref(n.Day),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day > entries[j].Day
	})
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// Search fuzzy-matches the query against day, title, and summary and
// returns the best matches in rank order.
func Search(entries []SearchEntry, query string, limit int) []SearchEntry {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	corpus := make([]string, len(entries))
	for i, e := range entries {
		corpus[i] = e.Day + " " + e.Title + " " + e.Summary
	}

	matches := fuzzy.Find(query, corpus)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]SearchEntry, len(matches))
	for i, match := range matches {
		results[i] = entries[match.Index]
	}
	return results
}

// dayHref builds the canonical link for one ISO day.
func dayHref(day string) string {
	t, err := calendar.ParseDay(day)
	if err != nil {
		return "/"
	}
	return fmt.Sprintf("/?y=%d&m=%d&day=%d", t.Year(), int(t.Month()), t.Day())
}

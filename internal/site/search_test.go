package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huyixi/Daily/internal/content"
)

func testEntries() []SearchEntry {
	return BuildSearchIndex([]content.Note{
		{Day: "2026-08-14", Title: "Coffee Brewing", Summary: "Ratios and grind sizes."},
		{Day: "2026-08-15", Title: "Walk in the Park", Summary: "Saw three herons."},
		{Day: "2026-06-10", Title: "Pour Over Method", Summary: "More coffee thoughts."},
	})
}

func TestBuildSearchIndexNewestFirst(t *testing.T) {
	entries := testEntries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Day != "2026-08-15" || entries[2].Day != "2026-06-10" {
		t.Errorf("expected newest first, got %q .. %q", entries[0].Day, entries[2].Day)
	}
	if entries[0].Href != "/?y=2026&m=8&day=15" {
		t.Errorf("href = %q, want %q", entries[0].Href, "/?y=2026&m=8&day=15")
	}
}

func TestSearch(t *testing.T) {
	entries := testEntries()

	hits := Search(entries, "herons", 0)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Title != "Walk in the Park" {
		t.Errorf("hit = %q", hits[0].Title)
	}

	// Matches in title and summary both count.
	hits = Search(entries, "coffee", 0)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	// Limit caps the result count.
	hits = Search(entries, "coffee", 1)
	if len(hits) != 1 {
		t.Fatalf("expected 1 limited hit, got %d", len(hits))
	}

	if hits := Search(entries, "", 0); hits != nil {
		t.Errorf("expected nil for empty query, got %v", hits)
	}
	if hits := Search(entries, "zzzzzz", 0); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestWriteSearchIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search-index.json")

	if err := WriteSearchIndex(testEntries(), path); err != nil {
		t.Fatalf("WriteSearchIndex() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	var loaded []SearchEntry
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshaling index: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(loaded))
	}
	if loaded[0].Title != "Walk in the Park" {
		t.Errorf("first entry = %q", loaded[0].Title)
	}
}

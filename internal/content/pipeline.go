// Package content turns a directory of markdown notes into rendered
// daily pages. Each note belongs to exactly one day, named either by a
// frontmatter date or by an ISO prefix on the filename.
package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/progress"
	"github.com/huyixi/Daily/internal/store"
)

// Pipeline loads, renders, and caches the notes under a content directory.
type Pipeline struct {
	ContentDir    string
	Include       []string
	Exclude       []string
	IncludeDrafts bool
	Cache         *store.Store      // optional render cache
	Reporter      progress.Reporter // optional progress feedback
}

// Load scans the content directory and returns all renderable notes
// sorted by day, then path. Notes that cannot be parsed are skipped
// with a warning rather than failing the whole run.
func (p *Pipeline) Load(ctx context.Context) ([]Note, error) {
	paths, err := scanNotes(p.ContentDir, p.Include, p.Exclude)
	if err != nil {
		return nil, err
	}

	reporter := p.Reporter
	if reporter == nil {
		reporter = progress.Silent{}
	}
	reporter.Start(len(paths))
	defer reporter.Finish()

	md := newMarkdown()
	var notes []Note
	for i, relPath := range paths {
		reporter.Update(i+1, relPath)

		raw, err := os.ReadFile(filepath.Join(p.ContentDir, filepath.FromSlash(relPath)))
		if err != nil {
			log.Printf("content: skipping %s: %v", relPath, err)
			continue
		}

		sum := sha256.Sum256(raw)
		hash := hex.EncodeToString(sum[:])

		if p.Cache != nil {
			cached, err := p.Cache.GetNote(ctx, relPath, hash)
			if err != nil {
				log.Printf("content: cache read for %s: %v", relPath, err)
			} else if cached != nil {
				notes = append(notes, Note{
					Path:    relPath,
					Day:     cached.Day,
					Title:   cached.Title,
					Summary: cached.Summary,
					HTML:    cached.HTML,
				})
				continue
			}
		}

		note, err := parseNote(md, relPath, raw)
		if err != nil {
			log.Printf("content: skipping %s: %v", relPath, err)
			continue
		}

		// Drafts are never cached so an earlier serve run cannot leak
		// one into a later build.
		if note.Draft {
			if p.IncludeDrafts {
				notes = append(notes, note)
			}
			continue
		}

		if p.Cache != nil {
			err := p.Cache.PutNote(ctx, store.CachedNote{
				Path:    note.Path,
				Hash:    hash,
				Day:     note.Day,
				Title:   note.Title,
				Summary: note.Summary,
				HTML:    note.HTML,
			})
			if err != nil {
				log.Printf("content: cache write for %s: %v", relPath, err)
			}
		}
		notes = append(notes, note)
	}

	if p.Cache != nil {
		if _, err := p.Cache.PruneNotes(ctx, paths); err != nil {
			log.Printf("content: pruning cache: %v", err)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Day != notes[j].Day {
			return notes[i].Day < notes[j].Day
		}
		return notes[i].Path < notes[j].Path
	})
	return notes, nil
}

// parseNote splits frontmatter from the body and renders one note.
func parseNote(md goldmark.Markdown, relPath string, raw []byte) (Note, error) {
	var meta noteMeta
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		// No usable frontmatter. Treat the whole file as markdown.
		body = raw
		meta = noteMeta{}
	}

	day, err := noteDay(meta, relPath)
	if err != nil {
		return Note{}, err
	}

	htmlContent, err := renderMarkdown(md, body)
	if err != nil {
		return Note{}, err
	}

	return Note{
		Path:    relPath,
		Day:     day,
		Title:   noteTitle(meta, body, relPath),
		Summary: noteSummary(meta, body),
		HTML:    htmlContent,
		Draft:   meta.Draft,
	}, nil
}

// PagesByDay groups rendered notes into calendar pages keyed by day.
func PagesByDay(notes []Note) map[string][]calendar.Page {
	pages := make(map[string][]calendar.Page)
	for _, n := range notes {
		pages[n.Day] = append(pages[n.Day], calendar.Page{Title: n.Title, Content: n.HTML})
	}
	return pages
}

package calendar

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Page is one entry shown in the article panel for a day. Content holds
// rendered HTML, not markdown.
type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MonthEntry groups everything known about a single month: its key, the
// ISO day strings that have pages (sorted ascending), and the pages per
// day. Entries are immutable once built; a new load produces a new index.
type MonthEntry struct {
	Key   string
	Year  int
	Month time.Month
	Days  []string
	Pages map[string][]Page
}

// Index is the month index keyed by month key.
type Index map[string]MonthEntry

// Keys returns the month keys in ascending order.
func (ix Index) Keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bounds returns the first and last month keys present in the index, or
// empty strings for an empty index.
func (ix Index) Bounds() (min, max string) {
	keys := ix.Keys()
	if len(keys) == 0 {
		return "", ""
	}
	return keys[0], keys[len(keys)-1]
}

// LatestDay returns the most recent day with pages in the given month,
// or "" when the month has none.
func (ix Index) LatestDay(key string) string {
	entry, ok := ix[key]
	if !ok || len(entry.Days) == 0 {
		return ""
	}
	return entry.Days[len(entry.Days)-1]
}

// BuildIndex groups a day-to-pages mapping into a month index. Days with
// no pages are ignored; day lists come out sorted and deduplicated.
func BuildIndex(pagesByDay map[string][]Page) Index {
	ix := make(Index)
	for day, pages := range pagesByDay {
		if len(pages) == 0 {
			continue
		}
		date, err := ParseDay(day)
		if err != nil {
			continue
		}
		key := Key(date.Year(), date.Month())
		entry, ok := ix[key]
		if !ok {
			entry = MonthEntry{
				Key:   key,
				Year:  date.Year(),
				Month: date.Month(),
				Pages: make(map[string][]Page),
			}
		}
		entry.Pages[day] = append(entry.Pages[day], pages...)
		ix[key] = entry
	}
	for key, entry := range ix {
		entry.Days = sortedDays(entry.Pages)
		ix[key] = entry
	}
	return ix
}

// monthWire and dayWire are the tolerant halves of the JSON payload:
// nested levels stay raw so one malformed element never poisons its
// siblings.
type monthWire struct {
	Month string            `json:"month"`
	Days  []json.RawMessage `json:"days"`
}

type dayWire struct {
	Date  string            `json:"date"`
	Pages []json.RawMessage `json:"pages"`
}

// ParseMonths decodes the month payload into an index. A syntax error at
// the top level is returned to the caller; inside the array, months with
// an invalid key, days with an invalid or out-of-month date, and pages
// that are not JSON objects are silently dropped. Page fields of the
// wrong type coerce to "".
func ParseMonths(data []byte) (Index, error) {
	var rawMonths []json.RawMessage
	if err := json.Unmarshal(data, &rawMonths); err != nil {
		return nil, fmt.Errorf("parsing month payload: %w", err)
	}

	ix := make(Index)
	for _, rawMonth := range rawMonths {
		var mw monthWire
		if err := json.Unmarshal(rawMonth, &mw); err != nil {
			continue
		}
		year, month, ok := ParseKey(mw.Month)
		if !ok {
			continue
		}

		entry, exists := ix[mw.Month]
		if !exists {
			entry = MonthEntry{
				Key:   mw.Month,
				Year:  year,
				Month: month,
				Pages: make(map[string][]Page),
			}
		}

		for _, rawDay := range mw.Days {
			var dw dayWire
			if err := json.Unmarshal(rawDay, &dw); err != nil {
				continue
			}
			date, err := ParseDay(dw.Date)
			if err != nil {
				continue
			}
			if Key(date.Year(), date.Month()) != mw.Month {
				continue
			}
			entry.Pages[dw.Date] = append(entry.Pages[dw.Date], parsePages(dw.Pages)...)
		}

		ix[mw.Month] = entry
	}

	for key, entry := range ix {
		if len(entry.Pages) == 0 {
			delete(ix, key)
			continue
		}
		entry.Days = sortedDays(entry.Pages)
		ix[key] = entry
	}

	return ix, nil
}

// parsePages decodes the pages of one day, dropping non-objects and
// coercing missing or mistyped fields to empty strings.
func parsePages(raws []json.RawMessage) []Page {
	var pages []Page
	for _, raw := range raws {
		var obj map[string]interface{}
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			continue
		}
		var page Page
		if title, ok := obj["title"].(string); ok {
			page.Title = title
		}
		if content, ok := obj["content"].(string); ok {
			page.Content = content
		}
		pages = append(pages, page)
	}
	return pages
}

// monthPayload and dayPayload are the strict halves of the JSON payload,
// used when writing it back out.
type monthPayload struct {
	Month string       `json:"month"`
	Days  []dayPayload `json:"days"`
}

type dayPayload struct {
	Date  string `json:"date"`
	Pages []Page `json:"pages"`
}

// MarshalMonths encodes the index as the month payload: months ascending,
// days ascending within each month. The output round-trips through
// ParseMonths.
func MarshalMonths(ix Index) ([]byte, error) {
	months := make([]monthPayload, 0, len(ix))
	for _, key := range ix.Keys() {
		entry := ix[key]
		mp := monthPayload{Month: key, Days: make([]dayPayload, 0, len(entry.Days))}
		for _, day := range entry.Days {
			mp.Days = append(mp.Days, dayPayload{Date: day, Pages: entry.Pages[day]})
		}
		months = append(months, mp)
	}
	data, err := json.Marshal(months)
	if err != nil {
		return nil, fmt.Errorf("encoding month payload: %w", err)
	}
	return data, nil
}

// sortedDays returns the keys of a day-to-pages map in ascending order.
func sortedDays(pages map[string][]Page) []string {
	days := make([]string, 0, len(pages))
	for day := range pages {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

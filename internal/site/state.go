package site

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/huyixi/Daily/internal/calendar"
)

// Bounds is the inclusive month-key range the calendar may navigate.
// Empty strings leave that side open.
type Bounds struct {
	Min string
	Max string
}

// DataBounds derives the navigable range from the index, narrowed by
// optional configured month keys. When the configured range and the
// data range are disjoint the configured minimum wins.
func DataBounds(ix calendar.Index, minCfg, maxCfg string) Bounds {
	min, max := ix.Bounds()
	if minCfg != "" && (min == "" || calendar.Compare(minCfg, min) > 0) {
		min = minCfg
	}
	if maxCfg != "" && (max == "" || calendar.Compare(maxCfg, max) < 0) {
		max = maxCfg
	}
	if min != "" && max != "" && calendar.Compare(min, max) > 0 {
		max = min
	}
	return Bounds{Min: min, Max: max}
}

// Defaults are the site-level fallbacks for the initial view. Month is
// a month key or "latest"; Day is an ISO day or "latest".
type Defaults struct {
	Month string
	Day   string
}

// State is one fully resolved view: which month grid to draw and which
// day's articles to show.
type State struct {
	Year      int
	Month     time.Month
	Key       string
	ActiveDay string // ISO day, empty when nothing is active
}

// Resolve turns query parameters into a renderable state. The requested
// month is clamped into bounds; the active day falls back from the
// explicit parameter to the configured default to the most recent day
// with content in the shown month.
func Resolve(q url.Values, ix calendar.Index, bounds Bounds, defaults Defaults, now time.Time) State {
	key := monthFromQuery(q)
	if key == "" {
		key = defaultMonth(ix, defaults, now)
	}
	key = calendar.Clamp(key, bounds.Min, bounds.Max)

	year, month, ok := calendar.ParseKey(key)
	if !ok {
		year, month = now.Year(), now.Month()
		key = calendar.Key(year, month)
	}

	return State{
		Year:      year,
		Month:     month,
		Key:       key,
		ActiveDay: resolveDay(q, ix, key, defaults),
	}
}

// monthFromQuery reads the y and m parameters. Both must be present and
// valid, otherwise the defaults take over.
func monthFromQuery(q url.Values) string {
	y, errY := strconv.Atoi(q.Get("y"))
	m, errM := strconv.Atoi(q.Get("m"))
	if errY != nil || errM != nil || y < 1 || y > 9999 || m < 1 || m > 12 {
		return ""
	}
	return calendar.Key(y, time.Month(m))
}

func defaultMonth(ix calendar.Index, defaults Defaults, now time.Time) string {
	if defaults.Month != "" && defaults.Month != "latest" {
		if _, _, ok := calendar.ParseKey(defaults.Month); ok {
			return defaults.Month
		}
	}
	if keys := ix.Keys(); len(keys) > 0 {
		return keys[len(keys)-1]
	}
	return calendar.Key(now.Year(), now.Month())
}

// resolveDay picks the active day within the shown month. A candidate
// counts only when the month lists it as a day with pages, so a day
// parameter naming a quiet day or an impossible date (31 in February)
// falls back to the configured default, then to the most recent day
// with content.
func resolveDay(q url.Values, ix calendar.Index, key string, defaults Defaults) string {
	entry := ix[key]

	if raw := q.Get("day"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil && d >= 1 && d <= 31 {
			day := fmt.Sprintf("%s-%02d", key, d)
			if len(entry.Pages[day]) > 0 {
				return day
			}
		}
	}

	if defaults.Day != "" && defaults.Day != "latest" {
		if len(entry.Pages[defaults.Day]) > 0 {
			return defaults.Day
		}
	}

	return ix.LatestDay(key)
}

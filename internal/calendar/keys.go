package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Key formats a year and month as a zero-padded month key, e.g. "2026-08".
// Keys sort lexicographically in chronological order.
func Key(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseKey splits a month key back into year and month. ok is false when
// the string is not a canonical zero-padded YYYY-MM key.
func ParseKey(key string) (int, time.Month, bool) {
	if len(key) != 7 || key[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(key[5:])
	if err != nil {
		return 0, 0, false
	}
	if year < 1 || m < 1 || m > 12 {
		return 0, 0, false
	}
	// Reject non-canonical spellings like "2026- 8" that Atoi accepts.
	if Key(year, time.Month(m)) != key {
		return 0, 0, false
	}
	return year, time.Month(m), true
}

// Compare orders two month keys. Lexicographic comparison matches
// chronological order for well-formed keys.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// Clamp confines a month key to the inclusive [min, max] range. Empty
// bounds are open on that side, so Clamp never invents a bound.
func Clamp(key, min, max string) string {
	if min != "" && Compare(key, min) < 0 {
		return min
	}
	if max != "" && Compare(key, max) > 0 {
		return max
	}
	return key
}

// Shift moves a year/month pair by offset months, normalizing across year
// boundaries in both directions. Offsets of any magnitude are valid.
func Shift(year int, month time.Month, offset int) (int, time.Month) {
	t := time.Date(year, time.Month(int(month)+offset), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// DayKey formats a date as an ISO day string, e.g. "2026-08-05".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDay parses an ISO day string into a date. Impossible dates such as
// "2026-02-30" are rejected.
func ParseDay(day string) (time.Time, error) {
	return time.Parse("2006-01-02", day)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

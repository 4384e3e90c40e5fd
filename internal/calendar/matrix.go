package calendar

import "time"

// Matrix lays a month out as calendar weeks. Each row is a complete
// Sunday-to-Saturday week of seven dates; the first row starts on the
// Sunday on or before the 1st, so leading cells may belong to the
// previous month and trailing cells to the next. Weeks past the one
// containing the last day of the month are not emitted, so every
// returned row holds at least one day of the target month and the result
// has five rows for most months, four or six at the extremes.
func Matrix(year int, month time.Month) [][]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startWeekday := int(first.Weekday())
	daysInMonth := DaysIn(year, month)

	date := first.AddDate(0, 0, -startWeekday)
	currentDay := 1 - startWeekday

	var weeks [][]time.Time
	for week := 0; week < 6; week++ {
		row := make([]time.Time, 7)
		for weekday := 0; weekday < 7; weekday++ {
			row[weekday] = date
			date = date.AddDate(0, 0, 1)
			currentDay++
		}
		weeks = append(weeks, row)

		if currentDay > daysInMonth {
			break
		}
	}

	return weeks
}

// InMonth reports whether a matrix cell belongs to the target month
// rather than the leading or trailing filler days.
func InMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

package types

import "time"

// TestData is the single persisted entity: an identifier and one date column.
type TestData struct {
	ID   string    // UUID v7, generated on creation.
	Date time.Time // The stored date, as decoded by the backend.
}

// Year returns the calendar year of the stored date.
func (d *TestData) Year() int {
	return CalendarYear(d.Date)
}

// CalendarYear returns the year of t in UTC. Round-trip comparisons use UTC
// so that the local time zone of the machine running the tool cannot move a
// January 1st date into the previous year.
func CalendarYear(t time.Time) int {
	return t.UTC().Year()
}

package daybook

import "time"

const dateLayout = "2006-01-02"

// Entry is a single dated record held by a Store. Entries are immutable
// values: an update never modifies one in place, it produces a new value.
// The store holds Date in calendar form, midnight UTC, whatever zone or
// time of day the input carried.
type Entry struct {
	ID    int       `json:"id"`
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
}

// RawEntry is a {date, title} pair that has not been assigned an
// identifier yet. The store trusts raw entries to be well formed;
// rejecting malformed input is the parser's job.
type RawEntry struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
}

// Date builds the calendar date form used throughout the store:
// midnight UTC, no time-of-day component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// midnightUTC reduces t to the calendar date of its UTC instant.
func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return Date(u.Year(), u.Month(), u.Day())
}

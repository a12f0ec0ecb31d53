package settlement

import (
	"math"
	"time"
)

// All date comparisons in the engine happen at day granularity. Timestamps
// are normalized to local midnight before any difference is taken, so two
// instants on the same calendar day always count as zero days apart.

// StartOfDay truncates a timestamp to local midnight
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from one date to another.
// The result is negative when to precedes from. The rounding guards against
// DST transitions producing 23 or 25 hour days.
func DaysBetween(from, to time.Time) int {
	f := StartOfDay(from)
	t := StartOfDay(to)
	return int(math.Round(t.Sub(f).Hours() / 24))
}

// AddDays shifts a date by n calendar days, keeping local midnight
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// WithinDays reports whether two dates are at most n calendar days apart
// in either direction
func WithinDays(a, b time.Time, n int) bool {
	d := DaysBetween(a, b)
	if d < 0 {
		d = -d
	}
	return d <= n
}

package domain

import "time"

// BirthDate wraps a calendar date at day precision, UTC.
type BirthDate struct {
	date time.Time
}

// NewBirthDate truncates the given time to a UTC calendar date.
func NewBirthDate(t time.Time) BirthDate {
	y, m, d := t.UTC().Date()
	return BirthDate{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// UnderAge reports whether the subject is younger than minYears at the
// reference time. The threshold uses calendar arithmetic, not day counting,
// so February 29 birthdays roll over the way AddDate defines.
//
// If adding minYears wraps past the representable date range the rule fails
// open and reports "not under age"; this mirrors long-standing behavior and
// is kept on purpose rather than silently fixed.
func (b BirthDate) UnderAge(minYears int, ref time.Time) bool {
	threshold := b.date.AddDate(minYears, 0, 0)
	if threshold.Before(b.date) {
		return false
	}
	return threshold.After(ref)
}

// Time returns the wrapped date.
func (b BirthDate) Time() time.Time {
	return b.date
}

// Equal compares calendar dates.
func (b BirthDate) Equal(other BirthDate) bool {
	return b.date.Equal(other.date)
}

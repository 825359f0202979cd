// Package dates provides calendar-day arithmetic, settlement rules, and
// business-day calendars used to turn a trade date into a pay date.
package dates

import "time"

// Date is a calendar day, held as the number of days since the Unix epoch.
// Intraday time-of-day is handled separately by DateTime/DateDayFraction.
type Date int32

// FromYMD builds a Date from a year/month/day triple, the same convention
// the pack's original scenario fixtures use (e.g. 2018-06-01).
func FromYMD(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date(t.Unix() / 86400)
}

// Add returns the date offset by the given number of calendar days (may be
// negative).
func (d Date) Add(days int) Date {
	return d + Date(days)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d > other }

// Max returns the later of d and other.
func (d Date) Max(other Date) Date {
	if d > other {
		return d
	}
	return other
}

// Time renders the date as midnight UTC, for formatting and weekday lookups.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// String renders the date in ISO-8601 form (YYYY-MM-DD).
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Weekday reports the day of the week for d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b Date) int {
	return int(b - a)
}

// Parse parses an ISO-8601 (YYYY-MM-DD) date string.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, err
	}
	return FromYMD(t.Year(), t.Month(), t.Day()), nil
}

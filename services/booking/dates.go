package booking

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used throughout the engine. Dates
// are plain local calendar dates with no time-of-day component; they must be
// formatted from local year/month/day and never round-tripped through UTC.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string as a calendar date in the given zone.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a calendar date string from the time's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveEndDate computes the inclusive end date of a booking. A single-day
// booking ends on its own start date. Longer bookings advance one calendar
// day at a time from the start date, with Sundays never counting toward the
// working-day total; the last counted day is the end date, so a week booked
// from a Monday runs through the following Monday.
func ResolveEndDate(startDate time.Time, workingDays int) time.Time {
	if workingDays <= 1 {
		return startDate
	}
	d := startDate
	counted := 0
	for counted < workingDays {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Sunday {
			counted++
		}
	}
	return d
}

// rangesOverlap tests two inclusive calendar date ranges for overlap.
// Date strings in DateLayout compare correctly as plain strings.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd < bStart || aStart > bEnd)
}

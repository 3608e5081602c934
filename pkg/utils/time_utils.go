package utils

import "time"

const DateLayout = "2006-01-02"

// AnchorDate returns the itinerary's first day: the trip start date when
// set, otherwise today.
func AnchorDate(start time.Time) time.Time {
	if start.IsZero() {
		return time.Now()
	}
	return start
}

// DayDate formats the calendar date of a 1-based trip day.
func DayDate(start time.Time, day int) string {
	return AnchorDate(start).AddDate(0, 0, day-1).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string, returning the zero time on failure.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
